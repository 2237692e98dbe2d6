package stage

import "testing"

func TestParseCanonicalNames(t *testing.T) {
	cases := map[string]Stage{
		"ZERO":   Zero,
		"zero":   Zero,
		"Author": Author,
		"HOUSE":  House,
		"press":  Press,
	}
	for raw, want := range cases {
		got, ok := Parse(raw)
		if !ok {
			t.Fatalf("Parse(%q) not recognized", raw)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseLegacySynonyms(t *testing.T) {
	cases := map[string]Stage{
		"First":   Author,
		"first":   Author,
		"Editing": House,
		"EDITING": House,
		"Press":   Press,
		"Zero":    Zero,
	}
	for raw, want := range cases {
		got, ok := Parse(raw)
		if !ok {
			t.Fatalf("Parse(%q) not recognized", raw)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	for _, raw := range []string{"", "  ", "draft", "final"} {
		got, ok := Parse(raw)
		if ok {
			t.Fatalf("Parse(%q) unexpectedly recognized as %v", raw, got)
		}
		if got != Zero {
			t.Fatalf("Parse(%q) should default to Zero, got %v", raw, got)
		}
	}
}

func TestOrdering(t *testing.T) {
	order := All()
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Fatalf("stage order broken at %v", order[i])
		}
	}
	if Max(Zero, House) != House {
		t.Fatalf("Max(Zero, House) != House")
	}
	if Max(Press, Author) != Press {
		t.Fatalf("Max(Press, Author) != Press")
	}
}
