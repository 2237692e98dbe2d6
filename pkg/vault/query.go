package vault

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/scenecal/pkg/scene"
)

// Query fetches records with progressive fallback: the scoped query first,
// then a quoted-scope variant, then an unscoped query, and finally an empty
// result set. Failures are logged to the debug writer only; the calendar
// renders whatever survives. A nil source yields the empty set.
func Query(ctx context.Context, src RecordSource, scope string, debug io.Writer) []scene.Record {
	if src == nil {
		return nil
	}

	if scope != "" {
		records, err := src.QueryByFolder(ctx, scope)
		if err == nil {
			return records
		}
		debugf(debug, "query: scoped %q: %v", scope, err)

		quoted := `"` + scope + `"`
		records, err = src.QueryByFolder(ctx, quoted)
		if err == nil {
			return records
		}
		debugf(debug, "query: quoted scope %s: %v", quoted, err)
	}

	records, err := src.QueryAll(ctx)
	if err == nil {
		return records
	}
	debugf(debug, "query: unscoped: %v", err)
	return nil
}

func debugf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
