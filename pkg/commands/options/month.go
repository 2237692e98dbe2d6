package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// MonthOptions selects which month a command renders.
type MonthOptions struct {
	On string
}

// AddMonthArgs wires the month selection flag.
func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.On, "on", "",
		`Month to render, e.g. "January 2006". Defaults to the current month.`)
}

// Month resolves the flag (or positional words) to a month. Empty input
// means now.
func (o *MonthOptions) Month(args []string) (time.Time, error) {
	name := strings.TrimSpace(o.On)
	if name == "" {
		name = strings.TrimSpace(strings.Join(args, " "))
	}
	if name == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("January 2006", name)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized month %q (want e.g. \"August 2026\")", name)
	}
	return t, nil
}
