package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/scenecal/pkg/app"
	"tableflip.dev/scenecal/pkg/calendar"
	"tableflip.dev/scenecal/pkg/commands/options"
	"tableflip.dev/scenecal/pkg/printers"
	"tableflip.dev/scenecal/pkg/scene"
)

func addScenes(topLevel *cobra.Command) {
	vo := &options.VaultOptions{}
	oo := &options.OutputOptions{}
	var overdue, completed, future bool

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "list classified scene records",
		Example: `
scenecal scenes
scenecal scenes --overdue
scenecal scenes --completed --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if moreThanOne(overdue, completed, future) {
				return oo.HandleError(errors.New("pick at most one of --overdue, --completed, --future"))
			}
			cfg, err := vo.Config()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := app.New(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			snap, err := svc.Snapshot(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			records := pick(snap, overdue, completed, future)
			if oo.JSON {
				return oo.Print(records)
			}
			printers.NoColorIfPiped()
			pp := &printers.PrettyPrint{}
			pp.Scenes(records)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue scenes.")
	cmd.Flags().BoolVar(&completed, "completed", false, "Only completed scenes.")
	cmd.Flags().BoolVar(&future, "future", false, "Only pending scenes due today or later.")
	options.AddVaultArgs(cmd, vo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func pick(snap *calendar.Snapshot, overdue, completed, future bool) []scene.Record {
	switch {
	case overdue:
		return snap.Overdue()
	case completed:
		return snap.Completed()
	case future:
		return snap.Future()
	default:
		return snap.All()
	}
}

func moreThanOne(flags ...bool) bool {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n > 1
}
