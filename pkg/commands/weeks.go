package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/scenecal/pkg/app"
	"tableflip.dev/scenecal/pkg/commands/options"
	"tableflip.dev/scenecal/pkg/printers"
)

func addWeeks(topLevel *cobra.Command) {
	vo := &options.VaultOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "list per-week completion buckets",
		Example: `
scenecal weeks
scenecal weeks --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if oo.JSON {
				return oo.Print(snap.Weeks())
			}
			printers.NoColorIfPiped()
			pp := &printers.PrettyPrint{}
			pp.Weeks(snap)
			return nil
		},
	}

	options.AddVaultArgs(cmd, vo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
