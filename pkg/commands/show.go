package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/scenecal/pkg/app"
	"tableflip.dev/scenecal/pkg/commands/options"
	"tableflip.dev/scenecal/pkg/printers"
)

func addShow(topLevel *cobra.Command) {
	vo := &options.VaultOptions{}
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:   "show [month]",
		Short: "print the month calendar",
		Example: `
scenecal show
scenecal show "August 2026"
scenecal show --on "January 2027" --scope manuscript
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := mo.Month(args)
			if err != nil {
				return err
			}
			cfg, err := vo.Config()
			if err != nil {
				return err
			}
			svc, err := app.New(cfg)
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(context.Background())
			if err != nil {
				return err
			}
			printers.NoColorIfPiped()
			pp := &printers.PrettyPrint{}
			pp.Month(month, snap)
			pp.StageBadge(snap)
			return nil
		},
	}

	options.AddVaultArgs(cmd, vo)
	options.AddMonthArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
