package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/scenecal/pkg/app"
	"tableflip.dev/scenecal/pkg/commands/options"
	teaui "tableflip.dev/scenecal/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	vo := &options.VaultOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive calendar",
		Example: `
scenecal ui
scenecal ui --vault ~/book --scope manuscript
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := vo.Config()
			if err != nil {
				return err
			}
			svc, err := app.New(cfg)
			if err != nil {
				return err
			}
			return teaui.Run(svc)
		},
	}

	options.AddVaultArgs(cmd, vo)
	topLevel.AddCommand(cmd)
}
