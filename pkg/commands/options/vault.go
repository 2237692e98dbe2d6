// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/scenecal/pkg/vault"
)

// VaultOptions captures the vault selection flags shared by all commands.
type VaultOptions struct {
	Path  string
	Scope string
	Debug bool
}

// AddVaultArgs wires vault-related flags on the provided command.
func AddVaultArgs(cmd *cobra.Command, o *VaultOptions) {
	cmd.Flags().StringVar(&o.Path, "vault", "",
		"Vault root directory. Defaults to the configured path.")
	cmd.Flags().StringVar(&o.Scope, "scope", "",
		"Folder scope within the vault. Empty scans everything.")
	cmd.Flags().BoolVar(&o.Debug, "debug", false,
		"Log skipped notes and query fallbacks to stderr.")
}

// Config resolves the effective configuration: the .scenecal file and
// SCENECAL_* environment first, explicit flags on top.
func (o *VaultOptions) Config() (vault.Config, error) {
	cfg, err := vault.LoadConfig()
	if err != nil {
		return nil, err
	}
	resolved := vault.StaticConfig{
		Path:  cfg.VaultPath(),
		Scope: cfg.FolderScope(),
		Dbg:   cfg.Debug() || o.Debug,
	}
	if o.Path != "" {
		resolved.Path = o.Path
	}
	if o.Scope != "" {
		resolved.Scope = o.Scope
	}
	return resolved, nil
}
