package vault

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the persisted settings the calendar cares about: where the
// vault lives, an optional folder scope within it, and whether debug logging
// is enabled.
type Config interface {
	VaultPath() string
	FolderScope() string
	Debug() bool
}

// LoadConfig reads the .scenecal config file (current directory or home),
// with SCENECAL_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/scenes")
	viper.SetDefault("scope", "")
	viper.SetDefault("debug", false)
	viper.SetConfigName(".scenecal") // .yaml is implicit
	viper.SetEnvPrefix("SCENECAL")
	viper.AutomaticEnv()

	if override := os.Getenv("SCENECAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &fileConfig{
		Path:    viper.GetString("path"),
		Scope:   viper.GetString("scope"),
		Verbose: viper.GetBool("debug"),
	}, nil
}

type fileConfig struct {
	Path    string `json:"path"`
	Scope   string `json:"scope"`
	Verbose bool   `json:"debug"`
}

func (f *fileConfig) VaultPath() string {
	expanded, err := homedir.Expand(f.Path)
	if err != nil {
		return f.Path
	}
	return expanded
}

func (f *fileConfig) FolderScope() string { return f.Scope }

func (f *fileConfig) Debug() bool { return f.Verbose }

// StaticConfig is a literal Config, mostly for flags and tests.
type StaticConfig struct {
	Path  string
	Scope string
	Dbg   bool
}

func (c StaticConfig) VaultPath() string {
	expanded, err := homedir.Expand(c.Path)
	if err != nil {
		return c.Path
	}
	return expanded
}

func (c StaticConfig) FolderScope() string { return c.Scope }

func (c StaticConfig) Debug() bool { return c.Dbg }
