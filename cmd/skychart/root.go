package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/messier-skychart/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "skychart",
		Short:         "Interactive Messier object sky chart",
		Long:          "skychart loads the Messier catalog, converts its coordinates and serves a filterable sky chart.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (yaml, toml or json)")

	root.AddCommand(newServeCmd(), newValidateCmd(), newExportCmd())
	return root
}

// addCatalogFlags registers the flags that choose where the catalog comes from.
func addCatalogFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("csv", config.DefaultCSVPath, "catalog CSV file")
	f.String("remote-url", "", "URL of a catalog CSV tried when the file cannot be read")
	f.Duration("remote-timeout", 10*time.Second, "timeout for the remote catalog download")
	f.String("styles", "", "style table file (toml, yaml or json)")
	f.Bool("no-sample", false, "do not fall back to the built-in sample catalog")
}

// loadConfig layers the config file, SKYCHART_* environment and the
// command's flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	if noSample, _ := cmd.Flags().GetBool("no-sample"); noSample {
		v.Set("sample", false)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
