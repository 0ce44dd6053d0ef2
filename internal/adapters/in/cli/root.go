// Package cli implements the CLI adapter for citybike.
// This package provides Cobra commands that delegate to the app layer.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/bnema/citybike/internal/app"
	"github.com/bnema/citybike/pkg/version"
)

// rootFlags holds the flags shared by every command.
type rootFlags struct {
	configPath string
	url        string
	preview    bool
	logLevel   string
}

func (f *rootFlags) overrides() app.Overrides {
	return app.Overrides{
		ConfigPath: f.configPath,
		URL:        f.url,
		Preview:    f.preview,
		LogLevel:   f.logLevel,
	}
}

// runner abstracts the app entry points so commands can be tested without
// touching the network or the terminal.
type runner struct {
	interactive func(cmd *cobra.Command, o app.Overrides) error
	list        func(cmd *cobra.Command, o app.Overrides) (networksResult, error)
}

func defaultRunner() runner {
	return runner{
		interactive: func(cmd *cobra.Command, o app.Overrides) error {
			return app.Run(cmd.Context(), o)
		},
		list: func(cmd *cobra.Command, o app.Overrides) (networksResult, error) {
			networks, err := app.ListNetworks(cmd.Context(), o)
			return networksResult{Networks: networks.Networks}, err
		},
	}
}

// NewRootCmd creates the root command for the citybike CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultRunner())
}

func newRootCmd(r runner) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "citybike",
		Short: "Browse the city bike networks of the world",
		Long: `citybike lists the bike sharing networks published by the CityBikes API.

Without a subcommand it opens an interactive list in the terminal.
Set CITYBIKE_PREVIEW=1 or pass --preview to show sample data without
any network access.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.interactive(cmd, flags.overrides())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to config file")
	pf.StringVar(&flags.url, "url", "", "Networks endpoint URL")
	pf.BoolVar(&flags.preview, "preview", false, "Show sample data without network access")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newListCmd(flags, r))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newListCmd creates the list command.
func newListCmd(flags *rootFlags, r runner) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the bike networks and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			result, err := r.list(cmd, flags.overrides())
			if err != nil {
				return err
			}

			return writeNetworks(cmd.OutOrStdout(), format, result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputTable), "Output format (table, json, yaml)")

	return cmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("citybike %s\n", version.Version())
			cmd.Printf("Commit: %s\n", version.Commit())
			cmd.Printf("Build Date: %s\n", version.BuildDate())
		},
	}
}
