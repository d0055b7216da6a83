// Package main is the portfolio site: a single-page web server with a
// resume preview dialog, plus a terminal rendition of the same page.
//
// Usage:
//
//	portfolio            serve the site (same as "portfolio serve")
//	portfolio probe URL  check how the resume would be previewed
//	portfolio tui        browse the portfolio in the terminal
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
)

func main() {
	Execute()
}

// NewRootCmd creates the root command. Without a subcommand it serves the
// site.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Zach's portfolio site",
		Long: `Serves the single-page portfolio with its resume preview dialog.
The same content can be browsed in a terminal with the tui command.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewProbeCmd())
	cmd.AddCommand(NewTUICmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the --config flag and builds the logger.
func loadConfig(cmd *cobra.Command, logOut io.Writer) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.Log.NewLogger(logOut), nil
}
