package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/resume"
)

// NewProbeCmd creates the probe command.
func NewProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe [url]",
		Short: "Check how the resume would be previewed",
		Long: `Probes the resume document once and prints the verdict together with
the preview mode a client would get. Without a URL the configured origin
is probed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProbe,
	}

	cmd.Flags().Bool("constrained", false, "Select the mode for a platform that cannot embed documents")
	cmd.Flags().Bool("verbose", false, "Log probe requests to stderr")

	return cmd
}

func runProbe(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	constrained, _ := cmd.Flags().GetBool("constrained")

	logOut := io.Discard
	if verbose {
		logOut = os.Stderr
	}
	cfg, logger, err := loadConfig(cmd, logOut)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
		logger = cfg.Log.NewLogger(logOut)
	}

	locator := probeTarget(cfg, args)
	prober := resume.NewProber(&http.Client{Timeout: cfg.Resume.ProbeTimeout}, logger)
	v := prober.Probe(cmd.Context(), locator)
	mode := resume.SelectMode(v, constrained)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "locator: %s\n", locator)
	fmt.Fprintf(out, "verdict: %s\n", v)
	fmt.Fprintf(out, "mode:    %s\n", mode)
	return nil
}

// probeTarget resolves the probe argument: a full URL is used as is, a
// bare origin gets the document path appended.
func probeTarget(cfg *config.Config, args []string) string {
	if len(args) == 0 {
		return cfg.ProbeOrigin() + resume.DocumentPath
	}
	target := strings.TrimRight(args[0], "/")
	if strings.HasSuffix(strings.ToLower(target), ".pdf") {
		return target
	}
	if i := strings.Index(target, "://"); i >= 0 && !strings.Contains(target[i+3:], "/") {
		return target + resume.DocumentPath
	}
	return target
}
