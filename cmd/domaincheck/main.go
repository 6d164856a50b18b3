package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iaserrat/domaincheck/internal/config"
	"github.com/iaserrat/domaincheck/internal/logging"
	"github.com/iaserrat/domaincheck/internal/report"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "domaincheck [domain]",
		Short:        "Check that a domain resolves, has a valid certificate and serves the expected application",
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var domain string
			if len(args) == 1 {
				domain = args[0]
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), configPath, domain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to TOML config file")

	return cmd
}

// run only fails on setup problems. Failed checks are part of the report,
// not errors.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, path string, domain string) error {
	cfg, err := config.Load(path, domain)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	runner := report.NewRunner(report.PlanFromConfig(cfg), report.NewNetProber(cfg), logger)
	rep, logErr := runner.Run(ctx)

	if err := report.Render(stdout, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if logErr != nil {
		fmt.Fprintf(stderr, "warning: record log: %v\n", logErr)
	}

	return nil
}

func newLogger(cfg config.Config) (*logging.Logger, error) {
	hostID, err := os.Hostname()
	if err != nil || hostID == "" {
		hostID = "unknown"
	}
	return logging.New(logging.Config{
		Dir:         cfg.Logging.Dir,
		MaxMB:       cfg.Logging.MaxMB,
		MaxFiles:    cfg.Logging.MaxFiles,
		ToolName:    "domaincheck",
		ToolVersion: version,
		HostID:      hostID,
	})
}
