package watch

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/LegacyCodeHQ/deadfiles/cmd/internal/analysis"
	"github.com/LegacyCodeHQ/deadfiles/internal/logging"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	analysis analysis.Flags
	port     int
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		port: 4900,
	}

	cmd := &cobra.Command{
		Use:   "watch [entries...]",
		Short: "Watch for file changes and serve a live unused-file report",
		Long: `Watch the search root for file changes, re-run the analysis, and serve the
latest reachability graph at localhost.

Endpoints:
  /             live graph viewer
  /events       server-sent events with the DOT graph of every analysis
  /report.json  latest report as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args)
		},
	}

	opts.analysis.Register(cmd)
	cmd.Flags().IntVarP(&opts.port, "port", "P", opts.port, "HTTP server port")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, args []string) error {
	logger := logging.FromContext(cmd.Context())

	cfg, err := opts.analysis.Config(cmd, args)
	if err != nil {
		return err
	}
	analysisOpts, err := analysis.Options(cfg, logger)
	if err != nil {
		return err
	}

	b := newBroker()
	rb := newRebuilder(analysisOpts, b, logger)
	if err := rb.rebuild(); err != nil {
		return fmt.Errorf("initial analysis failed: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", opts.port, err)
	}

	srv := newServer(b, opts.port)
	go srv.Serve(ln)

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", analysisOpts.SearchRoot)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d\n", opts.port)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	err = watchAndRebuild(ctx, analysisOpts.SearchRoot, skipSet(analysisOpts.VendorDirs), rb, logger)

	srv.Close()
	return err
}
