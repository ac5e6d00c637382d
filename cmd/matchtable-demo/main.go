// Command matchtable-demo loads a YAML-described set of match tables,
// populates them with a handful of entries, and dumps them — it is a local
// exercise harness for the matchtable library, not a control-plane RPC
// surface. Its shape — cobra command, errgroup-guarded run, signal
// handling — mirrors controlplane/cmd/yncp-director/main.go.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yanet-platform/matchtable/internal/config"
	"github.com/yanet-platform/matchtable/internal/logging"
)

var cmd Cmd

// Cmd is the command line arguments.
type Cmd struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string
	// DumpFilter is an optional glob pattern narrowing dump output.
	DumpFilter string
}

var rootCmd = &cobra.Command{
	Use:   "matchtable-demo",
	Short: "Exercises the matchtable library against a YAML-described table set",
	Run: func(rawCmd *cobra.Command, args []string) {
		if err := run(cmd); err != nil {
			if errors.Is(err, Interrupted{}) {
				return
			}
			fmt.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.ConfigPath, "config", "c", "", "Path to the configuration file (required)")
	rootCmd.Flags().StringVar(&cmd.DumpFilter, "filter", "", "Glob pattern narrowing dump output to matching hex keys")
	rootCmd.MarkFlagRequired("config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd Cmd) error {
	cfg, err := config.LoadConfig(cmd.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, atomicLevel, err := logging.Init(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Sync()
	_ = atomicLevel

	ctx := context.Background()
	wg, ctx := errgroup.WithContext(ctx)
	wg.Go(func() error {
		return runDemo(ctx, cfg, cmd.DumpFilter, log)
	})
	wg.Go(func() error {
		err := waitInterrupted(ctx)
		log.Infof("caught signal: %v", err)
		return err
	})

	return wg.Wait()
}

type Interrupted struct {
	os.Signal
}

func (m Interrupted) Error() string {
	return m.String()
}

// waitInterrupted blocks until either SIGINT or SIGTERM is received, or the
// provided context is canceled.
func waitInterrupted(ctx context.Context) error {
	ch := make(chan os.Signal, 1)

	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case v := <-ch:
		return Interrupted{Signal: v}
	case <-ctx.Done():
		return ctx.Err()
	}
}
