// Command cyphersynth synthesizes a Cypher query from a labeled
// property graph and a target result table.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cyphersynth/synth/pkg/cache"
	"github.com/cyphersynth/synth/pkg/config"
	"github.com/cyphersynth/synth/pkg/example"
	"github.com/cyphersynth/synth/pkg/executor"
	"github.com/cyphersynth/synth/pkg/synth"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, synth.ErrSearchExhausted) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "cyphersynth",
		Short:        "Synthesize a Cypher query from an input/output example",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newSynthCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cyphersynth version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("🔮 cyphersynth %s\n", version)
			return nil
		},
	}
}

func newSynthCmd(configPath *string) *cobra.Command {
	var maxDequeues int
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "synth <example-dir>",
		Short: "Search for a query that reproduces the example's target table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if maxDequeues > 0 {
				cfg.MaxSketchDequeues = maxDequeues
			}
			if cacheDir != "" {
				cfg.CacheDir = cacheDir
			}
			setupLogging(cfg.LogLevel)

			return runSynth(cmd.Context(), args[0], cfg)
		},
	}

	cmd.Flags().IntVar(&maxDequeues, "max-sketch-dequeues", 0, "override the configured sketch search budget")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the query-result cache to this directory with Badger")
	return cmd
}

func runSynth(ctx context.Context, dir string, cfg config.Config) error {
	log.Info().Str("dir", dir).Msg("loading example")
	ex, err := example.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ failed to load example: %v\n", err)
		return err
	}

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ failed to open cache: %v\n", err)
		return err
	}
	defer closeStore()

	mem := executor.NewMemory(ex)
	cached := executor.NewCached(mem, store)

	s := synth.New(cached)
	s.MaxSketchDequeues = cfg.MaxSketchDequeues

	start := time.Now()
	result, err := s.Synthesize(ctx, ex)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ no query found after %s: %v\n", elapsed, err)
		return err
	}

	fmt.Printf("✅ found a matching query in %s\n\n%s\n", elapsed, result.Cypher)
	return nil
}

func buildStore(cfg config.Config) (executor.Store, func(), error) {
	if cfg.CacheDir == "" {
		return cache.NewLRU(cfg.CacheSize), func() {}, nil
	}
	badgerStore, err := cache.OpenBadgerStore(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return badgerStore, func() { badgerStore.Close() }, nil
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
