package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Oliverans/GooseEngine/internal/command"
	"github.com/Oliverans/GooseEngine/internal/config"
	"github.com/Oliverans/GooseEngine/internal/input"
	"github.com/Oliverans/GooseEngine/internal/logging"
	"github.com/Oliverans/GooseEngine/internal/protocol"
	"github.com/Oliverans/GooseEngine/internal/session"
)

// How long an interrupted engine waits for the running search to report.
const shutdownGrace = 2 * time.Second

var rootCmd = &cobra.Command{
	Use:          "goose",
	Short:        "GooseEngine, a chess engine speaking xboard and UCI",
	Long:         `Reads protocol commands on stdin and answers on stdout. Logs go to stderr.`,
	SilenceUsage: true,
	RunE:         runEngine,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.Int("hash", 0, "hash table size in MB")
	pf.Int("threads", 0, "search threads")

	rootCmd.Flags().Bool("uci", false, "expect UCI before the handshake")
}

// loadConfig reads the config file and environment, then applies the flags
// that were given.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Log.Level = f.Value.String()
	}
	if cmd.Flags().Changed("hash") {
		cfg.Engine.Hash, _ = cmd.Flags().GetInt("hash")
	}
	if cmd.Flags().Changed("threads") {
		cfg.Engine.Threads, _ = cmd.Flags().GetInt("threads")
	}
	if f := cmd.Flags().Lookup("uci"); f != nil && f.Changed {
		if on, _ := cmd.Flags().GetBool("uci"); on {
			cfg.Protocol.Dialect = "uci"
		}
	}
	return cfg, cfg.Validate()
}

func newController(cfg config.Config, log zerolog.Logger) (*session.Controller, error) {
	ctl, err := session.New(session.Config{
		Options:   session.Options{Hash: cfg.Engine.Hash, Threads: cfg.Engine.Threads},
		Depth:     cfg.Engine.Depth,
		OwnBook:   cfg.Engine.OwnBook,
		MovesLeft: cfg.Engine.MovesLeft,
	}, log)
	if err != nil {
		return nil, err
	}
	if len(cfg.Options) > 0 {
		if err := ctl.SetOptions(cfg.Options); err != nil {
			return nil, fmt.Errorf("config options: %w", err)
		}
	}
	return ctl, nil
}

func newManager(cfg config.Config, ctl *session.Controller, src input.Source, w io.Writer, log zerolog.Logger) *protocol.Manager {
	dialect := command.ParseDialect(cfg.Protocol.Dialect)
	return protocol.New(ctl, command.NewQueue(src, dialect), w,
		protocol.WithLogger(log),
		protocol.WithIdentity(cfg.Engine.Name, cfg.Engine.Author),
		protocol.WithDialect(dialect),
	)
}

func runEngine(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, nil)

	ctl, err := newController(cfg, log)
	if err != nil {
		return err
	}
	m := newManager(cfg, ctl, input.NewReader(os.Stdin, log), os.Stdout, log)

	ctx, cancel := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().
		Str("dialect", cfg.Protocol.Dialect).
		Int("hash", cfg.Engine.Hash).
		Int("threads", cfg.Engine.Threads).
		Msg("engine started")

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		ctl.Stop()
		select {
		case <-done:
		case <-time.After(shutdownGrace):
		}
		log.Info().Msg("interrupted")
		return nil
	}
}

// contextOrBackground keeps subcommands usable when run without Execute.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
