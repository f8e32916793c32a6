package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"claudeboard/config"
	"claudeboard/log"
	"claudeboard/server"
)

func main() {
	cfg := config.Get()

	root := &cobra.Command{
		Use:   "claudeboard",
		Short: "Local dashboard over Claude Code's on-disk artifacts",
		Long: "claudeboard serves plans, tasks, todos, sessions, memory notes and usage\n" +
			"statistics from the assistant's artifact directory over a REST API with a\n" +
			"live change feed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
		SilenceUsage: true,
	}

	// Flags default to the env-derived config so either mechanism works
	root.Flags().StringVar(&cfg.Host, "host", cfg.Host, "listen address")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "listen port")
	root.Flags().StringVar(&cfg.ClaudeDir, "claude-dir", cfg.ClaudeDir, "artifact root directory")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	}

	srv := server.New(cfg)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
