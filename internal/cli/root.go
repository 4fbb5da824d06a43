// Package cli implements the ragctl operator commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ragdemo/internal/app"
	"ragdemo/internal/config"
	"ragdemo/internal/service"
)

// OpenFunc builds the RAG service for a command. The returned close
// function releases everything the service holds.
type OpenFunc func(ctx context.Context, envFile string) (service.RAGService, func() error, error)

// NewRootCmd creates the ragctl root command. open is called once per
// subcommand invocation.
func NewRootCmd(open OpenFunc) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "ragctl",
		Short: "Operate the document Q&A index",
		Long: `ragctl provisions the vector index, loads the document corpus,
and answers questions using the same configuration as the API server.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load configuration from this .env file")

	withService := func(cmd *cobra.Command, fn func(context.Context, service.RAGService) error) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		svc, closeFn, err := open(ctx, envFile)
		if err != nil {
			return err
		}
		defer func() {
			_ = closeFn()
		}()
		return fn(ctx, svc)
	}

	root.AddCommand(
		newSetupCmd(withService),
		newAskCmd(withService),
		newRunsCmd(withService),
		newRunCmd(withService),
	)
	return root
}

type serviceRunner func(cmd *cobra.Command, fn func(context.Context, service.RAGService) error) error

// OpenApp loads configuration, configures logging to stderr, and builds the
// application.
func OpenApp(ctx context.Context, envFile string) (service.RAGService, func() error, error) {
	var (
		cfg *config.Config
		err error
	)
	if envFile != "" {
		cfg, err = config.LoadFrom(envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a.Service, a.Close, nil
}
