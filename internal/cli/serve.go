package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/portfolio/internal/comment"
	"github.com/evcraddock/portfolio/internal/config"
	"github.com/evcraddock/portfolio/internal/logging"
	"github.com/evcraddock/portfolio/internal/web"
)

// redisKeyPrefix namespaces the server's keys in a shared Redis.
const redisKeyPrefix = "portfolio"

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  "Start the HTTP server for the portfolio site and its JSON endpoints.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serveConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().Int("port", 8080, "port to listen on (overrides PORTFOLIO_PORT)")
	cmd.Flags().Bool("dev", false, "human-readable debug logging (overrides PORTFOLIO_DEV_MODE)")
	cmd.Flags().String("env-file", ".env", "dotenv file to load if present")

	return cmd
}

// serveConfig reads the environment, then applies the flags the user set.
func serveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	envFile, err := flags.GetString("env-file")
	if err != nil {
		return config.Config{}, err
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("port") {
		if cfg.Port, err = flags.GetInt("port"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("dev") {
		if cfg.DevMode, err = flags.GetBool("dev"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg config.Config) error {
	logging.Setup(cfg.DevMode)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			slog.Warn("closing comment store", "error", cerr)
		}
	}()

	srv, err := web.NewServer(store, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	return srv.ListenAndServe(ctx, cfg.Port)
}

// openStore picks Redis when a URL is configured, SQLite otherwise.
func openStore(cfg config.Config) (comment.Store, error) {
	if cfg.RedisURL != "" {
		store, err := comment.NewRedisStore(cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("using redis comment store")
		return store, nil
	}

	database, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Info("using sqlite comment store")
	return comment.NewRepository(database), nil
}
