package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"reelrank/internal/cli"
	"reelrank/internal/db"
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Second, "Health check timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, logger, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("health check failed")
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		return 1
	}
	defer pool.Close()

	catalog, _, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// A cheap search exercises the full catalog round trip including the
	// api key.
	if _, err := catalog.SearchMovies(ctx, "the"); err != nil {
		logger.Error().Err(err).Msg("catalog health check failed")
		fmt.Fprintf(os.Stderr, "Catalog health check failed: %v\n", err)
		return 1
	}

	logger.Info().
		Dur("timeout", *timeout).
		Msg("health check passed")
	fmt.Println("ok: database ping and catalog round trip successful")
	return 0
}
