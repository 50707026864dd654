package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"reelrank/internal/cli"
	"reelrank/internal/db"
	"reelrank/internal/history"
)

func runForYou(args []string) int {
	fs := flag.NewFlagSet("foryou", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	userID := fs.String("user", "", "User id whose history seeds the recommendations")
	limit := fs.Int("limit", 50, "Maximum results (1-50)")
	timeout := fs.Duration("timeout", 120*time.Second, "Command timeout")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if strings.TrimSpace(*userID) == "" {
		fmt.Fprintln(os.Stderr, "--user is required")
		return 2
	}
	if *limit < 1 || *limit > 50 {
		fmt.Fprintln(os.Stderr, "--limit must be between 1 and 50")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
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
		logger.Error().Err(err).Msg("foryou command failed to connect to database")
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return 1
	}
	defer pool.Close()

	_, engine, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	store := history.NewService(pool, logger)
	watched, ratings, err := store.SeedInput(ctx, *userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", *userID).Msg("foryou command failed to load history")
		fmt.Fprintf(os.Stderr, "Failed to load watch history: %v\n", err)
		return 1
	}
	if len(watched) == 0 {
		fmt.Println("no watch history recorded for this user")
		return 0
	}

	candidates, err := engine.PersonalizedRecommendations(ctx, watched, ratings)
	if err != nil {
		logger.Error().Err(err).Str("user_id", *userID).Msg("foryou command failed")
		fmt.Fprintf(os.Stderr, "Failed to build recommendations: %v\n", err)
		return 1
	}
	if len(candidates) > *limit {
		candidates = candidates[:*limit]
	}

	if err := printCandidates(candidates, outputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render output: %v\n", err)
		return 1
	}
	return 0
}
