package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"reelrank/internal/cli"
)

func runHybrid(args []string) int {
	fs := flag.NewFlagSet("hybrid", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	movies := fs.String("movies", "", "Comma-separated seed movie ids (2-5)")
	timeout := fs.Duration("timeout", 120*time.Second, "Command timeout")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	seedIDs, err := parseMovieIDList(*movies)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --movies: %v\n", err)
		return 2
	}
	if len(seedIDs) < 2 || len(seedIDs) > 5 {
		fmt.Fprintln(os.Stderr, "--movies must list between 2 and 5 seed ids")
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

	_, engine, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	candidates, err := engine.HybridRecommendations(ctx, seedIDs)
	if err != nil {
		logger.Error().Err(err).Msg("hybrid command failed")
		fmt.Fprintf(os.Stderr, "Failed to build recommendations: %v\n", err)
		return 1
	}

	if err := printCandidates(candidates, outputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render output: %v\n", err)
		return 1
	}
	return 0
}
