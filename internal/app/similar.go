package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"reelrank/internal/cli"
	"reelrank/internal/recommend"
)

func runSimilar(args []string) int {
	fs := flag.NewFlagSet("similar", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	movieID := fs.Int64("movie", 0, "Seed movie id")
	mood := fs.String("mood", "", "Mood filter: happy, sad, excited, relaxed, scared or romantic")
	sameLanguage := fs.Bool("same-language", false, "Boost movies in the seed's language")
	newReleases := fs.Bool("new-releases", false, "Prefer recent releases on score ties")
	limit := fs.Int("limit", 20, "Maximum results (1-50)")
	timeout := fs.Duration("timeout", 60*time.Second, "Command timeout")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *movieID <= 0 {
		fmt.Fprintln(os.Stderr, "--movie must be a positive movie id")
		return 2
	}
	if *limit < 1 || *limit > 50 {
		fmt.Fprintln(os.Stderr, "--limit must be between 1 and 50")
		return 2
	}

	prefs := recommend.Preferences{
		PreferNewReleases:  *newReleases,
		PreferSameLanguage: *sameLanguage,
	}
	if *mood != "" {
		parsed := recommend.ParseMood(*mood)
		if parsed == "" {
			fmt.Fprintf(os.Stderr, "--mood %q is not a known mood\n", *mood)
			return 2
		}
		prefs.Mood = parsed
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

	candidates, err := engine.SimilarMovies(ctx, *movieID, prefs)
	if err != nil {
		logger.Error().Err(err).Int64("movie_id", *movieID).Msg("similar command failed")
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
