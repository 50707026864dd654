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

func runWatched(args []string) int {
	fs := flag.NewFlagSet("watched", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	userID := fs.String("user", "", "User id recording the watch")
	movieID := fs.Int64("movie", 0, "Watched movie id")
	title := fs.String("title", "", "Optional movie title to store alongside the id")
	rating := fs.Float64("rating", -1, "Optional rating 0-10; negative leaves it unset")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")

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
	if *movieID <= 0 {
		fmt.Fprintln(os.Stderr, "--movie must be a positive movie id")
		return 2
	}
	var ratingPtr *float64
	if *rating >= 0 {
		if *rating > 10 {
			fmt.Fprintln(os.Stderr, "--rating must be between 0 and 10")
			return 2
		}
		ratingPtr = rating
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
		logger.Error().Err(err).Msg("watched command failed to connect to database")
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return 1
	}
	defer pool.Close()

	store := history.NewService(pool, logger)
	created, err := store.RecordWatch(ctx, *userID, *movieID, *title, ratingPtr)
	if err != nil {
		logger.Error().Err(err).Str("user_id", *userID).Int64("movie_id", *movieID).Msg("watched command failed")
		fmt.Fprintf(os.Stderr, "Failed to record watch: %v\n", err)
		return 1
	}

	if created {
		fmt.Printf("recorded movie %d for user %s\n", *movieID, strings.TrimSpace(*userID))
	} else {
		fmt.Printf("updated existing watch of movie %d for user %s\n", *movieID, strings.TrimSpace(*userID))
	}
	return 0
}
