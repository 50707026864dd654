package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"reelrank/internal/cli"
	"reelrank/internal/config"
	"reelrank/internal/logging"
	"reelrank/internal/recommend"
	"reelrank/internal/tmdb"
)

const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

func parseOutputFormat(raw, defaultFormat string) (string, error) {
	format := strings.TrimSpace(strings.ToLower(raw))
	if format == "" {
		format = strings.TrimSpace(strings.ToLower(defaultFormat))
	}
	switch format {
	case outputFormatTable, outputFormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("--format must be table or json")
	}
}

// bootstrap loads the environment file, the configuration, and the logger
// shared by every command.
func bootstrap(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

func buildEngine(cfg *config.Config, logger zerolog.Logger) (*tmdb.Client, *recommend.Service, error) {
	catalog, err := tmdb.New(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBLanguage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build catalog client: %w", err)
	}
	return catalog, recommend.NewService(catalog, logger), nil
}

func parseMovieIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%q is not a positive movie id", trimmed)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writeTable(headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(writer, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func printCandidates(candidates []recommend.Candidate, format string) error {
	if format == outputFormatJSON {
		return printJSON(candidates)
	}

	rows := make([][]string, 0, len(candidates))
	for _, candidate := range candidates {
		rows = append(rows, []string{
			strconv.FormatInt(candidate.Movie.ID, 10),
			candidate.Movie.Title,
			strconv.Itoa(candidate.FinalScore),
			string(candidate.Source),
			strings.Join(candidate.MatchReasons, "; "),
		})
	}
	return writeTable([]string{"id", "title", "score", "source", "reasons"}, rows)
}
