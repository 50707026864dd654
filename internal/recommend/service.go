package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Service runs the multi-signal aggregation pipeline. Each run is stateless:
// everything is re-derived from the catalog per invocation.
type Service struct {
	catalog Catalog
	logger  zerolog.Logger
	signals []signal
	weights Weights
	rng     Rand
}

// Option configures a Service.
type Option func(*Service)

// WithWeights overrides the default scoring weights.
func WithWeights(weights Weights) Option {
	return func(s *Service) {
		s.weights = weights
	}
}

// WithRand overrides the randomness source behind score smoothing and
// ordering jitter. Tests use this to pin the perturbation.
func WithRand(rng Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func NewService(catalog Catalog, logger zerolog.Logger, opts ...Option) *Service {
	service := &Service{
		catalog: catalog,
		logger:  logger,
		signals: buildSignals(catalog),
		weights: DefaultWeights(),
		rng:     defaultRand{},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// SimilarMovies produces the ranked recommendation list for one seed movie.
// A failed seed-detail fetch is the documented degenerate case: the result is
// empty, not an error, since every signal depends on the seed detail.
func (s *Service) SimilarMovies(ctx context.Context, seedID int64, prefs Preferences) ([]Candidate, error) {
	if s == nil || s.catalog == nil {
		return nil, fmt.Errorf("recommend service is not initialized")
	}
	return s.runPipeline(ctx, seedID, s.weights.apply(prefs), prefs), nil
}

// runPipeline executes every signal concurrently against one seed and merges
// the contributions in fixed signal order, so reason lists stay deterministic
// even though the lookups race.
func (s *Service) runPipeline(ctx context.Context, seedID int64, weights Weights, prefs Preferences) []Candidate {
	seed, err := s.catalog.GetMovieDetail(ctx, seedID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("seed_id", seedID).Msg("seed detail fetch failed, returning no recommendations")
		return []Candidate{}
	}

	req := signalRequest{
		seed:    seed,
		weights: weights,
		prefs:   prefs,
	}

	results := make([][]Contribution, len(s.signals))
	var wg sync.WaitGroup
	for i, sig := range s.signals {
		if sig.name() == "mood" && prefs.Mood == "" {
			continue
		}
		wg.Add(1)
		go func(slot int, sig signal) {
			defer wg.Done()
			contributions, err := sig.collect(ctx, req)
			if err != nil {
				if errors.Is(err, errMoodUnresolved) {
					s.logger.Debug().
						Int64("seed_id", seedID).
						Str("mood", string(prefs.Mood)).
						Msg("mood signal skipped: no keywords resolved")
					return
				}
				s.logger.Warn().Err(err).
					Int64("seed_id", seedID).
					Str("signal", sig.name()).
					Msg("signal degraded to zero contributions")
				return
			}
			results[slot] = contributions
		}(i, sig)
	}
	wg.Wait()

	agg := newAggregator(seedID)
	for _, contributions := range results {
		agg.addAll(contributions)
	}
	return agg.finalize(weights, prefs, s.rng)
}
