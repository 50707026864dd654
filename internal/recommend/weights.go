package recommend

// Weights configure the relative strength of the content signals. A single
// instance is immutable for the duration of one aggregation run.
type Weights struct {
	Director      float64 `json:"director"`
	Genre         float64 `json:"genre"`
	Cast          float64 `json:"cast"`
	Era           float64 `json:"era"`
	Language      float64 `json:"language"`
	CombinedBonus float64 `json:"combined_bonus"`
}

// DefaultWeights returns the tuned balance where no single signal dominates.
func DefaultWeights() Weights {
	return Weights{
		Director:      1.0,
		Genre:         1.0,
		Cast:          1.0,
		Era:           1.0,
		Language:      1.0,
		CombinedBonus: 1.2,
	}
}

const sameLanguageBoost = 1.5

// apply folds caller preferences into a fresh copy of the run weights.
func (w Weights) apply(prefs Preferences) Weights {
	applied := w
	if prefs.WeightDirector > 0 {
		applied.Director = prefs.WeightDirector
	}
	if prefs.WeightGenre > 0 {
		applied.Genre = prefs.WeightGenre
	}
	if prefs.WeightCast > 0 {
		applied.Cast = prefs.WeightCast
	}
	if prefs.PreferSameLanguage {
		applied.Language *= sameLanguageBoost
	}
	return applied
}

// scaleContent multiplies the three content weights by a per-seed factor.
// Used by the personalized combiner, which scales each seed's influence by
// its normalized rating.
func (w Weights) scaleContent(factor float64) Weights {
	scaled := w
	scaled.Director *= factor
	scaled.Genre *= factor
	scaled.Cast *= factor
	return scaled
}
