package recommend

import "testing"

func TestWeightsApplyOverrides(t *testing.T) {
	t.Parallel()

	applied := DefaultWeights().apply(Preferences{
		WeightDirector: 2.0,
		WeightCast:     0.5,
	})

	if applied.Director != 2.0 {
		t.Fatalf("unexpected director weight: %v", applied.Director)
	}
	if applied.Cast != 0.5 {
		t.Fatalf("unexpected cast weight: %v", applied.Cast)
	}
	if applied.Genre != 1.0 {
		t.Fatalf("genre weight must keep its default, got %v", applied.Genre)
	}
}

func TestWeightsApplySameLanguageBoost(t *testing.T) {
	t.Parallel()

	applied := DefaultWeights().apply(Preferences{PreferSameLanguage: true})
	if applied.Language != 1.5 {
		t.Fatalf("unexpected language weight: %v", applied.Language)
	}

	plain := DefaultWeights().apply(Preferences{})
	if plain.Language != 1.0 {
		t.Fatalf("language weight must stay default without the preference, got %v", plain.Language)
	}
}

func TestWeightsScaleContent(t *testing.T) {
	t.Parallel()

	scaled := DefaultWeights().scaleContent(0.5)
	if scaled.Director != 0.5 || scaled.Genre != 0.5 || scaled.Cast != 0.5 {
		t.Fatalf("content weights not scaled: %+v", scaled)
	}
	if scaled.Era != 1.0 || scaled.Language != 1.0 || scaled.CombinedBonus != 1.2 {
		t.Fatalf("non-content weights must not change: %+v", scaled)
	}
}
