package recommend

import "strings"

// Mood is a caller-supplied mood filter. Only movies matching the mood's
// keyword themes receive the mood signal.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodExcited  Mood = "excited"
	MoodRelaxed  Mood = "relaxed"
	MoodScared   Mood = "scared"
	MoodRomantic Mood = "romantic"
)

// moodKeywords maps each mood to the keyword themes resolved against the
// catalog. Unresolvable keywords are silently dropped; a mood whose keywords
// all fail to resolve contributes nothing.
var moodKeywords = map[Mood][]string{
	MoodHappy:    {"feel-good", "comedy", "friendship", "uplifting", "family"},
	MoodSad:      {"tragedy", "grief", "loss", "melancholy", "redemption"},
	MoodExcited:  {"adrenaline", "heist", "chase", "action hero", "survival"},
	MoodRelaxed:  {"slice of life", "road trip", "nature", "small town", "coming of age"},
	MoodScared:   {"supernatural horror", "ghost", "haunted house", "slasher", "paranormal"},
	MoodRomantic: {"love", "romance", "wedding", "romantic comedy", "soulmates"},
}

// ParseMood normalizes a raw mood string, returning "" for unknown values.
func ParseMood(raw string) Mood {
	mood := Mood(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := moodKeywords[mood]; !ok {
		return ""
	}
	return mood
}

// Label renders the mood for reason strings, e.g. "Matches Happy Mood".
func (m Mood) Label() string {
	trimmed := strings.TrimSpace(string(m))
	if trimmed == "" {
		return ""
	}
	return strings.ToUpper(trimmed[:1]) + trimmed[1:]
}
