package models

import "time"

type MoodEntry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`       // YYYY-MM-DD format, unique
	MoodScore    int       `json:"mood_score"` // 1-10
	MoodEmoji    string    `json:"mood_emoji"`
	StressLevel  int       `json:"stress_level"` // 1-10
	EnergyLevel  int       `json:"energy_level,omitempty"`
	AnxietyLevel int       `json:"anxiety_level,omitempty"`
	Factors      []string  `json:"factors,omitempty"`
	JournalEntry string    `json:"journal_entry,omitempty"`
	AIInsight    string    `json:"ai_insight,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MoodEmojis maps a mood score to its display emoji.
var MoodEmojis = map[int]string{
	1:  "😢",
	2:  "😔",
	3:  "😕",
	4:  "😐",
	5:  "🙂",
	6:  "😊",
	7:  "😄",
	8:  "😁",
	9:  "🤩",
	10: "🥳",
}

// DefaultMoodEmoji is used for scores outside the table.
const DefaultMoodEmoji = "😐"

// EmojiForScore looks up the emoji for a mood score.
func EmojiForScore(score int) string {
	if e, ok := MoodEmojis[score]; ok {
		return e
	}
	return DefaultMoodEmoji
}

// MoodFactors is the fixed vocabulary of mood factor tags.
var MoodFactors = []string{
	"work",
	"sleep",
	"exercise",
	"social",
	"weather",
	"health",
	"family",
	"finances",
	"relationships",
	"academics",
}
