package prompts

// Config controls the token budget and sampling temperature of each
// request kind.
type Config struct {
	// MaxTokens is the token budget for every response.
	MaxTokens int

	// PassageTemperature is higher so passages vary between sessions.
	PassageTemperature float64

	// QuestionsTemperature is kept low so the JSON format holds.
	QuestionsTemperature float64

	WritingTemperature  float64
	FeedbackTemperature float64
}

// DefaultConfig returns the recommended budgets.
func DefaultConfig() Config {
	return Config{
		MaxTokens:            2000,
		PassageTemperature:   0.8,
		QuestionsTemperature: 0.3,
		WritingTemperature:   0.7,
		FeedbackTemperature:  0.2,
	}
}
