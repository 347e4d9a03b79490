package prompts

import "strings"

// QuestionTypes lists the TOEFL reading question types a user can choose.
var QuestionTypes = []string{
	"Factual Information",
	"Negative Factual Information",
	"Inference",
	"Rhetorical Purpose",
	"Vocabulary",
	"Reference",
	"Sentence Insertion",
	"Summary",
	"Fill in a Table",
	"Prose Summary",
}

// DefaultQuestionTypes is the selection a new session starts with.
var DefaultQuestionTypes = []string{
	"Factual Information",
	"Inference",
	"Vocabulary",
	"Rhetorical Purpose",
	"Reference",
}

// Question count bounds for a reading set.
const (
	MinQuestions     = 4
	MaxQuestions     = 14
	DefaultQuestions = 10
)

// CanonicalType returns the QuestionTypes spelling of name, matched
// case-insensitively, and whether it is a known type.
func CanonicalType(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, t := range QuestionTypes {
		if strings.EqualFold(t, name) {
			return t, true
		}
	}
	return "", false
}
