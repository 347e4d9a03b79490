package exam

import "fmt"

// Verdict is the outcome of one question.
type Verdict struct {
	// Chosen is the selected option text, empty when unanswered.
	Chosen   string
	Answered bool

	// Expected is the text of the correct option.
	Expected string

	Correct bool
}

// Results is the scored answer sheet.
type Results struct {
	Score    int
	Total    int
	Verdicts []Verdict
}

// Percent returns the score as a percentage of Total.
func (r *Results) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// String renders "score/total (pp.p%)".
func (r *Results) String() string {
	return fmt.Sprintf("%d/%d (%.1f%%)", r.Score, r.Total, r.Percent())
}

// score compares each answer with the correct option's text, so a
// duplicate of the correct text also counts.
func score(s *Session) *Results {
	r := &Results{Total: len(s.Questions), Verdicts: make([]Verdict, len(s.Questions))}
	for i, q := range s.Questions {
		v := Verdict{Expected: q.CorrectOption()}
		if i < len(s.Answers) && s.Answers[i] != nil {
			v.Answered = true
			v.Chosen = *s.Answers[i]
			v.Correct = v.Chosen == v.Expected
		}
		if v.Correct {
			r.Score++
		}
		r.Verdicts[i] = v
	}
	return r
}
