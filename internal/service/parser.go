package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedResponse marks provider output that failed schema validation.
// Callers must treat it as non-retryable.
var ErrMalformedResponse = errors.New("malformed provider response")

// QuestionCount is the fixed number of questions per interview.
const QuestionCount = 5

// Evaluation is the validated and normalized result of scoring one interview.
type Evaluation struct {
	Scores       []float64
	OverallScore float64
	Feedback     string
}

// ParseQuestions validates raw provider text as a JSON array of exactly
// QuestionCount non-empty strings. Anything else fails closed.
func ParseQuestions(raw string) ([]string, error) {
	body := stripFences(raw)
	parsed := gjson.Parse(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of questions", ErrMalformedResponse)
	}

	items := parsed.Array()
	if len(items) != QuestionCount {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrMalformedResponse, QuestionCount, len(items))
	}

	questions := make([]string, 0, QuestionCount)
	for i, item := range items {
		if item.Type != gjson.String || strings.TrimSpace(item.String()) == "" {
			return nil, fmt.Errorf("%w: question %d is not a non-empty string", ErrMalformedResponse, i+1)
		}
		questions = append(questions, item.String())
	}
	return questions, nil
}

// ParseEvaluation validates raw provider text as an evaluation record with
// fields scores (array), overallScore (number) and feedback (non-empty
// string). Every score and the overall score are clamped to [0,100] after
// parsing. A scores length that disagrees with expectedCount fails closed
// rather than being silently indexed later.
func ParseEvaluation(raw string, expectedCount int) (*Evaluation, error) {
	body := stripFences(raw)
	parsed := gjson.Parse(body)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON evaluation object", ErrMalformedResponse)
	}

	scoresField := parsed.Get("scores")
	if !scoresField.Exists() || !scoresField.IsArray() {
		return nil, fmt.Errorf("%w: scores missing or not an array", ErrMalformedResponse)
	}

	overallField := parsed.Get("overallScore")
	if !overallField.Exists() || overallField.Type != gjson.Number {
		return nil, fmt.Errorf("%w: overallScore missing or not a number", ErrMalformedResponse)
	}

	feedbackField := parsed.Get("feedback")
	if feedbackField.Type != gjson.String || strings.TrimSpace(feedbackField.String()) == "" {
		return nil, fmt.Errorf("%w: feedback missing or empty", ErrMalformedResponse)
	}

	rawScores := scoresField.Array()
	if len(rawScores) != expectedCount {
		return nil, fmt.Errorf("%w: expected %d scores, got %d", ErrMalformedResponse, expectedCount, len(rawScores))
	}

	scores := make([]float64, 0, len(rawScores))
	for _, s := range rawScores {
		scores = append(scores, clampScore(s.Float()))
	}

	return &Evaluation{
		Scores:       scores,
		OverallScore: clampScore(overallField.Float()),
		Feedback:     feedbackField.String(),
	}, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// stripFences removes markdown code fences some models wrap around JSON.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
