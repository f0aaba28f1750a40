package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// CannedService is the deterministic stand-in provider for development and
// tests. It emits the same wire format as the real backends so the full
// parse-and-validate path stays exercised.
type CannedService struct{}

var _ Provider = (*CannedService)(nil)

func NewCannedService() *CannedService {
	return &CannedService{}
}

func (s *CannedService) Name() string {
	return "canned"
}

var (
	generatePromptRe = regexp.MustCompile(`Generate 5 interview questions for the (.+) domain at (\w+) difficulty level`)
	answerLineRe     = regexp.MustCompile(`(?m)^A\d+: (.*)$`)
)

func (s *CannedService) Generate(_ context.Context, _, prompt string, _ float64, _ int) (string, error) {
	if strings.Contains(prompt, "Questions and Answers:") {
		return s.evaluate(prompt)
	}
	return s.generateQuestions(prompt)
}

func (s *CannedService) generateQuestions(prompt string) (string, error) {
	m := generatePromptRe.FindStringSubmatch(prompt)
	if m == nil {
		return "", &ProviderError{
			Provider: s.Name(),
			Kind:     KindUnknown,
			Message:  "unrecognized prompt",
		}
	}
	domain, difficulty := m[1], strings.ToLower(m[2])

	byDifficulty, ok := QuestionBank[domain]
	if !ok {
		byDifficulty = defaultQuestions
	}
	questions, ok := byDifficulty[difficulty]
	if !ok {
		questions = byDifficulty["easy"]
	}

	out, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("marshal canned questions: %w", err)
	}
	return string(out), nil
}

func (s *CannedService) evaluate(prompt string) (string, error) {
	matches := answerLineRe.FindAllStringSubmatch(prompt, -1)
	if len(matches) == 0 {
		return "", &ProviderError{
			Provider: s.Name(),
			Kind:     KindUnknown,
			Message:  "no answers found in prompt",
		}
	}

	scores := make([]float64, 0, len(matches))
	var sum float64
	for _, m := range matches {
		score := scoreAnswer(m[1])
		scores = append(scores, score)
		sum += score
	}
	overall := math.Round(sum / float64(len(scores)))

	result := map[string]any{
		"scores":       scores,
		"overallScore": overall,
		"feedback":     feedbackFor(overall),
	}
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal canned evaluation: %w", err)
	}
	return string(out), nil
}

// scoreAnswer bands answers by length. Deterministic on purpose.
func scoreAnswer(answer string) float64 {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" || trimmed == NoAnswerPlaceholder {
		return 0
	}
	words := len(strings.Fields(trimmed))
	switch {
	case words < 10:
		return 35
	case words < 30:
		return 65
	default:
		return 80
	}
}

func feedbackFor(overall float64) string {
	switch {
	case overall >= 80:
		return "Excellent performance! You demonstrated strong understanding of the concepts. Your answers were comprehensive and well-articulated. Keep up the great work!"
	case overall >= 60:
		return "Good effort! You showed decent understanding of the topics. Some answers could be more detailed. Consider studying the areas where you scored lower to improve further."
	case overall >= 40:
		return "Fair attempt. You have basic understanding but need to study more. Focus on understanding core concepts in depth. Practice explaining concepts clearly and concisely."
	default:
		return "Needs improvement. Your answers were too brief or lacked technical depth. Spend more time studying the fundamentals and practice articulating your knowledge better."
	}
}
