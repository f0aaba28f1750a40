package service

import (
	"fmt"
	"strings"
)

// NoAnswerPlaceholder is substituted for blank answers so the provider scores
// them instead of guessing at missing input.
const NoAnswerPlaceholder = "No answer provided"

const (
	GenerationSystemPrompt = "You are an expert technical interviewer. Generate relevant, challenging questions based on the domain and difficulty level."
	EvaluationSystemPrompt = "You are an expert technical interviewer. Evaluate answers objectively, considering correctness, depth, and clarity."
)

// BuildGenerationPrompt renders the question-generation prompt. Reference
// questions from the topic bank, when present, are appended as context.
func BuildGenerationPrompt(domain, difficulty string, references []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Generate 5 interview questions for the %s domain at %s difficulty level.
Return only a JSON array of question strings, no additional text.
Example format: ["Question 1?", "Question 2?", "Question 3?", "Question 4?", "Question 5?"]`, domain, difficulty)

	if len(references) > 0 {
		b.WriteString("\n\nReference questions previously asked in this domain, for style and scope:\n")
		for i, ref := range references {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ref)
		}
		b.WriteString("Do not repeat these verbatim.")
	}
	return b.String()
}

// BuildEvaluationPrompt renders the scoring prompt for one interview's
// question/answer pairs.
func BuildEvaluationPrompt(questions, answers []string) string {
	pairs := make([]string, 0, len(questions))
	for i, q := range questions {
		answer := NoAnswerPlaceholder
		if i < len(answers) && strings.TrimSpace(answers[i]) != "" {
			answer = answers[i]
		}
		pairs = append(pairs, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, q, i+1, answer))
	}

	return fmt.Sprintf(`Evaluate the following interview answers. For each question-answer pair, provide a score between 0-100 and brief feedback.

Questions and Answers:
%s

Return a JSON object with the following structure:
{
  "scores": [score1, score2, score3, ...],
  "overallScore": averageScore,
  "feedback": "overall feedback paragraph"
}`, strings.Join(pairs, "\n\n"))
}
