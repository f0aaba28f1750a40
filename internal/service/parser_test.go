package service

import (
	"errors"
	"testing"
)

func TestParseQuestionsValid(t *testing.T) {
	raw := `["q1", "q2", "q3", "q4", "q5"]`
	questions, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("ParseQuestions returned error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	if questions[0] != "q1" || questions[4] != "q5" {
		t.Fatalf("unexpected questions: %v", questions)
	}
}

func TestParseQuestionsStripsMarkdownFences(t *testing.T) {
	raw := "```json\n[\"q1\", \"q2\", \"q3\", \"q4\", \"q5\"]\n```"
	questions, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("ParseQuestions returned error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
}

func TestParseQuestionsRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "here are your questions: 1. foo"},
		{"object not array", `{"questions": ["a","b","c","d","e"]}`},
		{"too few", `["q1","q2","q3","q4"]`},
		{"too many", `["q1","q2","q3","q4","q5","q6"]`},
		{"non-string element", `["q1","q2",3,"q4","q5"]`},
		{"empty element", `["q1","q2","","q4","q5"]`},
		{"empty input", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseQuestions(tc.raw); !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestParseEvaluationValid(t *testing.T) {
	raw := `{"scores":[80,90,70,60,85],"overallScore":77,"feedback":"Good"}`
	eval, err := ParseEvaluation(raw, 5)
	if err != nil {
		t.Fatalf("ParseEvaluation returned error: %v", err)
	}
	if len(eval.Scores) != 5 {
		t.Fatalf("expected 5 scores, got %d", len(eval.Scores))
	}
	if eval.OverallScore != 77 {
		t.Fatalf("expected overall 77, got %v", eval.OverallScore)
	}
	if eval.Feedback != "Good" {
		t.Fatalf("unexpected feedback: %q", eval.Feedback)
	}
}

func TestParseEvaluationClampsScores(t *testing.T) {
	raw := `{"scores":[-10,150,50],"overallScore":120,"feedback":"out of range"}`
	eval, err := ParseEvaluation(raw, 3)
	if err != nil {
		t.Fatalf("ParseEvaluation returned error: %v", err)
	}
	want := []float64{0, 100, 50}
	for i, score := range eval.Scores {
		if score != want[i] {
			t.Fatalf("score %d: expected %v, got %v", i, want[i], score)
		}
	}
	if eval.OverallScore != 100 {
		t.Fatalf("expected overall clamped to 100, got %v", eval.OverallScore)
	}
}

func TestParseEvaluationRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "score: 80"},
		{"array not object", `[80,90,70]`},
		{"missing scores", `{"overallScore":77,"feedback":"Good"}`},
		{"scores not array", `{"scores":"80","overallScore":77,"feedback":"Good"}`},
		{"missing overall", `{"scores":[80,90,70],"feedback":"Good"}`},
		{"overall not number", `{"scores":[80,90,70],"overallScore":"77","feedback":"Good"}`},
		{"missing feedback", `{"scores":[80,90,70],"overallScore":77}`},
		{"empty feedback", `{"scores":[80,90,70],"overallScore":77,"feedback":"  "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseEvaluation(tc.raw, 3); !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestParseEvaluationRejectsScoreCountMismatch(t *testing.T) {
	raw := `{"scores":[80,90,70],"overallScore":80,"feedback":"Good"}`
	if _, err := ParseEvaluation(raw, 5); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse on count mismatch, got %v", err)
	}
}
