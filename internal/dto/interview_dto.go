package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartInterviewRequest struct {
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
}

type StartInterviewResponse struct {
	InterviewID uuid.UUID `json:"interviewId"`
	Questions   []string  `json:"questions"`
	Domain      string    `json:"domain"`
	Difficulty  string    `json:"difficulty"`
}

type SubmitInterviewRequest struct {
	InterviewID string   `json:"interviewId"`
	Answers     []string `json:"answers"`
}

type SubmitInterviewResponse struct {
	InterviewID  uuid.UUID `json:"interviewId"`
	Scores       []float64 `json:"scores"`
	OverallScore float64   `json:"overallScore"`
	Feedback     string    `json:"feedback"`
}

type InterviewSummaryDTO struct {
	ID           uuid.UUID  `json:"id"`
	Domain       string     `json:"domain"`
	Difficulty   string     `json:"difficulty"`
	Status       string     `json:"status"`
	OverallScore float64    `json:"overallScore"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}
