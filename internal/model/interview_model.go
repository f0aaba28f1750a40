package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Interview is the aggregate root of one simulated interview. Questions are
// fixed at creation; answers, scores and feedback are written exactly once
// when the interview is completed.
type Interview struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      string     `gorm:"type:varchar(64);index" json:"owner_id"`
	Domain       string     `gorm:"type:varchar(100)" json:"domain"`
	Difficulty   string     `gorm:"type:varchar(10)" json:"difficulty"`
	Status       string     `gorm:"type:varchar(20);index" json:"status"`
	Questions    []string   `gorm:"serializer:json" json:"questions"`
	Answers      []string   `gorm:"serializer:json" json:"answers"`
	Scores       []float64  `gorm:"serializer:json" json:"scores"`
	OverallScore float64    `json:"overall_score"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
