package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Topic is a reference interview question with its embedding. The pipeline
// retrieves nearby topics for a requested domain and feeds them to the
// provider as context for question generation.
type Topic struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Domain    string          `gorm:"type:varchar(100)" json:"domain"`
	Question  string          `gorm:"type:text" json:"question"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

func (t *Topic) TableName() string {
	return "topics"
}
