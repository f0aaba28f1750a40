package repository

import (
	"github.com/pgvector/pgvector-go"
	"github.com/prepwise/interview-api/internal/model"
	"gorm.io/gorm"
)

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.db.Create(topic).Error
}

func (r *TopicRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Topic{}).Count(&count).Error
	return count, err
}

// SearchTopics returns the topK reference questions closest to the embedding.
func (r *TopicRepository) SearchTopics(embedding pgvector.Vector, topK int) ([]model.Topic, error) {
	var topics []model.Topic

	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM topics
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&topics).Error

	return topics, err
}
