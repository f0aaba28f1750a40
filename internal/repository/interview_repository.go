package repository

import (
	"time"

	"github.com/prepwise/interview-api/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) Create(interview *model.Interview) error {
	return r.db.Create(interview).Error
}

func (r *InterviewRepository) FindByID(id string) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.First(&interview, "id = ?", id).Error
	return &interview, err
}

func (r *InterviewRepository) FindByOwner(ownerID string) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

// Complete writes the evaluation result and flips the interview to completed.
// The update is conditional on status still being in-progress, so two racing
// submissions for the same id cannot both win. Returns false when the row was
// already completed (or gone).
func (r *InterviewRepository) Complete(interview *model.Interview) (bool, error) {
	now := time.Now()
	interview.Status = model.StatusCompleted
	interview.CompletedAt = &now

	res := r.db.Model(&model.Interview{}).
		Where("id = ? AND status = ?", interview.ID, model.StatusInProgress).
		Select("answers", "scores", "overall_score", "feedback", "status", "completed_at").
		Updates(interview)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
