package repository

import (
	"context"

	"signlearn_backend/internal/model"
	"signlearn_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// ListByCourse returns the questions of a course ordered by id.
func (r *QuestionRepository) ListByCourse(ctx context.Context, courseID int64) ([]model.Question, error) {
	questions := []model.Question{}
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("id ASC").Find(&questions).Error
	if err != nil {
		return nil, util.WrapError("question.ListByCourse", util.ErrStore, "could not load questions", err)
	}
	return questions, nil
}

// Upsert inserts questions or overwrites the stored ones with the same id.
func (r *QuestionRepository) Upsert(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"course_id", "title", "options", "correct", "video"}),
	}).Create(&questions).Error
	if err != nil {
		return util.WrapError("question.Upsert", util.ErrStore, "could not save questions", err)
	}
	return nil
}
