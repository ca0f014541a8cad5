package repository

import (
	"context"
	"errors"

	"signlearn_backend/internal/model"
	"signlearn_backend/internal/util"

	"gorm.io/gorm"
)

// Learner columns that profile updates may touch.
const (
	LearnerColumnName           = "name"
	LearnerColumnProfilePicture = "profile_picture"
)

type LearnerRepository struct {
	DB *gorm.DB
}

func NewLearnerRepository(db *gorm.DB) *LearnerRepository {
	return &LearnerRepository{DB: db}
}

func (r *LearnerRepository) FindByUUID(ctx context.Context, id string) (*model.Learner, error) {
	var learner model.Learner
	err := r.DB.WithContext(ctx).Where("uuid = ?", id).First(&learner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewError("learner.Find", util.ErrRecordNotFound, "learner not found")
	}
	if err != nil {
		return nil, util.WrapError("learner.Find", util.ErrStore, "could not load learner", err)
	}
	return &learner, nil
}

// Update writes only the given columns. Writing the values a row already holds
// is not an error, so the row count alone cannot tell a missing learner apart.
func (r *LearnerRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.DB.WithContext(ctx).Model(&model.Learner{}).Where("uuid = ?", id).Updates(fields)
	if res.Error != nil {
		return util.WrapError("learner.Update", util.ErrStore, "could not update learner", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.Learner{}).Where("uuid = ?", id).Count(&count).Error; err != nil {
		return util.WrapError("learner.Update", util.ErrStore, "could not update learner", err)
	}
	if count == 0 {
		return util.NewError("learner.Update", util.ErrRecordNotFound, "learner not found")
	}
	return nil
}
