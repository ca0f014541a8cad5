package repository

import (
	"context"
	"errors"
	"strings"

	"signlearn_backend/internal/model"
	"signlearn_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// List returns the whole catalog ordered by id.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&courses).Error; err != nil {
		return nil, util.WrapError("course.List", util.ErrStore, "could not load courses", err)
	}
	return courses, nil
}

// ListByIDs returns the courses among ids that still exist, ordered by id.
func (r *CourseRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Course, error) {
	courses := []model.Course{}
	if len(ids) == 0 {
		return courses, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&courses).Error; err != nil {
		return nil, util.WrapError("course.ListByIDs", util.ErrStore, "could not load courses", err)
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewError("course.Find", util.ErrRecordNotFound, "course not found")
	}
	if err != nil {
		return nil, util.WrapError("course.Find", util.ErrStore, "could not load course", err)
	}
	return &course, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.Course{}).Count(&count).Error; err != nil {
		return 0, util.WrapError("course.Count", util.ErrStore, "could not count courses", err)
	}
	return count, nil
}

// SearchByName matches a case-insensitive substring of the course name.
func (r *CourseRepository) SearchByName(ctx context.Context, term string) ([]model.Course, error) {
	var courses []model.Course
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	err := r.DB.WithContext(ctx).
		Where("LOWER(course_name) LIKE ? ESCAPE '!'", pattern).
		Order("id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, util.WrapError("course.Search", util.ErrStore, "could not search courses", err)
	}
	return courses, nil
}

// Upsert inserts courses or overwrites the stored ones with the same id.
func (r *CourseRepository) Upsert(ctx context.Context, courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"course_name", "description", "dificulty", "length", "image"}),
	}).Create(&courses).Error
	if err != nil {
		return util.WrapError("course.Upsert", util.ErrStore, "could not save courses", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
