package service

import (
	"context"
	"sync/atomic"

	"signlearn_backend/internal/config"
	"signlearn_backend/internal/model"
	"signlearn_backend/pkg/monitoring"
	"signlearn_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// LearnerStore is the learner side of the record store.
type LearnerStore interface {
	FindByUUID(ctx context.Context, id string) (*model.Learner, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// CourseCatalog is the course side of the record store.
type CourseCatalog interface {
	List(ctx context.Context) ([]model.Course, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Course, error)
	FindByID(ctx context.Context, id int64) (*model.Course, error)
	SearchByName(ctx context.Context, term string) ([]model.Course, error)
}

// ProgressService derives a learner's progress views from one snapshot of
// the learner record and the catalog.
type ProgressService struct {
	Learners    LearnerStore
	Courses     CourseCatalog
	Recommender Recommender

	settings atomic.Pointer[config.ProgressConfig]
}

func NewProgressService(learners LearnerStore, courses CourseCatalog, cfg config.ProgressConfig) *ProgressService {
	s := &ProgressService{
		Learners:    learners,
		Courses:     courses,
		Recommender: PrefixRecommender{},
	}
	s.ApplyConfig(cfg)
	return s
}

// ApplyConfig swaps in new settings; safe while requests are served.
func (s *ProgressService) ApplyConfig(cfg config.ProgressConfig) {
	s.settings.Store(&cfg)
}

// DefaultLimit is the recommendation count used when the caller gives none.
func (s *ProgressService) DefaultLimit() int {
	return s.settings.Load().RecommendationLimit
}

type snapshot struct {
	learner *model.Learner
	catalog []model.Course
	split   model.CourseSplit
}

func (s *ProgressService) load(ctx context.Context, learnerID string) (*snapshot, error) {
	learner, err := s.Learners.FindByUUID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.Courses.List(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot{
		learner: learner,
		catalog: catalog,
		split:   Classify(catalog, learner.CompletedSet()),
	}, nil
}

// stats counts only completed ids still present in the catalog, so the
// numbers agree with the completed course list.
func (s *ProgressService) stats(snap *snapshot) model.Stats {
	live := snap.learner.WithCompleted(snap.split.CompletedIDs())
	stats := AggregateStats(&live, len(snap.catalog))
	stats.TotalSigns = s.settings.Load().TotalSigns
	return stats
}

func (s *ProgressService) recommend(remaining []model.Course, limit int) []model.Course {
	recs := s.Recommender.Recommend(remaining, limit)
	monitoring.RecommendationsServed.Observe(float64(len(recs)))
	return recs
}

// Overview returns stats, the completion split and recommendations together.
func (s *ProgressService) Overview(ctx context.Context, learnerID string, limit int) (*model.ProgressOverview, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ProgressService.Overview")
	defer span.End()
	span.SetAttributes(attribute.String("learner.id", learnerID), attribute.Int("limit", limit))

	snap, err := s.load(ctx, learnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &model.ProgressOverview{
		Stats:           s.stats(snap),
		Completed:       snap.split.Completed,
		Remaining:       snap.split.Remaining,
		Recommendations: s.recommend(snap.split.Remaining, limit),
	}, nil
}

func (s *ProgressService) Stats(ctx context.Context, learnerID string) (*model.Stats, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ProgressService.Stats")
	defer span.End()

	snap, err := s.load(ctx, learnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	stats := s.stats(snap)
	return &stats, nil
}

func (s *ProgressService) Split(ctx context.Context, learnerID string) (*model.CourseSplit, error) {
	snap, err := s.load(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return &snap.split, nil
}

func (s *ProgressService) Recommendations(ctx context.Context, learnerID string, limit int) ([]model.Course, error) {
	snap, err := s.load(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return s.recommend(snap.split.Remaining, limit), nil
}

// CompletedCourses looks up the learner's completed courses by id; ids whose
// course was removed from the catalog drop out.
func (s *ProgressService) CompletedCourses(ctx context.Context, learnerID string) ([]model.Course, error) {
	learner, err := s.Learners.FindByUUID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return s.Courses.ListByIDs(ctx, learner.CompletedIDs())
}
