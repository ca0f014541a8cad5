package service

import (
	"signlearn_backend/internal/model"
)

// Classify partitions catalog into the courses whose id is in completed and
// the rest, keeping catalog order in both. Ids in completed that are not in
// the catalog are ignored.
func Classify(catalog []model.Course, completed map[int64]struct{}) model.CourseSplit {
	split := model.CourseSplit{
		Completed: make([]model.Course, 0, len(completed)),
		Remaining: make([]model.Course, 0, len(catalog)),
	}
	for _, course := range catalog {
		if _, ok := completed[course.ID]; ok {
			split.Completed = append(split.Completed, course)
		} else {
			split.Remaining = append(split.Remaining, course)
		}
	}
	return split
}

// Recommender picks the courses to surface as "continue learning".
type Recommender interface {
	Recommend(remaining []model.Course, limit int) []model.Course
}

// PrefixRecommender keeps the order it is given and cuts at limit.
type PrefixRecommender struct{}

func (PrefixRecommender) Recommend(remaining []model.Course, limit int) []model.Course {
	return SelectRecommendations(remaining, limit)
}

// SelectRecommendations returns the first limit courses of remaining.
func SelectRecommendations(remaining []model.Course, limit int) []model.Course {
	if limit < 0 {
		limit = 0
	}
	n := min(len(remaining), limit)
	out := make([]model.Course, n)
	copy(out, remaining[:n])
	return out
}

// AggregateStats summarizes a learner against a catalog of totalCourses.
// Score and streak are reported as stored.
func AggregateStats(learner *model.Learner, totalCourses int) model.Stats {
	completed := len(learner.CompletedSet())
	if totalCourses < 0 {
		totalCourses = 0
	}
	return model.Stats{
		CompletedCount:    completed,
		TotalCourses:      totalCourses,
		CompletionPercent: CompletionPercent(completed, totalCourses),
		SignsLearnedCount: learner.SignsLearnedCount(),
		Score:             learner.Score,
		StreakDays:        learner.StreakDays,
	}
}

// CompletionPercent rounds completed/total to the nearest whole percent,
// halves away from zero. An empty catalog is 0%, and the result never
// exceeds 100.
func CompletionPercent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return (completed*200 + total) / (2 * total)
}
