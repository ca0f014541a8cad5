package service

import (
	"encoding/json"
	"math/rand"
	"testing"

	"signlearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idSet(ids ...int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestClassify_Scenario(t *testing.T) {
	split := Classify(sampleCatalog(), idSet(1))

	assert.Equal(t, []string{"Alphabet"}, names(split.Completed))
	assert.Equal(t, []string{"Numbers", "Greetings"}, names(split.Remaining))

	recs := SelectRecommendations(split.Remaining, 1)
	assert.Equal(t, []string{"Numbers"}, names(recs))
}

func TestClassify_StaleReferencesIgnored(t *testing.T) {
	catalog := sampleCatalog()
	split := Classify(catalog, idSet(999))

	assert.Empty(t, split.Completed)
	assert.Equal(t, catalog, split.Remaining)
}

func TestClassify_EmptyInputs(t *testing.T) {
	split := Classify(nil, nil)
	assert.Empty(t, split.Completed)
	assert.Empty(t, split.Remaining)

	split = Classify(sampleCatalog(), nil)
	assert.Empty(t, split.Completed)
	assert.Len(t, split.Remaining, 3)
}

func TestClassify_PartitionsCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		var catalog []model.Course
		size := int64(rng.Intn(20))
		for id := int64(1); id <= size; id++ {
			catalog = append(catalog, model.Course{ID: id * 3})
		}
		completed := map[int64]struct{}{}
		picks := rng.Intn(25)
		for i := 0; i < picks; i++ {
			completed[int64(rng.Intn(70))] = struct{}{}
		}

		split := Classify(catalog, completed)
		require.Equal(t, len(catalog), len(split.Completed)+len(split.Remaining))

		// merging both sides by catalog position gives back the catalog
		ci, ri := 0, 0
		for _, course := range catalog {
			_, done := completed[course.ID]
			if done {
				require.Equal(t, course, split.Completed[ci])
				ci++
			} else {
				require.Equal(t, course, split.Remaining[ri])
				ri++
			}
		}
	}
}

func TestSelectRecommendations(t *testing.T) {
	remaining := sampleCatalog()

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"zero limit", 0, []string{}},
		{"negative limit", -2, []string{}},
		{"prefix", 2, []string{"Alphabet", "Numbers"}},
		{"exact", 3, []string{"Alphabet", "Numbers", "Greetings"}},
		{"more than available", 10, []string{"Alphabet", "Numbers", "Greetings"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectRecommendations(remaining, tt.limit)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, got, SelectRecommendations(remaining, tt.limit))
		})
	}

	assert.Empty(t, SelectRecommendations(nil, 3))
}

func TestSelectRecommendations_DoesNotAliasInput(t *testing.T) {
	remaining := sampleCatalog()
	got := SelectRecommendations(remaining, 2)
	got[0].Name = "changed"
	assert.Equal(t, "Alphabet", remaining[0].Name)
}

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds away from zero
		{3, 8, 38}, // 37.5
		{1, 200, 1}, // 0.5
		{1, 201, 0},
		{3, 3, 100},
		{5, 3, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionPercent(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestCompletionPercent_Bounds(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for completed := 0; completed <= total+2; completed++ {
			p := CompletionPercent(completed, total)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
}

func TestAggregateStats(t *testing.T) {
	learner := &model.Learner{
		UUID:             "a",
		CompletedLessons: []int64{1, 1, 2},
		Score:            120,
		StreakDays:       4,
	}
	learner.SignsLearned = make([]json.RawMessage, 5)

	stats := AggregateStats(learner, 3)
	assert.Equal(t, model.Stats{
		CompletedCount:    2,
		TotalCourses:      3,
		CompletionPercent: 67,
		SignsLearnedCount: 5,
		Score:             120,
		StreakDays:        4,
	}, stats)
}

func TestAggregateStats_EmptyLearnerAndCatalog(t *testing.T) {
	stats := AggregateStats(&model.Learner{}, 0)
	assert.Equal(t, model.Stats{}, stats)
}

func TestAggregateStats_OneOfThree(t *testing.T) {
	stats := AggregateStats(&model.Learner{CompletedLessons: []int64{7}}, 3)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 33, stats.CompletionPercent)
}
