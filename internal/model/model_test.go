package model

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyEasy, ParseDifficulty("Easy"))
	assert.Equal(t, DifficultyMedium, ParseDifficulty(" medium "))
	assert.Equal(t, DifficultyHard, ParseDifficulty("HARD"))
	assert.Equal(t, DifficultyUnknown, ParseDifficulty("expert"))
	assert.Equal(t, DifficultyUnknown, ParseDifficulty(""))
}

func TestCourse_AfterFind(t *testing.T) {
	blank := "  "
	c := Course{Difficulty: "Medium", Length: -5, Image: &blank}
	require.NoError(t, c.AfterFind(nil))

	assert.Equal(t, DifficultyMedium, c.Difficulty)
	assert.Equal(t, 0, c.Length)
	assert.Nil(t, c.Image)
}

func TestLearner_CompletedIDs(t *testing.T) {
	l := Learner{CompletedLessons: []int64{7, 2, 7, 5, 2}}
	assert.Equal(t, []int64{2, 5, 7}, l.CompletedIDs())
	assert.Len(t, l.CompletedSet(), 3)

	var empty Learner
	assert.Empty(t, empty.CompletedIDs())
}

func TestLearner_WithCompleted(t *testing.T) {
	ids := []int64{1, 3}
	l := Learner{UUID: "x", CompletedLessons: []int64{1, 3, 99}}

	filtered := l.WithCompleted(ids)
	ids[0] = 100

	assert.Equal(t, []int64{1, 3}, filtered.CompletedLessons)
	assert.Equal(t, []int64{1, 3, 99}, l.CompletedLessons)
	assert.Equal(t, "x", filtered.UUID)
}

func TestLearner_SignsLearnedCount(t *testing.T) {
	var l Learner
	require.NoError(t, json.Unmarshal([]byte(`{"signs_learned":[{"sign":"A"},"B",3]}`), &l))
	assert.Equal(t, 3, l.SignsLearnedCount())
}

func TestCourseSplit_CompletedIDs(t *testing.T) {
	split := CourseSplit{Completed: []Course{{ID: 4}, {ID: 1}}}
	assert.Equal(t, []int64{4, 1}, split.CompletedIDs())
	assert.Empty(t, CourseSplit{}.CompletedIDs())
}

func TestLearner_NameColumnMatchesSize(t *testing.T) {
	field, ok := reflect.TypeOf(Learner{}).FieldByName("Name")
	require.True(t, ok)
	assert.Contains(t, strings.Split(field.Tag.Get("gorm"), ";"), "size:"+strconv.Itoa(NameColumnSize))
}

func TestQuestion_OptionsJSON(t *testing.T) {
	q := Question{ID: 1, CourseID: 2, Title: "A?", Options: QuestionOptions{Option: []string{"fist", "flat"}}, Correct: "fist"}
	raw, err := json.Marshal(q.Options)
	require.NoError(t, err)
	assert.JSONEq(t, `{"option":["fist","flat"]}`, string(raw))

	var back QuestionOptions
	require.NoError(t, json.Unmarshal([]byte(`{"option":[]}`), &back))
	assert.NotNil(t, back.Option)
	assert.Empty(t, back.Option)
}
