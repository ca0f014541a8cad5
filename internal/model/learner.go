package model

import (
	"encoding/json"
	"sort"
	"time"
)

// NameColumnSize is the width of the learners.name column.
const NameColumnSize = 100

// swagger:model Learner
type Learner struct {
	UUID             string            `gorm:"primaryKey;column:uuid;type:varchar(36)" json:"uuid"`
	Name             string            `gorm:"size:100;not null" json:"name"`
	ProfilePicture   *string           `gorm:"size:500" json:"profile_picture,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	CompletedLessons []int64           `gorm:"serializer:json" json:"completed_lessons"`
	SignsLearned     []json.RawMessage `gorm:"serializer:json" json:"signs_learned"` // opaque, only counted
	Score            int               `gorm:"default:0" json:"score"`
	StreakDays       int               `gorm:"default:0" json:"streak_days"`
}

func (Learner) TableName() string {
	return "learners"
}

// CompletedSet returns the completed course ids with duplicates collapsed.
// A missing array reads as the empty set.
func (l *Learner) CompletedSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(l.CompletedLessons))
	for _, id := range l.CompletedLessons {
		set[id] = struct{}{}
	}
	return set
}

// CompletedIDs returns the distinct completed ids in ascending order.
func (l *Learner) CompletedIDs() []int64 {
	set := l.CompletedSet()
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (l *Learner) SignsLearnedCount() int {
	return len(l.SignsLearned)
}

// WithCompleted returns a copy of the learner whose completed set is ids.
func (l Learner) WithCompleted(ids []int64) Learner {
	l.CompletedLessons = append([]int64(nil), ids...)
	return l
}
