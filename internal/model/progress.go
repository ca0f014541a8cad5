package model

// swagger:model Stats
type Stats struct {
	CompletedCount    int `json:"completed_count"`
	TotalCourses      int `json:"total_courses"`
	CompletionPercent int `json:"completion_percent"`
	SignsLearnedCount int `json:"signs_learned_count"`
	TotalSigns        int `json:"total_signs"`
	Score             int `json:"score"`
	StreakDays        int `json:"streak_days"`
}

// CourseSplit partitions a catalog by completion.
// swagger:model CourseSplit
type CourseSplit struct {
	Completed []Course `json:"completed"`
	Remaining []Course `json:"remaining"`
}

// CompletedIDs returns the ids of the completed courses in catalog order.
func (s CourseSplit) CompletedIDs() []int64 {
	ids := make([]int64, 0, len(s.Completed))
	for _, c := range s.Completed {
		ids = append(ids, c.ID)
	}
	return ids
}

// swagger:model ProgressOverview
type ProgressOverview struct {
	Stats           Stats    `json:"stats"`
	Completed       []Course `json:"completed"`
	Remaining       []Course `json:"remaining"`
	Recommendations []Course `json:"recommendations"`
}
