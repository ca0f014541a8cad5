package model

import (
	"strings"

	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyUnknown Difficulty = "unknown"
)

// ParseDifficulty maps free-form catalog input onto the known levels.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// swagger:model Course
type Course struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"column:course_name;size:200;not null" json:"course_name"`
	Description string     `gorm:"type:text" json:"description"`
	Difficulty  Difficulty `gorm:"column:dificulty;size:20" json:"difficulty"`
	Length      int        `gorm:"default:0" json:"length"` // minutes
	Image       *string    `gorm:"size:500" json:"image,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// AfterFind normalizes rows written by the catalog tooling.
func (c *Course) AfterFind(tx *gorm.DB) error {
	c.Difficulty = ParseDifficulty(string(c.Difficulty))
	if c.Length < 0 {
		c.Length = 0
	}
	if c.Image != nil && strings.TrimSpace(*c.Image) == "" {
		c.Image = nil
	}
	return nil
}
