package model

// QuestionOptions is stored as {"option": [...]} in the options column.
type QuestionOptions struct {
	Option []string `json:"option"`
}

// swagger:model Question
type Question struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID int64           `gorm:"index;not null" json:"course_id"`
	Title    string          `gorm:"size:500;not null" json:"title"`
	Options  QuestionOptions `gorm:"serializer:json" json:"options"`
	Correct  string          `gorm:"size:200" json:"correct"`
	Video    string          `gorm:"size:500" json:"video"`
}

func (Question) TableName() string {
	return "questions"
}

// CourseQuiz is a course's questions together with its name.
// swagger:model CourseQuiz
type CourseQuiz struct {
	CourseID   int64      `json:"course_id"`
	CourseName string     `json:"course_name"`
	Questions  []Question `json:"questions"`
}
