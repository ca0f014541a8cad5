package service

import (
	"context"
	"strings"

	"signlearn_backend/internal/model"
)

// QuestionBank reads the quiz questions attached to courses.
type QuestionBank interface {
	ListByCourse(ctx context.Context, courseID int64) ([]model.Question, error)
}

// CourseService serves the read-only course catalog and its quizzes.
type CourseService struct {
	Courses   CourseCatalog
	Questions QuestionBank
}

func NewCourseService(courses CourseCatalog, questions QuestionBank) *CourseService {
	return &CourseService{Courses: courses, Questions: questions}
}

// List returns the catalog, narrowed to names containing search when given.
func (s *CourseService) List(ctx context.Context, search string) ([]model.Course, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return s.Courses.List(ctx)
	}
	return s.Courses.SearchByName(ctx, search)
}

func (s *CourseService) Get(ctx context.Context, id int64) (*model.Course, error) {
	return s.Courses.FindByID(ctx, id)
}

// Quiz returns the questions of course id. An unknown course is RecordNotFound;
// a course without questions yields an empty quiz.
func (s *CourseService) Quiz(ctx context.Context, id int64) (*model.CourseQuiz, error) {
	course, err := s.Courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.Questions.ListByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CourseQuiz{CourseID: course.ID, CourseName: course.Name, Questions: questions}, nil
}
