package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"signlearn_backend/internal/model"
	"signlearn_backend/internal/repository"
	"signlearn_backend/internal/util"
)

type fakeLearnerStore struct {
	mu        sync.Mutex
	learners  map[string]model.Learner
	findErr   error
	updateErr error
	updates   int
}

func newFakeLearnerStore(learners ...model.Learner) *fakeLearnerStore {
	s := &fakeLearnerStore{learners: make(map[string]model.Learner)}
	for _, l := range learners {
		s.learners[l.UUID] = l
	}
	return s
}

func (s *fakeLearnerStore) FindByUUID(ctx context.Context, id string) (*model.Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	l, ok := s.learners[id]
	if !ok {
		return nil, util.NewError("learner.Find", util.ErrRecordNotFound, "learner not found")
	}
	return &l, nil
}

func (s *fakeLearnerStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	l, ok := s.learners[id]
	if !ok {
		return util.NewError("learner.Update", util.ErrRecordNotFound, "learner not found")
	}
	for k, v := range fields {
		switch k {
		case repository.LearnerColumnName:
			l.Name = v.(string)
		case repository.LearnerColumnProfilePicture:
			pic := v.(string)
			l.ProfilePicture = &pic
		}
	}
	s.learners[id] = l
	s.updates++
	return nil
}

type fakeCatalog struct {
	courses []model.Course
	err     error
}

func (c *fakeCatalog) List(ctx context.Context) ([]model.Course, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := append([]model.Course(nil), c.courses...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *fakeCatalog) ListByIDs(ctx context.Context, ids []int64) ([]model.Course, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []model.Course{}
	for _, course := range all {
		if want[course.ID] {
			out = append(out, course)
		}
	}
	return out, nil
}

func (c *fakeCatalog) FindByID(ctx context.Context, id int64) (*model.Course, error) {
	for _, course := range c.courses {
		if course.ID == id {
			found := course
			return &found, nil
		}
	}
	return nil, util.NewError("course.Find", util.ErrRecordNotFound, "course not found")
}

func (c *fakeCatalog) SearchByName(ctx context.Context, term string) ([]model.Course, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Course{}
	for _, course := range all {
		if strings.Contains(strings.ToLower(course.Name), strings.ToLower(term)) {
			out = append(out, course)
		}
	}
	return out, nil
}

type storedObject struct {
	key          string
	data         []byte
	contentType  string
	cacheControl string
	overwrite    bool
}

type fakeObjectStore struct {
	objects []storedObject
	err     error
}

func (s *fakeObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts PutOptions) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.objects = append(s.objects, storedObject{
		key:          key,
		data:         data,
		contentType:  contentType,
		cacheControl: opts.CacheControl,
		overwrite:    opts.Overwrite,
	})
	return "https://cdn.example.com/profile-picture/" + key, nil
}

func sampleCatalog() []model.Course {
	return []model.Course{
		{ID: 1, Name: "Alphabet", Difficulty: model.DifficultyEasy, Length: 10},
		{ID: 2, Name: "Numbers", Difficulty: model.DifficultyEasy, Length: 15},
		{ID: 3, Name: "Greetings", Difficulty: model.DifficultyMedium, Length: 20},
	}
}

func names(courses []model.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Name)
	}
	return out
}

type fakeQuestionBank struct {
	questions []model.Question
	err       error
}

func (b *fakeQuestionBank) ListByCourse(ctx context.Context, courseID int64) ([]model.Question, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := []model.Question{}
	for _, q := range b.questions {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}
