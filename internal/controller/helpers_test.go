package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"signlearn_backend/internal/config"
	"signlearn_backend/internal/middleware"
	"signlearn_backend/internal/model"
	"signlearn_backend/internal/repository"
	"signlearn_backend/internal/service"
	"signlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	jwtSecret = "test-secret-test-secret-test-secret"
	learnerID = "9d4a1a7e-2f0b-4d8c-a3f1-5b9e7c6d2e10"
)

type memLearners struct {
	learners  map[string]model.Learner
	updateErr error
}

func (m *memLearners) FindByUUID(ctx context.Context, id string) (*model.Learner, error) {
	l, ok := m.learners[id]
	if !ok {
		return nil, util.NewError("learner.Find", util.ErrRecordNotFound, "learner not found")
	}
	return &l, nil
}

func (m *memLearners) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	l, ok := m.learners[id]
	if !ok {
		return util.NewError("learner.Update", util.ErrRecordNotFound, "learner not found")
	}
	if v, ok := fields[repository.LearnerColumnName]; ok {
		l.Name = v.(string)
	}
	if v, ok := fields[repository.LearnerColumnProfilePicture]; ok {
		pic := v.(string)
		l.ProfilePicture = &pic
	}
	m.learners[id] = l
	return nil
}

type memCatalog struct {
	courses []model.Course
}

func (m *memCatalog) List(ctx context.Context) ([]model.Course, error) {
	return append([]model.Course(nil), m.courses...), nil
}

func (m *memCatalog) ListByIDs(ctx context.Context, ids []int64) ([]model.Course, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []model.Course{}
	for _, c := range m.courses {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCatalog) FindByID(ctx context.Context, id int64) (*model.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, util.NewError("course.Find", util.ErrRecordNotFound, "course not found")
}

func (m *memCatalog) SearchByName(ctx context.Context, term string) ([]model.Course, error) {
	out := []model.Course{}
	for _, c := range m.courses {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
			out = append(out, c)
		}
	}
	return out, nil
}

type memQuestions struct {
	questions []model.Question
}

func (m *memQuestions) ListByCourse(ctx context.Context, courseID int64) ([]model.Question, error) {
	out := []model.Question{}
	for _, q := range m.questions {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

type memObjects struct {
	keys []string
}

func (m *memObjects) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts service.PutOptions) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	return "/uploads/profile-picture/" + key, nil
}

type testServer struct {
	router   *gin.Engine
	learners *memLearners
	objects  *memObjects
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: jwtSecret},
		Storage: config.StorageConfig{CacheControl: "3600"},
		Progress: config.ProgressConfig{
			RecommendationLimit: 3,
			NameMaxLength:       100,
			TotalSigns:          16,
			AvatarMaxBytes:      1 << 10,
		},
	}

	learners := &memLearners{learners: map[string]model.Learner{
		learnerID: {UUID: learnerID, Name: "Ana", CompletedLessons: []int64{1, 42}},
	}}
	catalog := &memCatalog{courses: []model.Course{
		{ID: 1, Name: "Alphabet", Difficulty: model.DifficultyEasy},
		{ID: 2, Name: "Numbers", Difficulty: model.DifficultyEasy},
		{ID: 3, Name: "Greetings", Difficulty: model.DifficultyMedium},
		{ID: 4, Name: "Family", Difficulty: model.DifficultyMedium},
		{ID: 5, Name: "Food", Difficulty: model.DifficultyHard},
	}}
	questions := &memQuestions{questions: []model.Question{
		{ID: 7, CourseID: 1, Title: "Which sign is A?", Options: model.QuestionOptions{Option: []string{"fist", "flat hand", "point"}}, Correct: "fist", Video: "a.mp4"},
		{ID: 8, CourseID: 1, Title: "Which sign is B?", Options: model.QuestionOptions{Option: []string{"fist", "flat hand"}}, Correct: "flat hand"},
	}}
	objects := &memObjects{}

	progress := NewProgressController(service.NewProgressService(learners, catalog, cfg.Progress))
	course := NewCourseController(service.NewCourseService(catalog, questions))
	profile := NewProfileController(service.NewProfileService(learners, objects, cfg))

	router := gin.New()
	api := router.Group("/api", middleware.AuthMiddleware(cfg))
	api.GET("/progress/overview", progress.GetOverview)
	api.GET("/progress/stats", progress.GetStats)
	api.GET("/progress/courses", progress.GetCourses)
	api.GET("/progress/recommendations", progress.GetRecommendations)
	api.GET("/progress/completed", progress.GetCompleted)
	api.GET("/courses", course.ListCourses)
	api.GET("/courses/:id", course.GetCourse)
	api.GET("/courses/:id/questions", course.GetCourseQuestions)
	api.GET("/profile", profile.GetProfile)
	api.PUT("/profile/name", profile.Rename)
	api.POST("/profile/avatar", profile.UploadAvatar)
	api.PUT("/profile/avatar", profile.AttachAvatar)

	return &testServer{router: router, learners: learners, objects: objects}
}

func bearer(t *testing.T, subject string) string {
	t.Helper()
	token, err := util.GenerateJWT(subject, "", jwtSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) do(t *testing.T, req *http.Request, auth string) *httptest.ResponseRecorder {
	t.Helper()
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil), bearer(t, learnerID))
}

func (s *testServer) putJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req, bearer(t, learnerID))
}

// decode unmarshals the envelope's data field into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) util.Response {
	t.Helper()
	var env struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return util.Response{Code: env.Code, Message: env.Message}
}

func courseNames(courses []model.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Name)
	}
	return out
}
