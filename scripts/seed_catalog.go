// Loads the course catalog from a YAML file into the record store.
//
// Courses and quiz questions are matched by id, so running it again updates
// them in place.
//
// Usage: go run scripts/seed_catalog.go -catalog configs/courses.yaml

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"signlearn_backend/internal/config"
	"signlearn_backend/internal/model"
	"signlearn_backend/internal/repository"
	"signlearn_backend/pkg/database"
	"signlearn_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Courses []struct {
		ID          int64   `yaml:"id"`
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Difficulty  string  `yaml:"difficulty"`
		Length      int     `yaml:"length"`
		Image       *string `yaml:"image"`
	} `yaml:"courses"`
	Questions []struct {
		ID       int64    `yaml:"id"`
		CourseID int64    `yaml:"course_id"`
		Title    string   `yaml:"title"`
		Options  []string `yaml:"options"`
		Correct  string   `yaml:"correct"`
		Video    string   `yaml:"video"`
	} `yaml:"questions"`
}

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	catalogPath := flag.String("catalog", "configs/courses.yaml", "catalog file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.InitLogger(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Fatalf("Failed to parse catalog: %v", err)
	}

	courses := make([]model.Course, 0, len(file.Courses))
	for _, c := range file.Courses {
		if c.ID <= 0 || c.Name == "" {
			log.Fatalf("Catalog entry needs a positive id and a name: %+v", c)
		}
		courses = append(courses, model.Course{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Difficulty:  model.ParseDifficulty(c.Difficulty),
			Length:      c.Length,
			Image:       c.Image,
		})
	}

	known := make(map[int64]bool, len(courses))
	for _, c := range courses {
		known[c.ID] = true
	}
	questions := make([]model.Question, 0, len(file.Questions))
	for _, q := range file.Questions {
		if q.ID <= 0 || q.Title == "" || !known[q.CourseID] {
			log.Fatalf("Question needs a positive id, a title and a listed course: %+v", q)
		}
		questions = append(questions, model.Question{
			ID:       q.ID,
			CourseID: q.CourseID,
			Title:    q.Title,
			Options:  model.QuestionOptions{Option: q.Options},
			Correct:  q.Correct,
			Video:    q.Video,
		})
	}

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	courseRepo := repository.NewCourseRepository(db)
	if err := courseRepo.Upsert(ctx, courses); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	if err := repository.NewQuestionRepository(db).Upsert(ctx, questions); err != nil {
		log.Fatalf("Failed to seed questions: %v", err)
	}

	total, err := courseRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count courses: %v", err)
	}
	log.Printf("Seeded %d courses and %d questions, catalog now holds %d", len(courses), len(questions), total)
}
