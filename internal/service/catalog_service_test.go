package service

import (
	"context"
	"testing"
	"time"

	"poker_school_backend/internal/config"
	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func published() *time.Time {
	now := time.Now()
	return &now
}

func newCatalogFixture(t *testing.T) (*CatalogService, *gorm.DB) {
	db := newTestDB(t)
	media := NewMediaService(repository.NewUploadRepository(db), nil, &config.StorageConfig{}, zap.NewNop())
	svc := NewCatalogService(
		repository.NewCourseRepository(db),
		repository.NewChapterRepository(db),
		repository.NewComponentRepository(db),
		media,
	)
	return svc, db
}

func seedCourseTree(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustCreate := func(v interface{}) {
		t.Helper()
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed %T: %v", v, err)
		}
	}

	mustCreate(&model.Course{UUIDBase: model.UUIDBase{ID: "c1"}, Name: "Cash Games", PublishedAt: published()})
	mustCreate(&model.Chapter{UUIDBase: model.UUIDBase{ID: "ch1"}, CourseID: "c1", Title: "Preflop", PublishedAt: published()})
	mustCreate(&model.Chapter{UUIDBase: model.UUIDBase{ID: "ch2"}, CourseID: "c1", Title: "Empty", PublishedAt: published()})

	mustCreate(&model.Video{UUIDBase: model.UUIDBase{ID: "v1"}, Title: "Opening Ranges", URL: "abc123", Order: 2, PublishedAt: published()})
	mustCreate(&model.Quiz{UUIDBase: model.UUIDBase{ID: "q1"}, Title: "Range Check", Order: 1, PublishedAt: published()})
	mustCreate(&model.Quiz{UUIDBase: model.UUIDBase{ID: "q2"}, Title: "No Questions Yet", Order: 3, PublishedAt: published()})

	mustCreate(&model.Question{UUIDBase: model.UUIDBase{ID: "qq1"}, OwnerID: "q1", OwnerType: "quiz",
		Text: "Open or fold?", Options: datatypes.JSON(`["open","fold",""]`), CorrectOptions: datatypes.JSON(`["open"]`)})

	mustCreate(&model.ChapterComponent{ChapterID: "ch1", ComponentID: "v1", ComponentKind: model.KindVideo, Position: 2})
	mustCreate(&model.ChapterComponent{ChapterID: "ch1", ComponentID: "q1", ComponentKind: model.KindQuiz, Position: 1})
	mustCreate(&model.ChapterComponent{ChapterID: "ch1", ComponentID: "q2", ComponentKind: model.KindQuiz, Position: 3})
}

func TestCourseByIDMergesAndOrdersComponents(t *testing.T) {
	svc, db := newCatalogFixture(t)
	seedCourseTree(t, db)

	course, err := svc.CourseByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("CourseByID: %v", err)
	}

	if len(course.Chapters) != 1 {
		t.Fatalf("empty chapter should be dropped, got %d chapters", len(course.Chapters))
	}
	items := course.Chapters[0].Components
	if len(items) != 2 {
		t.Fatalf("zero-question quiz should be dropped, got %d components", len(items))
	}
	if items[0].ID != "q1" || items[1].ID != "v1" {
		t.Fatalf("components not in ascending order: %s, %s", items[0].ID, items[1].ID)
	}
	if items[1].URL != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("bare video id not normalized: %q", items[1].URL)
	}
	if len(items[0].Questions) != 1 {
		t.Fatalf("quiz questions missing")
	}
	if len(items[0].Questions[0].Options) != 2 {
		t.Fatalf("empty option slot not scrubbed: %v", items[0].Questions[0].Options)
	}
	if items[0].Questions[0].CorrectOptions != nil {
		t.Fatalf("course quiz must not expose correct options")
	}
}

func TestCoursesCountsAndScrubsEmpty(t *testing.T) {
	svc, db := newCatalogFixture(t)
	seedCourseTree(t, db)

	// a course with no published chapters must not appear
	if err := db.Create(&model.Course{UUIDBase: model.UUIDBase{ID: "c2"}, Name: "Hollow", PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	courses, err := svc.Courses(context.Background(), "")
	if err != nil {
		t.Fatalf("Courses: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("want 1 listed course, got %d", len(courses))
	}
	got := courses[0]
	if got.ChapterCount != 2 || got.VideoCount != 1 || got.QuizCount != 2 {
		t.Fatalf("counts off: %+v", got)
	}
}

func TestFreeQuizDetailScrubsOptionsAndKeepsAnswers(t *testing.T) {
	svc, db := newCatalogFixture(t)

	if err := db.Create(&model.FreeQuiz{UUIDBase: model.UUIDBase{ID: "fq1"}, Title: "Basics", PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	q := &model.Question{UUIDBase: model.UUIDBase{ID: "fqq1"}, OwnerID: "fq1", OwnerType: "free_quiz",
		Text: "Best starting hand?", Options: datatypes.JSON(`["AA","","72o"]`), CorrectOptions: datatypes.JSON(`["AA"]`), Solution: "Aces."}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}

	quiz, err := svc.FreeQuizByID(context.Background(), "fq1")
	if err != nil {
		t.Fatalf("FreeQuizByID: %v", err)
	}
	if quiz.QuestionCount != 1 || len(quiz.Questions) != 1 {
		t.Fatalf("question expansion wrong: %+v", quiz)
	}
	question := quiz.Questions[0]
	if len(question.Options) != 2 {
		t.Fatalf("empty option slot not scrubbed: %v", question.Options)
	}
	if len(question.CorrectOptions) != 1 || question.Solution == "" {
		t.Fatalf("free quiz detail should expose answers: %+v", question)
	}
}

func TestFreeQuizzesDropZeroQuestionQuizzes(t *testing.T) {
	svc, db := newCatalogFixture(t)

	if err := db.Create(&model.FreeQuiz{UUIDBase: model.UUIDBase{ID: "fq1"}, Title: "Hollow", PublishedAt: published()}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	quizzes, err := svc.FreeQuizzes("")
	if err != nil {
		t.Fatalf("FreeQuizzes: %v", err)
	}
	if len(quizzes) != 0 {
		t.Fatalf("zero-question quiz should be dropped, got %d", len(quizzes))
	}
}
