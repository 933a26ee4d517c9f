package service

import (
	"context"
	"encoding/json"
	"sort"

	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/util"
)

type CatalogService struct {
	CourseRepo    *repository.CourseRepository
	ChapterRepo   *repository.ChapterRepository
	ComponentRepo *repository.ComponentRepository
	Media         *MediaService
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	chapterRepo *repository.ChapterRepository,
	componentRepo *repository.ComponentRepository,
	media *MediaService,
) *CatalogService {
	return &CatalogService{
		CourseRepo:    courseRepo,
		ChapterRepo:   chapterRepo,
		ComponentRepo: componentRepo,
		Media:         media,
	}
}

type CourseSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Language     string `json:"language"`
	Thumbnail    string `json:"thumbnail"`
	ChapterCount int    `json:"chapterCount"`
	VideoCount   int    `json:"videoCount"`
	QuizCount    int    `json:"quizCount"`
}

// ComponentItem is one entry of a chapter's merged child list, videos and
// quizzes interleaved in ascending order.
type ComponentItem struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Duration    string         `json:"duration,omitempty"`
	URL         string         `json:"url,omitempty"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Order       int            `json:"order"`
	Questions   []QuestionItem `json:"questions,omitempty"`
}

type ChapterDetail struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	GameType    string          `json:"gameType,omitempty"`
	Audience    string          `json:"audience,omitempty"`
	Components  []ComponentItem `json:"components"`
}

type CourseDetail struct {
	CourseSummary
	Chapters []ChapterDetail `json:"chapters"`
}

type QuestionItem struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	CorrectOptions []string `json:"correctOptions,omitempty"`
	Solution       string   `json:"solution,omitempty"`
	Mandatory      bool     `json:"isMandatory"`
	Image          string   `json:"image,omitempty"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	VideoURL       string   `json:"videoUrl,omitempty"`
}

// Courses lists published courses with chapter/video/quiz counts. Courses
// that end up with zero visible chapters are dropped.
func (s *CatalogService) Courses(ctx context.Context, language string) ([]CourseSummary, error) {
	courses, err := s.CourseRepo.FindPublished(language)
	if err != nil {
		return nil, err
	}

	out := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		summary, chapters, err := s.courseSummary(ctx, &courses[i])
		if err != nil {
			return nil, err
		}
		if len(chapters) == 0 {
			continue
		}
		out = append(out, *summary)
	}
	return out, nil
}

func (s *CatalogService) courseSummary(ctx context.Context, course *model.Course) (*CourseSummary, []model.Chapter, error) {
	chapters, err := s.ChapterRepo.FindPublishedByCourse(course.ID)
	if err != nil {
		return nil, nil, err
	}

	summary := &CourseSummary{
		ID:           course.ID,
		Name:         course.Name,
		Description:  course.Description,
		Type:         course.Type,
		Language:     course.Language,
		Thumbnail:    s.Media.ResolveFileURL(ctx, course.ThumbnailID),
		ChapterCount: len(chapters),
	}
	for _, ch := range chapters {
		refs, err := s.ChapterRepo.Components(ch.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, ref := range refs {
			switch ref.ComponentKind {
			case model.KindVideo:
				summary.VideoCount++
			case model.KindQuiz:
				summary.QuizCount++
			}
		}
	}
	return summary, chapters, nil
}

// CourseByID shapes the full course tree: chapters with merged ordered child
// lists, zero-question quizzes and empty chapters scrubbed.
func (s *CatalogService) CourseByID(ctx context.Context, courseID string) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	summary, chapters, err := s.courseSummary(ctx, course)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{CourseSummary: *summary}
	for i := range chapters {
		ch, err := s.chapterDetail(ctx, &chapters[i], false)
		if err != nil {
			return nil, err
		}
		if len(ch.Components) == 0 {
			continue
		}
		detail.Chapters = append(detail.Chapters, *ch)
	}
	return detail, nil
}

// ChaptersOfCourse is the lighter chapter list without component expansion.
func (s *CatalogService) ChaptersOfCourse(ctx context.Context, courseID string) ([]ChapterDetail, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}
	chapters, err := s.ChapterRepo.FindPublishedByCourse(courseID)
	if err != nil {
		return nil, err
	}
	out := make([]ChapterDetail, 0, len(chapters))
	for i := range chapters {
		ch := &chapters[i]
		out = append(out, ChapterDetail{
			ID:          ch.ID,
			Title:       ch.Title,
			Description: ch.Description,
			Thumbnail:   s.Media.ResolveFileURL(ctx, ch.ThumbnailID),
			GameType:    ch.GameType,
			Audience:    ch.Audience,
		})
	}
	return out, nil
}

// chapterDetail merges the chapter's videos and quizzes into one list sorted
// ascending by order. withAnswers controls whether quiz questions expose
// correct options and solutions.
func (s *CatalogService) chapterDetail(ctx context.Context, chapter *model.Chapter, withAnswers bool) (*ChapterDetail, error) {
	refs, err := s.ChapterRepo.Components(chapter.ID)
	if err != nil {
		return nil, err
	}

	var videoIDs, quizIDs []string
	for _, ref := range refs {
		switch ref.ComponentKind {
		case model.KindVideo:
			videoIDs = append(videoIDs, ref.ComponentID)
		case model.KindQuiz:
			quizIDs = append(quizIDs, ref.ComponentID)
		}
	}

	videos, err := s.ComponentRepo.FindVideosByIDs(videoIDs)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.ComponentRepo.FindQuizzesByIDs(quizIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ComponentItem, 0, len(videos)+len(quizzes))
	for i := range videos {
		v := &videos[i]
		items = append(items, ComponentItem{
			ID:          v.ID,
			Kind:        string(model.KindVideo),
			Title:       v.Title,
			Description: v.Description,
			Duration:    v.Duration,
			URL:         util.NormalizeYouTubeURL(v.URL),
			Thumbnail:   s.Media.ResolveFileURL(ctx, v.ThumbnailID),
			Order:       v.Order,
		})
	}
	for i := range quizzes {
		q := &quizzes[i]
		if len(q.Questions) == 0 {
			continue
		}
		items = append(items, ComponentItem{
			ID:        q.ID,
			Kind:      string(model.KindQuiz),
			Title:     q.Title,
			Order:     q.Order,
			Questions: s.shapeQuestions(ctx, q.Questions, withAnswers),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	return &ChapterDetail{
		ID:          chapter.ID,
		Title:       chapter.Title,
		Description: chapter.Description,
		Thumbnail:   s.Media.ResolveFileURL(ctx, chapter.ThumbnailID),
		GameType:    chapter.GameType,
		Audience:    chapter.Audience,
		Components:  items,
	}, nil
}

type FreeVideoItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	GameType    string `json:"gameType"`
	Audience    string `json:"audience"`
	Language    string `json:"language"`
}

func (s *CatalogService) FreeVideos(ctx context.Context, filter repository.FreeVideoFilter) ([]FreeVideoItem, error) {
	videos, err := s.ComponentRepo.FindFreeVideos(filter)
	if err != nil {
		return nil, err
	}
	out := make([]FreeVideoItem, 0, len(videos))
	for i := range videos {
		v := &videos[i]
		out = append(out, FreeVideoItem{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Duration:    v.Duration,
			URL:         util.NormalizeYouTubeURL(v.URL),
			Thumbnail:   s.Media.ResolveFileURL(ctx, v.ThumbnailID),
			GameType:    v.GameType,
			Audience:    v.Audience,
			Language:    v.Language,
		})
	}
	return out, nil
}

type FreeQuizItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Language      string `json:"language"`
	QuestionCount int    `json:"questionCount"`
}

// FreeQuizzes lists published free quizzes; zero-question quizzes are
// dropped, matching what the evaluator counts.
func (s *CatalogService) FreeQuizzes(language string) ([]FreeQuizItem, error) {
	quizzes, err := s.ComponentRepo.FindFreeQuizzes(language)
	if err != nil {
		return nil, err
	}
	out := make([]FreeQuizItem, 0, len(quizzes))
	for i := range quizzes {
		q := &quizzes[i]
		if len(q.Questions) == 0 {
			continue
		}
		out = append(out, FreeQuizItem{
			ID:            q.ID,
			Title:         q.Title,
			Language:      q.Language,
			QuestionCount: len(q.Questions),
		})
	}
	return out, nil
}

type FreeQuizDetail struct {
	FreeQuizItem
	Questions []QuestionItem `json:"questions"`
}

func (s *CatalogService) FreeQuizByID(ctx context.Context, id string) (*FreeQuizDetail, error) {
	quiz, err := s.ComponentRepo.FindFreeQuizByID(id)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if len(quiz.Questions) == 0 {
		return nil, util.ErrQuizNotFound
	}
	return &FreeQuizDetail{
		FreeQuizItem: FreeQuizItem{
			ID:            quiz.ID,
			Title:         quiz.Title,
			Language:      quiz.Language,
			QuestionCount: len(quiz.Questions),
		},
		Questions: s.shapeQuestions(ctx, quiz.Questions, true),
	}, nil
}

// shapeQuestions scrubs empty option slots left by the CMS.
func (s *CatalogService) shapeQuestions(ctx context.Context, questions []model.Question, withAnswers bool) []QuestionItem {
	out := make([]QuestionItem, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		item := QuestionItem{
			ID:        q.ID,
			Text:      q.Text,
			Options:   scrubOptions(q.Options),
			Mandatory: q.Mandatory,
			Image:     s.Media.ResolveFileURL(ctx, q.ImageID),
			Thumbnail: s.Media.ResolveFileURL(ctx, q.ThumbnailID),
			VideoURL:  util.NormalizeYouTubeURL(q.VideoURL),
		}
		if withAnswers {
			item.CorrectOptions = scrubOptions(q.CorrectOptions)
			item.Solution = q.Solution
		}
		out = append(out, item)
	}
	return out
}

func scrubOptions(raw []byte) []string {
	var options []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &options)
	}
	out := make([]string, 0, len(options))
	for _, o := range options {
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
