package service

import (
	"context"
	"encoding/json"
	"errors"

	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// EngagementService covers bookmarks and the last-seen resume pointers.
type EngagementService struct {
	BookmarkRepo  *repository.BookmarkRepository
	LastSeenRepo  *repository.LastSeenRepository
	ComponentRepo *repository.ComponentRepository
	ChapterRepo   *repository.ChapterRepository
	MapperRepo    *repository.MapperRepository
	Media         *MediaService
	Logger        *zap.Logger
}

func NewEngagementService(
	bookmarkRepo *repository.BookmarkRepository,
	lastSeenRepo *repository.LastSeenRepository,
	componentRepo *repository.ComponentRepository,
	chapterRepo *repository.ChapterRepository,
	mapperRepo *repository.MapperRepository,
	media *MediaService,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		BookmarkRepo:  bookmarkRepo,
		LastSeenRepo:  lastSeenRepo,
		ComponentRepo: componentRepo,
		ChapterRepo:   chapterRepo,
		MapperRepo:    mapperRepo,
		Media:         media,
		Logger:        logger,
	}
}

var ErrBadBookmarkKind = errors.New("bookmark type must be video, chapter or quiz")

type ToggleResult struct {
	ItemID     string `json:"itemId"`
	Kind       string `json:"type"`
	Bookmarked bool   `json:"bookmarked"`
}

func (s *EngagementService) ToggleBookmark(userID, kind, itemID string) (*ToggleResult, error) {
	k := model.BookmarkKind(kind)
	switch k {
	case model.BookmarkVideo, model.BookmarkChapter, model.BookmarkQuiz:
	default:
		return nil, ErrBadBookmarkKind
	}
	bookmarked, err := s.BookmarkRepo.Toggle(userID, k, itemID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{ItemID: itemID, Kind: kind, Bookmarked: bookmarked}, nil
}

type BookmarkedVideo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Duration  string `json:"duration,omitempty"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// BookmarkedVideos resolves the user's video bookmarks against both the
// course video and free video tables; bookmarks to retired videos are skipped.
func (s *EngagementService) BookmarkedVideos(ctx context.Context, userID string) ([]BookmarkedVideo, error) {
	bookmarks, err := s.BookmarkRepo.FindByUserAndKind(userID, model.BookmarkVideo)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.ItemID)
	}

	out := make([]BookmarkedVideo, 0, len(ids))
	videos, err := s.ComponentRepo.FindVideosByIDs(ids)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	for i := range videos {
		v := &videos[i]
		seen[v.ID] = true
		out = append(out, BookmarkedVideo{
			ID:        v.ID,
			Title:     v.Title,
			Duration:  v.Duration,
			URL:       util.NormalizeYouTubeURL(v.URL),
			Thumbnail: s.Media.ResolveFileURL(ctx, v.ThumbnailID),
		})
	}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		fv, err := s.ComponentRepo.FindFreeVideoByID(id)
		if err != nil {
			continue
		}
		out = append(out, BookmarkedVideo{
			ID:        fv.ID,
			Title:     fv.Title,
			Duration:  fv.Duration,
			URL:       util.NormalizeYouTubeURL(fv.URL),
			Thumbnail: s.Media.ResolveFileURL(ctx, fv.ThumbnailID),
		})
	}
	return out, nil
}

type BookmarkedChapter struct {
	ID          string `json:"chapterId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	GameType    string `json:"gameType"`
	Audience    string `json:"audience"`
}

// BookmarkedChapters resolves the user's chapter bookmarks; bookmarks to
// removed chapters are skipped.
func (s *EngagementService) BookmarkedChapters(ctx context.Context, userID string) ([]BookmarkedChapter, error) {
	bookmarks, err := s.BookmarkRepo.FindByUserAndKind(userID, model.BookmarkChapter)
	if err != nil {
		return nil, err
	}
	out := make([]BookmarkedChapter, 0, len(bookmarks))
	for _, b := range bookmarks {
		ch, err := s.ChapterRepo.FindByID(b.ItemID)
		if err != nil {
			continue
		}
		out = append(out, BookmarkedChapter{
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

type BookmarkedQuiz struct {
	ID            string `json:"quizId"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

// BookmarkedQuizzes resolves the user's quiz bookmarks against both the
// course quiz and free quiz tables; quizzes without questions are dropped.
func (s *EngagementService) BookmarkedQuizzes(ctx context.Context, userID string) ([]BookmarkedQuiz, error) {
	bookmarks, err := s.BookmarkRepo.FindByUserAndKind(userID, model.BookmarkQuiz)
	if err != nil {
		return nil, err
	}
	out := make([]BookmarkedQuiz, 0, len(bookmarks))
	for _, b := range bookmarks {
		var title string
		var count int
		if q, err := s.ComponentRepo.FindQuizByID(b.ItemID); err == nil {
			title, count = q.Title, len(q.Questions)
		} else if fq, err := s.ComponentRepo.FindFreeQuizByID(b.ItemID); err == nil {
			title, count = fq.Title, len(fq.Questions)
		} else {
			continue
		}
		if count == 0 {
			continue
		}
		out = append(out, BookmarkedQuiz{ID: b.ItemID, Title: title, QuestionCount: count})
	}
	return out, nil
}

var ErrBadComponentType = errors.New("component type must be video or quiz")

type LastSeenItem struct {
	ComponentID   string          `json:"componentId" binding:"required"`
	ComponentType string          `json:"componentType" binding:"required,oneof=video quiz"`
	Progress      json.RawMessage `json:"progressData"`
	Answers       json.RawMessage `json:"userAnswers"`
}

// RecordLastSeen replaces the user's resume pointers. Each item lands in the
// (user, course, kind) slot of the course the component belongs to; placement
// comes from the mapper cache, orphans pin to '0'.
func (s *EngagementService) RecordLastSeen(userID string, items []LastSeenItem) error {
	for _, item := range items {
		kind := model.ComponentKind(item.ComponentType)
		if kind != model.KindVideo && kind != model.KindQuiz {
			return ErrBadComponentType
		}
		courseID, chapterID := resolvePlacement(s.MapperRepo, s.ChapterRepo, s.Logger, item.ComponentID, kind)
		row := &model.LastSeen{
			UserID:        userID,
			CourseID:      courseID,
			ComponentKind: kind,
			ChapterID:     chapterID,
			ComponentID:   item.ComponentID,
			Progress:      datatypes.JSON(item.Progress),
		}
		if kind == model.KindQuiz {
			row.Answers = datatypes.JSON(item.Answers)
		}
		if err := s.LastSeenRepo.Record(row); err != nil {
			return err
		}
	}
	return nil
}

type LastSeenQuiz struct {
	QuizID   string          `json:"quizId"`
	Progress json.RawMessage `json:"progress"`
	Answers  json.RawMessage `json:"userAnswers"`
}

type LastSeenVideo struct {
	VideoID  string          `json:"videoId"`
	Progress json.RawMessage `json:"progress"`
}

type LastSeenChapter struct {
	ChapterID     string          `json:"chapterId"`
	QuizProgress  []LastSeenQuiz  `json:"quizProgress"`
	VideoProgress []LastSeenVideo `json:"videoProgress"`
}

type LastSeenCourse struct {
	CourseID        string            `json:"courseId"`
	ChapterProgress []LastSeenChapter `json:"chapterProgress"`
}

// LastSeen returns the user's resume pointers grouped course by chapter.
func (s *EngagementService) LastSeen(ctx context.Context, userID string) ([]LastSeenCourse, error) {
	rows, err := s.LastSeenRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	courseOrder := []string{}
	chapters := map[string]map[string]*LastSeenChapter{}
	chapterOrder := map[string][]string{}
	for i := range rows {
		r := &rows[i]
		if _, ok := chapters[r.CourseID]; !ok {
			chapters[r.CourseID] = map[string]*LastSeenChapter{}
			courseOrder = append(courseOrder, r.CourseID)
		}
		ch, ok := chapters[r.CourseID][r.ChapterID]
		if !ok {
			ch = &LastSeenChapter{ChapterID: r.ChapterID, QuizProgress: []LastSeenQuiz{}, VideoProgress: []LastSeenVideo{}}
			chapters[r.CourseID][r.ChapterID] = ch
			chapterOrder[r.CourseID] = append(chapterOrder[r.CourseID], r.ChapterID)
		}
		switch r.ComponentKind {
		case model.KindQuiz:
			ch.QuizProgress = append(ch.QuizProgress, LastSeenQuiz{
				QuizID:   r.ComponentID,
				Progress: json.RawMessage(r.Progress),
				Answers:  json.RawMessage(r.Answers),
			})
		case model.KindVideo:
			ch.VideoProgress = append(ch.VideoProgress, LastSeenVideo{
				VideoID:  r.ComponentID,
				Progress: json.RawMessage(r.Progress),
			})
		}
	}

	out := make([]LastSeenCourse, 0, len(courseOrder))
	for _, courseID := range courseOrder {
		course := LastSeenCourse{CourseID: courseID}
		for _, chapterID := range chapterOrder[courseID] {
			course.ChapterProgress = append(course.ChapterProgress, *chapters[courseID][chapterID])
		}
		out = append(out, course)
	}
	return out, nil
}
