package service

import (
	"context"
	"errors"
	"sort"

	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/util"

	"gorm.io/gorm"
)

// RecommendationService picks what the user should watch next: resume the
// last touched video when it is unfinished, otherwise the remaining videos
// of that course, otherwise the feed.
type RecommendationService struct {
	ProgressRepo  *repository.ProgressRepository
	ChapterRepo   *repository.ChapterRepository
	ComponentRepo *repository.ComponentRepository
	Content       *ContentService
	Media         *MediaService
}

func NewRecommendationService(
	progressRepo *repository.ProgressRepository,
	chapterRepo *repository.ChapterRepository,
	componentRepo *repository.ComponentRepository,
	content *ContentService,
	media *MediaService,
) *RecommendationService {
	return &RecommendationService{
		ProgressRepo:  progressRepo,
		ChapterRepo:   chapterRepo,
		ComponentRepo: componentRepo,
		Content:       content,
		Media:         media,
	}
}

const (
	RecommendResume = "resume"
	RecommendVideos = "videos"
	RecommendFeeds  = "feeds"
)

// Recommendation is a tagged payload: Kind tells the app how to render Data.
type Recommendation struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
}

// ResumePointer is the unfinished video the user left off at.
type ResumePointer struct {
	ComponentID string  `json:"componentId"`
	CourseID    string  `json:"courseId"`
	ChapterID   string  `json:"chapterId"`
	Status      string  `json:"status"`
	WatchedTime float64 `json:"watchedTime"`
}

type RecommendedVideo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Order       int    `json:"order"`
	Kind        string `json:"type"`
}

// Recommend inspects the user's most recent video record inside a course.
// Unfinished: resume it. Finished: the course's not-yet-completed videos in
// chapter order. No record, or nothing left to watch: the feed.
func (s *RecommendationService) Recommend(ctx context.Context, userID string) (*Recommendation, error) {
	last, err := s.ProgressRepo.LatestVideoInCourse(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.feedFallback(ctx)
	}
	if err != nil {
		return nil, err
	}

	if last.Status != model.StatusCompleted {
		return &Recommendation{Kind: RecommendResume, Data: ResumePointer{
			ComponentID: last.ComponentID,
			CourseID:    last.CourseID,
			ChapterID:   last.ChapterID,
			Status:      string(last.Status),
			WatchedTime: last.WatchedTime,
		}}, nil
	}

	videos, err := s.remainingCourseVideos(ctx, userID, last.CourseID)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return s.feedFallback(ctx)
	}
	return &Recommendation{Kind: RecommendVideos, Data: videos}, nil
}

// remainingCourseVideos walks the course's published chapters in order and
// keeps the videos the user has not completed yet.
func (s *RecommendationService) remainingCourseVideos(ctx context.Context, userID, courseID string) ([]RecommendedVideo, error) {
	chapters, err := s.ChapterRepo.FindPublishedByCourse(courseID)
	if err != nil {
		return nil, err
	}

	records, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.ComponentKind == model.KindVideo && rec.Status == model.StatusCompleted {
			completed[rec.ComponentID] = true
		}
	}

	out := []RecommendedVideo{}
	for i := range chapters {
		refs, err := s.ChapterRepo.Components(chapters[i].ID)
		if err != nil {
			return nil, err
		}
		var ids []string
		for _, ref := range refs {
			if ref.ComponentKind == model.KindVideo && !completed[ref.ComponentID] {
				ids = append(ids, ref.ComponentID)
			}
		}
		videos, err := s.ComponentRepo.FindVideosByIDs(ids)
		if err != nil {
			return nil, err
		}
		sort.Slice(videos, func(a, b int) bool { return videos[a].Order < videos[b].Order })
		for j := range videos {
			v := &videos[j]
			out = append(out, RecommendedVideo{
				ID:          v.ID,
				Title:       v.Title,
				URL:         util.NormalizeYouTubeURL(v.URL),
				Description: v.Description,
				Duration:    v.Duration,
				Thumbnail:   s.Media.ResolveFileURL(ctx, v.ThumbnailID),
				Order:       v.Order,
				Kind:        string(model.KindVideo),
			})
		}
	}
	return out, nil
}

func (s *RecommendationService) feedFallback(ctx context.Context) (*Recommendation, error) {
	feeds, err := s.Content.Feeds(ctx, "")
	if err != nil {
		return nil, err
	}
	return &Recommendation{Kind: RecommendFeeds, Data: feeds}, nil
}
