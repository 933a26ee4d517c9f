package service

import (
	"context"
	"encoding/json"
	"errors"

	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/util"
	"poker_school_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo  *repository.ProgressRepository
	MapperRepo    *repository.MapperRepository
	CourseRepo    *repository.CourseRepository
	ChapterRepo   *repository.ChapterRepository
	ComponentRepo *repository.ComponentRepository
	FeedbackRepo  *repository.FeedbackRepository
	Badges        *BadgeService
	Logger        *zap.Logger
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	mapperRepo *repository.MapperRepository,
	courseRepo *repository.CourseRepository,
	chapterRepo *repository.ChapterRepository,
	componentRepo *repository.ComponentRepository,
	feedbackRepo *repository.FeedbackRepository,
	badges *BadgeService,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:  progressRepo,
		MapperRepo:    mapperRepo,
		CourseRepo:    courseRepo,
		ChapterRepo:   chapterRepo,
		ComponentRepo: componentRepo,
		FeedbackRepo:  feedbackRepo,
		Badges:        badges,
		Logger:        logger,
	}
}

// ProgressWriteItem is one element of a bulk progress write.
type ProgressWriteItem struct {
	ComponentID   string              `json:"componentId" binding:"required"`
	ComponentType string              `json:"componentType" binding:"required"`
	Status        string              `json:"status"`
	WatchedTime   float64             `json:"watchedTime"`
	Answers       map[string][]string `json:"answers"`
	CourseID      string              `json:"courseId"`
	ChapterID     string              `json:"chapterId"`
}

type ProgressWriteResult struct {
	ComponentID string `json:"componentId"`
	Recorded    bool   `json:"recorded"`
	Error       string `json:"error,omitempty"`
}

type ProgressWriteOutcome struct {
	Results   []ProgressWriteResult `json:"results"`
	NewBadges []GrantedBadge        `json:"newBadges"`
}

// RecordProgress processes the batch element by element; one bad element does
// not roll back its neighbours. After the writes the reward pipeline runs
// once and newly granted badges ride back on the response.
func (s *ProgressService) RecordProgress(ctx context.Context, userID, token string, items []ProgressWriteItem) (*ProgressWriteOutcome, error) {
	outcome := &ProgressWriteOutcome{Results: make([]ProgressWriteResult, 0, len(items))}

	wroteAny := false
	for _, item := range items {
		result := ProgressWriteResult{ComponentID: item.ComponentID}
		if err := s.writeOne(userID, item); err != nil {
			s.Logger.Error("progress write failed",
				zap.String("userId", userID),
				zap.String("componentId", item.ComponentID),
				zap.Error(err))
			result.Error = errorCode(err)
		} else {
			result.Recorded = true
			wroteAny = true
			monitoring.ProgressWrites.WithLabelValues(item.ComponentType).Inc()
		}
		outcome.Results = append(outcome.Results, result)
	}

	if wroteAny {
		granted, err := s.Badges.TryAssignAll(ctx, userID, token)
		if err != nil {
			// grant evaluation must not fail an accepted write
			s.Logger.Warn("badge evaluation skipped", zap.String("userId", userID), zap.Error(err))
		} else {
			outcome.NewBadges = dedupBadges(granted)
		}
	}
	return outcome, nil
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, util.ErrMissingComponent), errors.Is(err, util.ErrUnknownComponent):
		return "invalid_component"
	default:
		return "write_failed"
	}
}

func dedupBadges(in []GrantedBadge) []GrantedBadge {
	seen := make(map[string]bool, len(in))
	out := make([]GrantedBadge, 0, len(in))
	for _, b := range in {
		if seen[b.BadgeType] {
			continue
		}
		seen[b.BadgeType] = true
		out = append(out, b)
	}
	return out
}

func (s *ProgressService) writeOne(userID string, item ProgressWriteItem) error {
	if item.ComponentID == "" {
		return util.ErrMissingComponent
	}
	kind := model.ComponentKind(item.ComponentType)
	if kind != model.KindVideo && kind != model.KindQuiz {
		return util.ErrUnknownComponent
	}

	courseID, chapterID := item.CourseID, item.ChapterID
	if courseID == "" || chapterID == "" {
		courseID, chapterID = s.resolvePlacement(item.ComponentID, kind)
	}

	record := &model.ProgressRecord{
		UserID:        userID,
		CourseID:      courseID,
		ChapterID:     chapterID,
		ComponentID:   item.ComponentID,
		ComponentKind: kind,
		Status:        model.ProgressStatus(item.Status),
		WatchedTime:   item.WatchedTime,
	}
	// in-progress status variants are stored verbatim; only the terminal
	// completed state gets special merge treatment
	if record.Status == "" {
		record.Status = model.StatusIncomplete
	}
	if kind == model.KindQuiz && item.Answers != nil {
		raw, err := json.Marshal(item.Answers)
		if err != nil {
			return err
		}
		record.Answers = raw
	}

	if err := s.ProgressRepo.Upsert(record); err != nil {
		return err
	}

	if courseID != model.NoParent {
		s.refreshCourseProgress(userID, courseID)
	}
	return nil
}

func (s *ProgressService) resolvePlacement(componentID string, kind model.ComponentKind) (string, string) {
	return resolvePlacement(s.MapperRepo, s.ChapterRepo, s.Logger, componentID, kind)
}

// resolvePlacement finds the component's (course, chapter) home. The mapper
// table answers repeat lookups; a miss walks the chapter refs once and
// caches the placement. Orphans pin to '0'/'0' and still count for streaks.
func resolvePlacement(mapperRepo *repository.MapperRepository, chapterRepo *repository.ChapterRepository, logger *zap.Logger, componentID string, kind model.ComponentKind) (string, string) {
	if m, err := mapperRepo.FindByComponentID(componentID); err == nil {
		return m.CourseID, m.ChapterID
	}

	courseID, chapterID := model.NoParent, model.NoParent
	refs, err := chapterRepo.AllComponents()
	if err == nil {
		for _, ref := range refs {
			if ref.ComponentID != componentID {
				continue
			}
			chapterID = ref.ChapterID
			if ch, err := chapterRepo.FindByID(ref.ChapterID); err == nil {
				courseID = ch.CourseID
			}
			break
		}
	}

	if err := mapperRepo.Save(&model.Mapper{
		ComponentID:   componentID,
		ComponentKind: kind,
		CourseID:      courseID,
		ChapterID:     chapterID,
	}); err != nil {
		logger.Warn("mapper cache write failed", zap.String("componentId", componentID), zap.Error(err))
	}
	return courseID, chapterID
}

// refreshCourseProgress recomputes the per-course completed flag after a
// write. Completion means every component of every published chapter has a
// completed record.
func (s *ProgressService) refreshCourseProgress(userID, courseID string) {
	chapters, err := s.ChapterRepo.FindPublishedByCourse(courseID)
	if err != nil || len(chapters) == 0 {
		return
	}

	records, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return
	}
	done := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Status == model.StatusCompleted {
			done[rec.ComponentID] = true
		}
	}

	completed := true
	for _, ch := range chapters {
		refs, err := s.ChapterRepo.Components(ch.ID)
		if err != nil {
			return
		}
		for _, ref := range refs {
			if !done[ref.ComponentID] {
				completed = false
				break
			}
		}
		if !completed {
			break
		}
	}

	if err := s.ProgressRepo.UpsertCourseProgress(userID, courseID, completed); err != nil {
		s.Logger.Warn("course progress update failed", zap.String("courseId", courseID), zap.Error(err))
	}
}

type ChapterProgressTree struct {
	ChapterID     string                 `json:"chapterId"`
	VideoProgress []model.ProgressRecord `json:"videoProgress"`
	QuizProgress  []model.ProgressRecord `json:"quizProgress"`
}

type CourseProgressTree struct {
	CourseID  string                `json:"courseId"`
	Completed bool                  `json:"completed"`
	Chapters  []ChapterProgressTree `json:"chapters"`
}

// AllProgress shapes every record of the user into the nested
// course -> chapter -> {videoProgress, quizProgress} tree.
func (s *ProgressService) AllProgress(userID string) ([]CourseProgressTree, error) {
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	courseFlags, err := s.ProgressRepo.FindCourseProgress(userID)
	if err != nil {
		return nil, err
	}
	completedCourses := make(map[string]bool, len(courseFlags))
	for _, cp := range courseFlags {
		completedCourses[cp.CourseID] = cp.Completed
	}
	return buildProgressTree(records, completedCourses, nil), nil
}

// buildProgressTree groups records by course then chapter, preserving record
// order within each bucket. keep filters component ids when non-nil.
func buildProgressTree(records []model.ProgressRecord, completedCourses map[string]bool, keep map[string]bool) []CourseProgressTree {
	type chapterKey struct{ courseID, chapterID string }
	courseOrder := []string{}
	chapterOrder := map[string][]string{}
	buckets := map[chapterKey]*ChapterProgressTree{}

	for _, rec := range records {
		if keep != nil && !keep[rec.ComponentID] {
			continue
		}
		key := chapterKey{rec.CourseID, rec.ChapterID}
		bucket, ok := buckets[key]
		if !ok {
			if _, seen := chapterOrder[rec.CourseID]; !seen {
				courseOrder = append(courseOrder, rec.CourseID)
			}
			chapterOrder[rec.CourseID] = append(chapterOrder[rec.CourseID], rec.ChapterID)
			bucket = &ChapterProgressTree{ChapterID: rec.ChapterID}
			buckets[key] = bucket
		}
		switch rec.ComponentKind {
		case model.KindVideo:
			bucket.VideoProgress = append(bucket.VideoProgress, rec)
		case model.KindQuiz:
			bucket.QuizProgress = append(bucket.QuizProgress, rec)
		}
	}

	out := make([]CourseProgressTree, 0, len(courseOrder))
	for _, courseID := range courseOrder {
		tree := CourseProgressTree{CourseID: courseID, Completed: completedCourses[courseID]}
		for _, chapterID := range chapterOrder[courseID] {
			tree.Chapters = append(tree.Chapters, *buckets[chapterKey{courseID, chapterID}])
		}
		out = append(out, tree)
	}
	return out
}

func (s *ProgressService) ByCourse(userID, courseID string) ([]model.ProgressRecord, error) {
	return s.ProgressRepo.FindByUserAndCourse(userID, courseID)
}

func (s *ProgressService) ByChapter(userID, chapterID string) ([]model.ProgressRecord, error) {
	return s.ProgressRepo.FindByUserAndChapter(userID, chapterID)
}

// ByComponent returns the single record for a quiz or video, or nil when the
// user has none yet.
func (s *ProgressService) ByComponent(userID, componentID string) (*model.ProgressRecord, error) {
	record, err := s.ProgressRepo.FindByUserAndComponent(userID, componentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// MyLearning is the all-progress tree restricted to components that are
// still published; progress against retired catalog rows disappears from
// the view without being deleted.
func (s *ProgressService) MyLearning(userID string) ([]CourseProgressTree, error) {
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	var videoIDs, quizIDs []string
	for _, rec := range records {
		switch rec.ComponentKind {
		case model.KindVideo:
			videoIDs = append(videoIDs, rec.ComponentID)
		case model.KindQuiz:
			quizIDs = append(quizIDs, rec.ComponentID)
		}
	}

	keep := make(map[string]bool, len(records))
	videos, err := s.ComponentRepo.FindVideosByIDs(videoIDs)
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		keep[v.ID] = true
	}
	freeVideos, err := s.ComponentRepo.FindFreeVideos(repository.FreeVideoFilter{})
	if err != nil {
		return nil, err
	}
	for _, v := range freeVideos {
		keep[v.ID] = true
	}
	quizzes, err := s.ComponentRepo.FindQuizzesByIDs(quizIDs)
	if err != nil {
		return nil, err
	}
	for _, q := range quizzes {
		keep[q.ID] = true
	}
	freeQuizzes, err := s.ComponentRepo.FindFreeQuizzes("")
	if err != nil {
		return nil, err
	}
	for _, q := range freeQuizzes {
		keep[q.ID] = true
	}

	courseFlags, err := s.ProgressRepo.FindCourseProgress(userID)
	if err != nil {
		return nil, err
	}
	completedCourses := make(map[string]bool, len(courseFlags))
	for _, cp := range courseFlags {
		completedCourses[cp.CourseID] = cp.Completed
	}
	return buildProgressTree(records, completedCourses, keep), nil
}

type IncompleteComponent struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

type IncompleteChapter struct {
	ChapterID  string                `json:"chapterId"`
	Title      string                `json:"title"`
	Components []IncompleteComponent `json:"components"`
}

type IncompleteCourse struct {
	CourseID string              `json:"courseId"`
	Name     string              `json:"name"`
	Chapters []IncompleteChapter `json:"chapters"`
}

// IncompleteCourses is the resume view: for every course the user started
// but has not finished, the components still missing per chapter.
func (s *ProgressService) IncompleteCourses(userID string) ([]IncompleteCourse, error) {
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	started := map[string]bool{}
	done := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.CourseID != model.NoParent {
			started[rec.CourseID] = true
		}
		if rec.Status == model.StatusCompleted {
			done[rec.ComponentID] = true
		}
	}

	courseIDs := make([]string, 0, len(started))
	for id := range started {
		courseIDs = append(courseIDs, id)
	}
	courses, err := s.CourseRepo.FindByIDs(courseIDs)
	if err != nil {
		return nil, err
	}

	var out []IncompleteCourse
	for i := range courses {
		course := &courses[i]
		entry := IncompleteCourse{CourseID: course.ID, Name: course.Name}

		chapters, err := s.ChapterRepo.FindPublishedByCourse(course.ID)
		if err != nil {
			return nil, err
		}
		for j := range chapters {
			ch := &chapters[j]
			refs, err := s.ChapterRepo.Components(ch.ID)
			if err != nil {
				return nil, err
			}
			var missing []IncompleteComponent
			for _, ref := range refs {
				if !done[ref.ComponentID] {
					missing = append(missing, IncompleteComponent{ID: ref.ComponentID, Kind: string(ref.ComponentKind)})
				}
			}
			if len(missing) > 0 {
				entry.Chapters = append(entry.Chapters, IncompleteChapter{
					ChapterID:  ch.ID,
					Title:      ch.Title,
					Components: missing,
				})
			}
		}
		if len(entry.Chapters) > 0 {
			out = append(out, entry)
		}
	}
	return out, nil
}

type FeedbackView struct {
	VideoID string  `json:"videoId"`
	Rating  int     `json:"rating"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

func (s *ProgressService) PostFeedback(userID, videoID string, rating int) error {
	return s.FeedbackRepo.Upsert(userID, videoID, rating)
}

// GetFeedback returns the user's own rating alongside the video's average.
func (s *ProgressService) GetFeedback(userID, videoID string) (*FeedbackView, error) {
	view := &FeedbackView{VideoID: videoID}
	if fb, err := s.FeedbackRepo.FindByUserAndVideo(userID, videoID); err == nil {
		view.Rating = fb.Rating
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	avg, count, err := s.FeedbackRepo.AverageForVideo(videoID)
	if err != nil {
		return nil, err
	}
	view.Average = avg
	view.Count = count
	return view, nil
}
