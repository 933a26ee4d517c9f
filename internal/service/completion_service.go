package service

import (
	"time"

	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"
)

// RequiredSet is everything a user must finish inside one challenge week.
// Quizzes with zero questions are excluded at build time; they cannot be
// completed and must not count against anyone.
type RequiredSet struct {
	FreeVideoIDs []string
	FreeQuizIDs  []string
	Chapters     []RequiredChapter
}

type RequiredChapter struct {
	ChapterID string
	VideoIDs  []string
	QuizIDs   []string
}

// Completion is the evaluated outcome. An empty requirement list is complete.
type Completion struct {
	VideosComplete   bool
	QuizzesComplete  bool
	ChaptersComplete bool
}

func (c Completion) All() bool {
	return c.VideosComplete && c.QuizzesComplete && c.ChaptersComplete
}

// Evaluate decides a user's completion against one requirement set. Only
// records with completed status dated at or before the cutoff count.
// Pure: reads nothing, writes nothing.
func Evaluate(req RequiredSet, records []model.ProgressRecord, cutoff time.Time) Completion {
	done := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Status != model.StatusCompleted {
			continue
		}
		if rec.RecordedAt.After(cutoff) {
			continue
		}
		done[rec.ComponentID] = true
	}

	allDone := func(ids []string) bool {
		for _, id := range ids {
			if !done[id] {
				return false
			}
		}
		return true
	}

	out := Completion{
		VideosComplete:  allDone(req.FreeVideoIDs),
		QuizzesComplete: allDone(req.FreeQuizIDs),
	}

	out.ChaptersComplete = true
	for _, ch := range req.Chapters {
		if !allDone(ch.VideoIDs) || !allDone(ch.QuizIDs) {
			out.ChaptersComplete = false
			break
		}
	}
	return out
}

// CompletionService assembles requirement sets from the published catalog and
// runs the pure evaluator over a user's records.
type CompletionService struct {
	StreakRepo    *repository.StreakRepository
	ChapterRepo   *repository.ChapterRepository
	ComponentRepo *repository.ComponentRepository
	ProgressRepo  *repository.ProgressRepository
}

func NewCompletionService(
	streakRepo *repository.StreakRepository,
	chapterRepo *repository.ChapterRepository,
	componentRepo *repository.ComponentRepository,
	progressRepo *repository.ProgressRepository,
) *CompletionService {
	return &CompletionService{
		StreakRepo:    streakRepo,
		ChapterRepo:   chapterRepo,
		ComponentRepo: componentRepo,
		ProgressRepo:  progressRepo,
	}
}

// BuildRequiredSet expands a streak's item list into concrete component ids.
// Chapter items expand into the chapter's component refs; quiz refs with zero
// questions are dropped.
func (s *CompletionService) BuildRequiredSet(streakID string) (RequiredSet, error) {
	var req RequiredSet

	items, err := s.StreakRepo.Items(streakID)
	if err != nil {
		return req, err
	}

	var freeQuizIDs []string
	for _, item := range items {
		switch item.ItemKind {
		case model.ItemFreeVideo:
			req.FreeVideoIDs = append(req.FreeVideoIDs, item.ItemID)
		case model.ItemFreeQuiz:
			freeQuizIDs = append(freeQuizIDs, item.ItemID)
		case model.ItemChapter:
			ch, err := s.buildRequiredChapter(item.ItemID)
			if err != nil {
				return req, err
			}
			req.Chapters = append(req.Chapters, ch)
		}
	}

	counts, err := s.ComponentRepo.CountQuestions("free_quiz", freeQuizIDs)
	if err != nil {
		return req, err
	}
	for _, id := range freeQuizIDs {
		if counts[id] > 0 {
			req.FreeQuizIDs = append(req.FreeQuizIDs, id)
		}
	}
	return req, nil
}

func (s *CompletionService) buildRequiredChapter(chapterID string) (RequiredChapter, error) {
	ch := RequiredChapter{ChapterID: chapterID}

	refs, err := s.ChapterRepo.Components(chapterID)
	if err != nil {
		return ch, err
	}

	var quizIDs []string
	for _, ref := range refs {
		switch ref.ComponentKind {
		case model.KindVideo:
			ch.VideoIDs = append(ch.VideoIDs, ref.ComponentID)
		case model.KindQuiz:
			quizIDs = append(quizIDs, ref.ComponentID)
		}
	}

	counts, err := s.ComponentRepo.CountQuestions("quiz", quizIDs)
	if err != nil {
		return ch, err
	}
	for _, id := range quizIDs {
		if counts[id] > 0 {
			ch.QuizIDs = append(ch.QuizIDs, id)
		}
	}
	return ch, nil
}

// EvaluateStreak checks one user against one streak week. The cutoff closes
// streakNo*7 days after signup.
func (s *CompletionService) EvaluateStreak(userID string, streak *model.Streak, signup time.Time) (Completion, error) {
	req, err := s.BuildRequiredSet(streak.ID)
	if err != nil {
		return Completion{}, err
	}
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return Completion{}, err
	}
	return Evaluate(req, records, StreakCutoff(signup, streak.StreakNo)), nil
}

// StreakCutoff is the instant week streakNo closes for a user.
func StreakCutoff(signup time.Time, streakNo int) time.Time {
	return signup.Add(time.Duration(streakNo) * 7 * 24 * time.Hour)
}
