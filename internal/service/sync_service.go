package service

import (
	"encoding/json"

	"poker_school_backend/internal/repository"

	"go.uber.org/zap"
)

// SyncService applies catalog-change notifications from the CMS. Progress
// already written against a changed quiz has to be reconciled: new questions
// reopen the quiz, deleted questions disappear from stored answer sets.
type SyncService struct {
	ProgressRepo *repository.ProgressRepository
	MapperRepo   *repository.MapperRepository
	Logger       *zap.Logger
}

func NewSyncService(progressRepo *repository.ProgressRepository, mapperRepo *repository.MapperRepository, logger *zap.Logger) *SyncService {
	return &SyncService{
		ProgressRepo: progressRepo,
		MapperRepo:   mapperRepo,
		Logger:       logger,
	}
}

// CatalogChange is the webhook payload sent after a CMS edit.
type CatalogChange struct {
	ComponentID      string   `json:"componentId" binding:"required"`
	AddedQuestions   []string `json:"addedQuestions"`
	RemovedQuestions []string `json:"removedQuestions"`
}

// Apply reconciles stored progress with one catalog change and drops the
// component's mapper entry so the next write re-resolves its placement.
func (s *SyncService) Apply(change CatalogChange) error {
	if len(change.AddedQuestions) > 0 {
		if err := s.ProgressRepo.ResetQuizStatus(change.ComponentID); err != nil {
			return err
		}
		s.Logger.Info("quiz reopened after question additions",
			zap.String("componentId", change.ComponentID),
			zap.Int("added", len(change.AddedQuestions)))
	}

	if len(change.RemovedQuestions) > 0 {
		if err := s.scrubAnswers(change.ComponentID, change.RemovedQuestions); err != nil {
			return err
		}
	}

	return s.MapperRepo.Invalidate([]string{change.ComponentID})
}

// scrubAnswers removes deleted question ids from every stored answer set of
// the component.
func (s *SyncService) scrubAnswers(componentID string, removed []string) error {
	records, err := s.ProgressRepo.FindByComponent(componentID)
	if err != nil {
		return err
	}
	gone := make(map[string]bool, len(removed))
	for _, id := range removed {
		gone[id] = true
	}

	for i := range records {
		rec := &records[i]
		if len(rec.Answers) == 0 {
			continue
		}
		var answers map[string][]string
		if err := json.Unmarshal(rec.Answers, &answers); err != nil {
			s.Logger.Warn("unreadable answer set skipped",
				zap.String("recordId", rec.ID), zap.Error(err))
			continue
		}
		changed := false
		for id := range answers {
			if gone[id] {
				delete(answers, id)
				changed = true
			}
		}
		if !changed {
			continue
		}
		raw, err := json.Marshal(answers)
		if err != nil {
			return err
		}
		rec.Answers = raw
		if err := s.ProgressRepo.SaveRecord(rec); err != nil {
			return err
		}
	}
	return nil
}
