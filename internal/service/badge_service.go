package service

import (
	"context"
	"strconv"
	"time"

	"poker_school_backend/internal/model"
	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/util"
	"poker_school_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	BadgeClaimed   = "claimed"
	BadgeRunning   = "running"
	BadgeMissed    = "missed"
	BadgeAvailable = "available"
)

type BadgeService struct {
	StreakRepo *repository.StreakRepository
	BadgeRepo  *repository.BadgeRepository
	Completion *CompletionService
	Identity   *IdentityService
	Logger     *zap.Logger
}

func NewBadgeService(
	streakRepo *repository.StreakRepository,
	badgeRepo *repository.BadgeRepository,
	completion *CompletionService,
	identity *IdentityService,
	logger *zap.Logger,
) *BadgeService {
	return &BadgeService{
		StreakRepo: streakRepo,
		BadgeRepo:  badgeRepo,
		Completion: completion,
		Identity:   identity,
		Logger:     logger,
	}
}

// GrantedBadge is what a progress write returns when it causes a new grant.
type GrantedBadge struct {
	BadgeType string `json:"badgeType"`
	Badge     string `json:"badge"`
	Reward    string `json:"reward"`
	Message   string `json:"message"`
	Note      string `json:"note"`
}

// TryAssignAll evaluates every published streak for the user and grants the
// rewards of any week finished inside its window. Idempotent: the unique
// (user, badge type) index means a repeat grant never duplicates. Returns
// only the badges that are new this call.
func (s *BadgeService) TryAssignAll(ctx context.Context, userID, token string) ([]GrantedBadge, error) {
	info, err := s.Identity.SignupInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	signup := info.SignupTime()

	streaks, err := s.StreakRepo.FindPublished()
	if err != nil {
		return nil, err
	}

	var granted []GrantedBadge
	for i := range streaks {
		streak := &streaks[i]
		completion, err := s.Completion.EvaluateStreak(userID, streak, signup)
		if err != nil {
			return nil, err
		}
		if !completion.All() {
			continue
		}

		reward, err := s.StreakRepo.RewardFor(streak.ID)
		if err != nil {
			// a streak without a published reward grants nothing
			continue
		}

		badge := &model.BadgeAndReward{
			UserID:    userID,
			BadgeType: strconv.Itoa(streak.StreakNo),
			Badge:     reward.BadgeName,
			Reward:    reward.Reward,
			Message:   reward.Message,
			Note:      reward.Note,
		}
		isNew, err := s.BadgeRepo.Assign(badge)
		if err != nil {
			return nil, err
		}
		if isNew {
			monitoring.BadgesAssigned.Inc()
			s.Logger.Info("badge granted",
				zap.String("userId", userID),
				zap.String("badgeType", badge.BadgeType))
			granted = append(granted, GrantedBadge{
				BadgeType: badge.BadgeType,
				Badge:     badge.Badge,
				Reward:    badge.Reward,
				Message:   badge.Message,
				Note:      badge.Note,
			})
		}
	}
	return granted, nil
}

type BadgeHeader struct {
	Earned int `json:"earned"`
	Total  int `json:"total"`
}

// Header is the "3 of 8" ratio shown at the top of the badge screen.
func (s *BadgeService) Header(userID string) (*BadgeHeader, error) {
	streaks, err := s.StreakRepo.FindPublished()
	if err != nil {
		return nil, err
	}
	badges, err := s.BadgeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return &BadgeHeader{Earned: len(badges), Total: len(streaks)}, nil
}

// WelcomeBadges lists the badges earned since the user's previous login,
// shown once on app open.
func (s *BadgeService) WelcomeBadges(ctx context.Context, userID, token string) ([]model.BadgeAndReward, error) {
	info, err := s.Identity.SignupInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	lastLogin := time.UnixMilli(info.LoginDate)

	badges, err := s.BadgeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	var recent []model.BadgeAndReward
	for _, b := range badges {
		if b.CreatedAt.After(lastLogin) {
			recent = append(recent, b)
		}
	}
	return recent, nil
}

type BadgeDetail struct {
	StreakNo  int    `json:"streakNo"`
	Name      string `json:"name"`
	BadgeName string `json:"badgeName"`
	Reward    string `json:"reward"`
	Message   string `json:"message,omitempty"`
	Note      string `json:"note,omitempty"`
	Status    string `json:"status"`
	TimeLeft  string `json:"timeLeft,omitempty"`
}

// Details classifies every published streak for the user: claimed when the
// badge exists, running for the week whose window is open (with H:M:S left),
// missed when the window closed unclaimed, available for future weeks.
func (s *BadgeService) Details(ctx context.Context, userID, token string) ([]BadgeDetail, error) {
	info, err := s.Identity.SignupInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	signup := info.SignupTime()

	streaks, err := s.StreakRepo.FindPublished()
	if err != nil {
		return nil, err
	}
	badges, err := s.BadgeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	claimed := make(map[string]bool, len(badges))
	for _, b := range badges {
		claimed[b.BadgeType] = true
	}

	now := time.Now()
	details := make([]BadgeDetail, 0, len(streaks))
	for i := range streaks {
		streak := &streaks[i]
		d := BadgeDetail{StreakNo: streak.StreakNo, Name: streak.Name}

		if reward, err := s.StreakRepo.RewardFor(streak.ID); err == nil {
			d.BadgeName = reward.BadgeName
			d.Reward = reward.Reward
			d.Message = reward.Message
			d.Note = reward.Note
		}

		d.Status, d.TimeLeft = classifyStreak(claimed[strconv.Itoa(streak.StreakNo)], now, signup, streak.StreakNo)
		details = append(details, d)
	}
	return details, nil
}

// classifyStreak decides one week's badge state for a user. Claimed wins
// outright; otherwise the week is available before its window opens, running
// inside it (with a countdown), missed after.
func classifyStreak(claimed bool, now, signup time.Time, streakNo int) (string, string) {
	if claimed {
		return BadgeClaimed, ""
	}
	opens := StreakCutoff(signup, streakNo-1)
	cutoff := StreakCutoff(signup, streakNo)
	switch {
	case now.Before(opens):
		return BadgeAvailable, ""
	case now.Before(cutoff):
		return BadgeRunning, util.FormatCountdown(cutoff.Sub(now))
	default:
		return BadgeMissed, ""
	}
}

type StreakComponent struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	IsCompleted bool   `json:"isCompleted"`
}

type StreakDetail struct {
	StreakNo   int               `json:"streakNo"`
	Name       string            `json:"name"`
	Components []StreakComponent `json:"components"`
}

// StreakDetailFor expands one week's required components with the user's
// per-component completion flags.
func (s *BadgeService) StreakDetailFor(userID string, streakNo int) (*StreakDetail, error) {
	streak, err := s.StreakRepo.FindByNo(streakNo)
	if err != nil {
		return nil, util.ErrStreakNotFound
	}

	req, err := s.Completion.BuildRequiredSet(streak.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.Completion.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Status == model.StatusCompleted {
			done[rec.ComponentID] = true
		}
	}

	detail := &StreakDetail{StreakNo: streak.StreakNo, Name: streak.Name}
	for _, id := range req.FreeVideoIDs {
		detail.Components = append(detail.Components, StreakComponent{ID: id, Kind: string(model.ItemFreeVideo), IsCompleted: done[id]})
	}
	for _, id := range req.FreeQuizIDs {
		detail.Components = append(detail.Components, StreakComponent{ID: id, Kind: string(model.ItemFreeQuiz), IsCompleted: done[id]})
	}
	for _, ch := range req.Chapters {
		for _, id := range ch.VideoIDs {
			detail.Components = append(detail.Components, StreakComponent{ID: id, Kind: string(model.KindVideo), IsCompleted: done[id]})
		}
		for _, id := range ch.QuizIDs {
			detail.Components = append(detail.Components, StreakComponent{ID: id, Kind: string(model.KindQuiz), IsCompleted: done[id]})
		}
	}
	return detail, nil
}
