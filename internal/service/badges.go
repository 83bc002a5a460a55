package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ALH_backend/internal/badge"
	"ALH_backend/internal/model"
	"ALH_backend/internal/repository"
	"ALH_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BadgeService struct {
	catalog  *badge.Catalog
	repo     BadgeRepository
	notifier *Notifier
}

func NewBadgeService(catalog *badge.Catalog, repo BadgeRepository, notifier *Notifier) *BadgeService {
	return &BadgeService{
		catalog:  catalog,
		repo:     repo,
		notifier: notifier,
	}
}

// CheckProgress runs one evaluation pass over the project's current state:
// every rule whose condition newly holds is recorded and queued for
// notification. Failures are logged and swallowed — a failed write simply
// means the same rule fires again on the next pass, and an award that raced
// another pass is a silent no-op. Returns the awards recorded by this pass.
func (s *BadgeService) CheckProgress(ctx context.Context, project *model.Project) []*model.UserBadge {
	log := logger.Logger()

	earned, err := s.repo.GetUserBadges(ctx, project.UserID)
	if err != nil {
		log.Error("failed to load earned badges, skipping evaluation",
			zap.String("user_id", project.UserID.String()),
			zap.Error(err))
		return nil
	}

	snapshot := model.BuildSnapshot(project)
	fired := s.catalog.Evaluate(snapshot, badge.EarnedSet(earned))

	var awarded []*model.UserBadge
	for _, rule := range fired {
		award := &model.UserBadge{
			UserID:      project.UserID,
			BadgeID:     rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			Points:      rule.Points,
			Icon:        rule.Icon,
			EarnedAt:    time.Now().UTC(),
		}

		err := s.repo.RecordBadge(ctx, award)
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyAwarded) {
				continue
			}
			log.Error("failed to record badge, will retry on next pass",
				zap.String("badge_id", rule.ID),
				zap.String("user_id", project.UserID.String()),
				zap.Error(err))
			continue
		}

		log.Info("badge awarded",
			zap.String("badge_id", rule.ID),
			zap.String("user_id", project.UserID.String()),
			zap.Int("points", rule.Points))

		awarded = append(awarded, award)
		s.notifier.Enqueue(project.UserID, award)
	}

	return awarded
}

// BadgeOverview combines what the user has earned with what is still
// locked, plus the derived XP statistics.
type BadgeOverview struct {
	Earned             []*model.UserBadge
	Locked             []badge.Rule
	TotalPoints        int
	Level              int
	XPForNextLevel     int
	EarnedCount        int
	TotalCount         int
	ProgressPercentage int
}

func (s *BadgeService) GetOverview(ctx context.Context, userID uuid.UUID) (*BadgeOverview, error) {
	earned, err := s.repo.GetUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user badges: %w", err)
	}

	total, err := s.repo.GetTotalPoints(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get total points: %w", err)
	}

	earnedSet := badge.EarnedSet(earned)
	var locked []badge.Rule
	for _, rule := range s.catalog.Rules() {
		if _, ok := earnedSet[rule.ID]; !ok {
			locked = append(locked, rule)
		}
	}

	rules := s.catalog.Rules()
	level := total/100 + 1

	return &BadgeOverview{
		Earned:             earned,
		Locked:             locked,
		TotalPoints:        total,
		Level:              level,
		XPForNextLevel:     level*100 - total,
		EarnedCount:        len(earned),
		TotalCount:         len(rules),
		ProgressPercentage: len(earned) * 100 / len(rules),
	}, nil
}

func (s *BadgeService) GetTotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	total, err := s.repo.GetTotalPoints(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get total points: %w", err)
	}
	return total, nil
}

type BadgeSuggestion struct {
	Rule badge.Rule
	Tip  string
}

var suggestionTips = []struct {
	badgeID string
	tip     string
}{
	{"primeiro_passo", "Escreva sua Big Idea para começar!"},
	{"questionador", "Crie sua Essential Question"},
	{"desafiador", "Defina seu Challenge"},
	{"investigador_iniciante", "Responda sua primeira pergunta-guia"},
}

// GetSuggestions returns up to three not-yet-earned starter badges with a
// tip on how to earn each.
func (s *BadgeService) GetSuggestions(ctx context.Context, userID uuid.UUID) ([]BadgeSuggestion, error) {
	earned, err := s.repo.GetUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user badges: %w", err)
	}
	earnedSet := badge.EarnedSet(earned)

	var suggestions []BadgeSuggestion
	for _, st := range suggestionTips {
		if _, ok := earnedSet[st.badgeID]; ok {
			continue
		}
		rule, ok := s.catalog.Rule(st.badgeID)
		if !ok {
			continue
		}
		suggestions = append(suggestions, BadgeSuggestion{Rule: rule, Tip: st.tip})
		if len(suggestions) == 3 {
			break
		}
	}

	return suggestions, nil
}
