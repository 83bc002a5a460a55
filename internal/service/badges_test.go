package service

import (
	"context"
	"testing"

	"ALH_backend/internal/badge"
	"ALH_backend/internal/model"
	"ALH_backend/internal/repository"
	"ALH_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testCatalog(t *testing.T) *badge.Catalog {
	t.Helper()
	catalog, err := badge.NewCatalog()
	assert.NoError(t, err)
	return catalog
}

func awardIDs(awards []*model.UserBadge) []string {
	var ids []string
	for _, a := range awards {
		ids = append(ids, a.BadgeID)
	}
	return ids
}

func TestBadgeService_CheckProgress(t *testing.T) {
	userID := uuid.New()

	project := &model.Project{
		ID:     uuid.New(),
		UserID: userID,
	}
	project.Engage.BigIdea = "Reduzir o desperdício de água"
	project.Engage.EssentialQuestion = "Como economizar água na escola?"

	tests := []struct {
		name        string
		mockSetup   func(repo *mocks.MockBadgeRepository)
		wantAwarded []string
		wantQueued  []string
	}{
		{
			name: "Newly satisfied rules are recorded and queued",
			mockSetup: func(repo *mocks.MockBadgeRepository) {
				repo.On("GetUserBadges", mock.Anything, userID).
					Return([]*model.UserBadge{}, nil)
				repo.On("RecordBadge", mock.Anything, mock.Anything).
					Return(nil)
			},
			wantAwarded: []string{"primeiro_passo", "questionador"},
			wantQueued:  []string{"primeiro_passo", "questionador"},
		},
		{
			name: "Earned badges are skipped before persistence",
			mockSetup: func(repo *mocks.MockBadgeRepository) {
				repo.On("GetUserBadges", mock.Anything, userID).
					Return([]*model.UserBadge{{BadgeID: "primeiro_passo"}}, nil)
				repo.On("RecordBadge", mock.Anything, mock.MatchedBy(func(a *model.UserBadge) bool {
					return a.BadgeID == "questionador"
				})).Return(nil)
			},
			wantAwarded: []string{"questionador"},
			wantQueued:  []string{"questionador"},
		},
		{
			name: "Concurrent award loss is a silent no-op",
			mockSetup: func(repo *mocks.MockBadgeRepository) {
				repo.On("GetUserBadges", mock.Anything, userID).
					Return([]*model.UserBadge{}, nil)
				repo.On("RecordBadge", mock.Anything, mock.MatchedBy(func(a *model.UserBadge) bool {
					return a.BadgeID == "primeiro_passo"
				})).Return(repository.ErrAlreadyAwarded)
				repo.On("RecordBadge", mock.Anything, mock.MatchedBy(func(a *model.UserBadge) bool {
					return a.BadgeID == "questionador"
				})).Return(nil)
			},
			wantAwarded: []string{"questionador"},
			wantQueued:  []string{"questionador"},
		},
		{
			name: "Persistence failure skips the notification and the rest continues",
			mockSetup: func(repo *mocks.MockBadgeRepository) {
				repo.On("GetUserBadges", mock.Anything, userID).
					Return([]*model.UserBadge{}, nil)
				repo.On("RecordBadge", mock.Anything, mock.MatchedBy(func(a *model.UserBadge) bool {
					return a.BadgeID == "primeiro_passo"
				})).Return(errors.New("connection reset"))
				repo.On("RecordBadge", mock.Anything, mock.MatchedBy(func(a *model.UserBadge) bool {
					return a.BadgeID == "questionador"
				})).Return(nil)
			},
			wantAwarded: []string{"questionador"},
			wantQueued:  []string{"questionador"},
		},
		{
			name: "Loading earned badges fails, nothing is awarded",
			mockSetup: func(repo *mocks.MockBadgeRepository) {
				repo.On("GetUserBadges", mock.Anything, userID).
					Return(nil, errors.New("db down"))
			},
			wantAwarded: nil,
			wantQueued:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockBadgeRepository{}
			tt.mockSetup(repo)

			notifier := NewNotifier()
			service := NewBadgeService(testCatalog(t), repo, notifier)

			awarded := service.CheckProgress(context.Background(), project)
			assert.Equal(t, tt.wantAwarded, awardIDs(awarded))

			var queued []string
			for {
				head, ok := notifier.Peek(userID)
				if !ok {
					break
				}
				queued = append(queued, head.BadgeID)
				notifier.Ack(userID, head.BadgeID)
			}
			assert.Equal(t, tt.wantQueued, queued)

			repo.AssertExpectations(t)
		})
	}
}

func TestBadgeService_CheckProgress_AtMostOnce(t *testing.T) {
	userID := uuid.New()
	project := &model.Project{ID: uuid.New(), UserID: userID}
	project.Engage.BigIdea = "Hortas comunitárias"

	repo := &mocks.MockBadgeRepository{}

	// First pass: nothing earned yet, the award lands.
	repo.On("GetUserBadges", mock.Anything, userID).
		Return([]*model.UserBadge{}, nil).Once()
	repo.On("RecordBadge", mock.Anything, mock.MatchedBy(func(a *model.UserBadge) bool {
		return a.BadgeID == "primeiro_passo"
	})).Return(nil).Once()

	// Second pass over the same state: the earned set now filters the rule.
	repo.On("GetUserBadges", mock.Anything, userID).
		Return([]*model.UserBadge{{BadgeID: "primeiro_passo"}}, nil).Once()

	service := NewBadgeService(testCatalog(t), repo, NewNotifier())

	first := service.CheckProgress(context.Background(), project)
	assert.Equal(t, []string{"primeiro_passo"}, awardIDs(first))

	second := service.CheckProgress(context.Background(), project)
	assert.Empty(t, second)

	repo.AssertExpectations(t)
}

func TestBadgeService_GetOverview(t *testing.T) {
	userID := uuid.New()

	repo := &mocks.MockBadgeRepository{}
	repo.On("GetUserBadges", mock.Anything, userID).
		Return([]*model.UserBadge{
			{BadgeID: "primeiro_passo", Points: 40},
			{BadgeID: "questionador", Points: 35},
			{BadgeID: "desafiador", Points: 40},
		}, nil)
	repo.On("GetTotalPoints", mock.Anything, userID).
		Return(115, nil)

	service := NewBadgeService(testCatalog(t), repo, NewNotifier())

	overview, err := service.GetOverview(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, 115, overview.TotalPoints)
	assert.Equal(t, 2, overview.Level)
	assert.Equal(t, 85, overview.XPForNextLevel)
	assert.Equal(t, 3, overview.EarnedCount)
	assert.Equal(t, 15, overview.TotalCount)
	assert.Equal(t, 20, overview.ProgressPercentage)
	assert.Len(t, overview.Locked, 12)
}

func TestBadgeService_GetSuggestions(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		earned   []*model.UserBadge
		wantIDs  []string
		wantTips int
	}{
		{
			name:     "Fresh user gets the first three starters",
			earned:   []*model.UserBadge{},
			wantIDs:  []string{"primeiro_passo", "questionador", "desafiador"},
			wantTips: 3,
		},
		{
			name:     "Earned starters are skipped",
			earned:   []*model.UserBadge{{BadgeID: "primeiro_passo"}, {BadgeID: "desafiador"}},
			wantIDs:  []string{"questionador", "investigador_iniciante"},
			wantTips: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockBadgeRepository{}
			repo.On("GetUserBadges", mock.Anything, userID).
				Return(tt.earned, nil)

			service := NewBadgeService(testCatalog(t), repo, NewNotifier())

			suggestions, err := service.GetSuggestions(context.Background(), userID)
			assert.NoError(t, err)
			assert.Len(t, suggestions, tt.wantTips)
			for i, want := range tt.wantIDs {
				assert.Equal(t, want, suggestions[i].Rule.ID)
				assert.NotEmpty(t, suggestions[i].Tip)
			}
		})
	}
}
