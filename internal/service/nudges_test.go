package service

import (
	"context"
	"testing"

	"ALH_backend/internal/model"
	"ALH_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNudgeService_Categories(t *testing.T) {
	service := NewNudgeService(&mocks.MockProjectRepository{}, &stubAwards{})

	assert.Equal(t, []string{"Big Idea", "Challenge", "Essential Question"},
		service.Categories(model.PhaseEngage))
	assert.Equal(t, []string{"Fontes", "Perguntas-guia", "Síntese"},
		service.Categories(model.PhaseInvestigate))
	assert.Equal(t, []string{"Plano de teste", "Protótipo", "Próximos passos"},
		service.Categories(model.PhaseAct))
}

func TestNudgeService_Nudges(t *testing.T) {
	service := NewNudgeService(&mocks.MockProjectRepository{}, &stubAwards{})

	nudges, err := service.Nudges(model.PhaseEngage, "Big Idea")
	assert.NoError(t, err)
	assert.NotEmpty(t, nudges)

	_, err = service.Nudges(model.PhaseEngage, "Fontes")
	assert.ErrorIs(t, err, ErrNudgeCategoryNotFound)
}

func TestNudgeService_ViewNudge(t *testing.T) {
	userID := uuid.New()

	t.Run("First view marks the project and persists", func(t *testing.T) {
		project := newProject(userID)

		repo := &mocks.MockProjectRepository{}
		repo.On("GetProjectByID", mock.Anything, project.ID).
			Return(project, nil)
		repo.On("UpdateProject", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
			return p.NudgeViewed
		})).Return(nil)

		awards := &stubAwards{}
		service := NewNudgeService(repo, awards)

		nudges, err := service.ViewNudge(context.Background(), project.ID, model.PhaseEngage, "Big Idea")
		assert.NoError(t, err)
		assert.NotEmpty(t, nudges)
		assert.Equal(t, 1, awards.checked)

		repo.AssertExpectations(t)
	})

	t.Run("Repeat views skip the write but still evaluate", func(t *testing.T) {
		project := newProject(userID)
		project.NudgeViewed = true

		repo := &mocks.MockProjectRepository{}
		repo.On("GetProjectByID", mock.Anything, project.ID).
			Return(project, nil)

		awards := &stubAwards{}
		service := NewNudgeService(repo, awards)

		_, err := service.ViewNudge(context.Background(), project.ID, model.PhaseEngage, "Big Idea")
		assert.NoError(t, err)
		assert.Equal(t, 1, awards.checked)

		repo.AssertNotCalled(t, "UpdateProject", mock.Anything, mock.Anything)
	})

	t.Run("Unknown category never touches the project", func(t *testing.T) {
		repo := &mocks.MockProjectRepository{}
		service := NewNudgeService(repo, &stubAwards{})

		_, err := service.ViewNudge(context.Background(), uuid.New(), model.PhaseAct, "Inexistente")
		assert.ErrorIs(t, err, ErrNudgeCategoryNotFound)

		repo.AssertNotCalled(t, "GetProjectByID", mock.Anything, mock.Anything)
	})
}
