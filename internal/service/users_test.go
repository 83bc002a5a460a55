package service

import (
	"context"
	"testing"

	"ALH_backend/internal/model"
	"ALH_backend/internal/repository"
	"ALH_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_RegisterUser(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		username      string
		mockSetup     func(repo *mocks.MockUserRepository)
		check         func(t *testing.T, user *model.User)
		expectedError error
	}{
		{
			name:     "Email is normalized and username derived",
			email:    "  Maria@Escola.BR ",
			username: "",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("CreateUser", mock.Anything, mock.Anything).
					Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.Equal(t, "maria@escola.br", user.Email)
				assert.Equal(t, "maria", user.Username)
				assert.Equal(t, 0, user.Points)
			},
		},
		{
			name:     "Explicit username wins",
			email:    "joao@escola.br",
			username: "João",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("CreateUser", mock.Anything, mock.Anything).
					Return(nil)
			},
			check: func(t *testing.T, user *model.User) {
				assert.Equal(t, "João", user.Username)
			},
		},
		{
			name:     "Duplicate email",
			email:    "maria@escola.br",
			username: "",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("CreateUser", mock.Anything, mock.Anything).
					Return(repository.ErrAlreadyExists)
			},
			expectedError: ErrEmailTaken,
		},
		{
			name:          "Empty email",
			email:         "   ",
			username:      "",
			mockSetup:     func(repo *mocks.MockUserRepository) {},
			expectedError: nil, // plain validation error, checked below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockUserRepository{}
			tt.mockSetup(repo)

			service := NewUserService(repo)

			user, err := service.RegisterUser(context.Background(), tt.email, tt.username)
			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			case tt.check != nil:
				assert.NoError(t, err)
				tt.check(t, user)
			default:
				assert.Error(t, err)
				assert.Nil(t, user)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := &mocks.MockUserRepository{}
	service := NewUserService(repo)

	missing := uuid.New()
	repo.On("DeleteUser", mock.Anything, missing).
		Return(repository.ErrNotFound)

	err := service.DeleteUser(context.Background(), missing)
	assert.ErrorIs(t, err, ErrUserNotFound)

	repo.AssertExpectations(t)
}

func TestUserService_GetLeaderboard(t *testing.T) {
	repo := &mocks.MockUserRepository{}
	repo.On("GetTopUsers", mock.Anything, 100).
		Return([]*model.LeaderboardEntry{
			{Username: "maria", Points: 300, BadgeIDs: []string{"primeiro_passo", "questionador"}},
			{Username: "joao", Points: 115, BadgeIDs: []string{"primeiro_passo"}},
		}, nil)

	service := NewUserService(repo)

	entries, err := service.GetLeaderboard(context.Background())
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "maria", entries[0].Username)

	repo.AssertExpectations(t)
}
