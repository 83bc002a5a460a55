package service

import (
	"context"
	"errors"

	"ALH_backend/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrProjectNotFound       = errors.New("project not found")
	ErrPhaseLocked           = errors.New("phase is locked: complete the previous phase first")
	ErrPhaseIncomplete       = errors.New("phase requirements are not met")
	ErrQuestionNotFound      = errors.New("guiding question not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrNudgeCategoryNotFound = errors.New("nudge category not found")
)

type Service struct {
	*UserService
	*ProjectService
	*BadgeService
	*NudgeService
}

func NewService(users *UserService, projects *ProjectService, badges *BadgeService, nudges *NudgeService) *Service {
	return &Service{
		UserService:    users,
		ProjectService: projects,
		BadgeService:   badges,
		NudgeService:   nudges,
	}
}

type UserServiceI interface {
	RegisterUser(ctx context.Context, email, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	GetLeaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	GetTopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)
}

type ProjectServiceI interface {
	CreateProject(ctx context.Context, userID uuid.UUID, name, description string) (*model.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*model.Project, error)
	EditProject(ctx context.Context, id uuid.UUID, name, description *string) (*model.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	DuplicateProject(ctx context.Context, id uuid.UUID) (*model.Project, error)

	UpdateEngage(ctx context.Context, projectID uuid.UUID, update EngageUpdate) (*model.Project, error)
	UpdateInvestigate(ctx context.Context, projectID uuid.UUID, update InvestigateUpdate) (*model.Project, error)
	UpdateAct(ctx context.Context, projectID uuid.UUID, update ActUpdate) (*model.Project, error)
	CompletePhase(ctx context.Context, projectID uuid.UUID, phase model.Phase) (*model.Project, error)

	AddGuidingQuestion(ctx context.Context, projectID uuid.UUID, question string) (*model.Project, error)
	AnswerGuidingQuestion(ctx context.Context, projectID, questionID uuid.UUID, answer string) (*model.Project, error)
	AddResource(ctx context.Context, projectID uuid.UUID, title, url, notes string) (*model.Project, error)
	AddActivity(ctx context.Context, projectID uuid.UUID, title, description string) (*model.Project, error)
	AddPrototype(ctx context.Context, projectID uuid.UUID, title, description string) (*model.Project, error)

	AddChecklistItem(ctx context.Context, projectID uuid.UUID, phase model.Phase, text string) (*model.Project, error)
	ToggleChecklistItem(ctx context.Context, projectID uuid.UUID, phase model.Phase, itemID uuid.UUID) (*model.Project, error)
	RemoveChecklistItem(ctx context.Context, projectID uuid.UUID, phase model.Phase, itemID uuid.UUID) (*model.Project, error)
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, p *model.Project) error
	GetProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetUserProjects(ctx context.Context, userID uuid.UUID) ([]*model.Project, error)
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type BadgeServiceI interface {
	CheckProgress(ctx context.Context, project *model.Project) []*model.UserBadge
	GetOverview(ctx context.Context, userID uuid.UUID) (*BadgeOverview, error)
	GetTotalPoints(ctx context.Context, userID uuid.UUID) (int, error)
	GetSuggestions(ctx context.Context, userID uuid.UUID) ([]BadgeSuggestion, error)
}

type BadgeRepository interface {
	RecordBadge(ctx context.Context, award *model.UserBadge) error
	GetUserBadges(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, error)
	GetTotalPoints(ctx context.Context, userID uuid.UUID) (int, error)
}

type NudgeServiceI interface {
	Categories(phase model.Phase) []string
	Nudges(phase model.Phase, category string) ([]Nudge, error)
	ViewNudge(ctx context.Context, projectID uuid.UUID, phase model.Phase, category string) ([]Nudge, error)
}
