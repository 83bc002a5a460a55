package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ALH_backend/internal/model"
	"ALH_backend/internal/repository"

	"github.com/google/uuid"
)

// EngageUpdate, InvestigateUpdate and ActUpdate are the single typed update
// contract for phase edits: nil fields are left untouched, non-nil fields
// overwrite. There is exactly one calling convention per phase.
type EngageUpdate struct {
	BigIdea           *string
	EssentialQuestion *string
	Challenge         *string
}

type InvestigateUpdate struct {
	Synthesis *string
}

type ActUpdate struct {
	Solution       *string
	Implementation *string
	Evaluation     *string
}

type ProjectService struct {
	repo   ProjectRepository
	users  UserRepository
	awards BadgeServiceI
}

func NewProjectService(repo ProjectRepository, users UserRepository, awards BadgeServiceI) *ProjectService {
	return &ProjectService{
		repo:   repo,
		users:  users,
		awards: awards,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, userID uuid.UUID, name, description string) (*model.Project, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = "Novo Projeto"
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Description:  description,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*model.Project, error) {
	projects, err := s.repo.GetUserProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) EditProject(ctx context.Context, id uuid.UUID, name, description *string) (*model.Project, error) {
	return s.mutate(ctx, id, func(p *model.Project) error {
		if name != nil && strings.TrimSpace(*name) != "" {
			p.Name = *name
		}
		if description != nil {
			p.Description = *description
		}
		return nil
	})
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteProject(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) DuplicateProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dup := project.Clone()
	dup.ID = uuid.New()
	dup.Name = project.Name + " (Cópia)"
	dup.CreatedAt = now
	dup.LastModified = now

	if err := s.repo.CreateProject(ctx, dup); err != nil {
		return nil, fmt.Errorf("failed to duplicate project: %w", err)
	}

	return dup, nil
}

func (s *ProjectService) UpdateEngage(ctx context.Context, projectID uuid.UUID, update EngageUpdate) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseEngage, func(p *model.Project) error {
		if update.BigIdea != nil {
			p.Engage.BigIdea = *update.BigIdea
		}
		if update.EssentialQuestion != nil {
			p.Engage.EssentialQuestion = *update.EssentialQuestion
		}
		if update.Challenge != nil {
			p.Engage.Challenge = *update.Challenge
		}
		return nil
	})
}

func (s *ProjectService) UpdateInvestigate(ctx context.Context, projectID uuid.UUID, update InvestigateUpdate) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseInvestigate, func(p *model.Project) error {
		if update.Synthesis != nil {
			p.Investigate.Synthesis = *update.Synthesis
		}
		return nil
	})
}

func (s *ProjectService) UpdateAct(ctx context.Context, projectID uuid.UUID, update ActUpdate) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseAct, func(p *model.Project) error {
		if update.Solution != nil {
			p.Act.Solution = *update.Solution
		}
		if update.Implementation != nil {
			p.Act.Implementation = *update.Implementation
		}
		if update.Evaluation != nil {
			p.Act.Evaluation = *update.Evaluation
		}
		return nil
	})
}

// CompletePhase marks a phase as completed. Engage requires a Big Idea and
// an Essential Question, Investigate at least one answered guiding question,
// Act at least one prototype. Completing out of order is rejected.
func (s *ProjectService) CompletePhase(ctx context.Context, projectID uuid.UUID, phase model.Phase) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, phase, func(p *model.Project) error {
		switch phase {
		case model.PhaseEngage:
			if strings.TrimSpace(p.Engage.BigIdea) == "" || strings.TrimSpace(p.Engage.EssentialQuestion) == "" {
				return ErrPhaseIncomplete
			}
			p.Engage.Completed = true
		case model.PhaseInvestigate:
			if model.BuildSnapshot(p).QuestionsAnswered == 0 {
				return ErrPhaseIncomplete
			}
			p.Investigate.Completed = true
		case model.PhaseAct:
			if len(p.Act.Prototypes) == 0 {
				return ErrPhaseIncomplete
			}
			p.Act.Completed = true
		}
		return nil
	})
}

func (s *ProjectService) AddGuidingQuestion(ctx context.Context, projectID uuid.UUID, question string) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseInvestigate, func(p *model.Project) error {
		p.Investigate.GuidingQuestions = append(p.Investigate.GuidingQuestions, model.GuidingQuestion{
			ID:       uuid.New(),
			Question: question,
		})
		return nil
	})
}

func (s *ProjectService) AnswerGuidingQuestion(ctx context.Context, projectID, questionID uuid.UUID, answer string) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseInvestigate, func(p *model.Project) error {
		for i := range p.Investigate.GuidingQuestions {
			if p.Investigate.GuidingQuestions[i].ID == questionID {
				p.Investigate.GuidingQuestions[i].Answer = answer
				return nil
			}
		}
		return ErrQuestionNotFound
	})
}

func (s *ProjectService) AddResource(ctx context.Context, projectID uuid.UUID, title, url, notes string) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseInvestigate, func(p *model.Project) error {
		p.Investigate.Resources = append(p.Investigate.Resources, model.Resource{
			ID:    uuid.New(),
			Title: title,
			URL:   url,
			Notes: notes,
		})
		return nil
	})
}

func (s *ProjectService) AddActivity(ctx context.Context, projectID uuid.UUID, title, description string) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseInvestigate, func(p *model.Project) error {
		p.Investigate.Activities = append(p.Investigate.Activities, model.Activity{
			ID:          uuid.New(),
			Title:       title,
			Description: description,
		})
		return nil
	})
}

func (s *ProjectService) AddPrototype(ctx context.Context, projectID uuid.UUID, title, description string) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, model.PhaseAct, func(p *model.Project) error {
		p.Act.Prototypes = append(p.Act.Prototypes, model.Prototype{
			ID:          uuid.New(),
			Title:       title,
			Description: description,
			CreatedAt:   time.Now().UTC(),
		})
		return nil
	})
}

func (s *ProjectService) AddChecklistItem(ctx context.Context, projectID uuid.UUID, phase model.Phase, text string) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, phase, func(p *model.Project) error {
		list := checklistFor(p, phase)
		*list = append(*list, model.ChecklistItem{
			ID:   uuid.New(),
			Text: text,
		})
		return nil
	})
}

func (s *ProjectService) ToggleChecklistItem(ctx context.Context, projectID uuid.UUID, phase model.Phase, itemID uuid.UUID) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, phase, func(p *model.Project) error {
		list := checklistFor(p, phase)
		for i := range *list {
			if (*list)[i].ID == itemID {
				(*list)[i].Done = !(*list)[i].Done
				return nil
			}
		}
		return ErrChecklistItemNotFound
	})
}

func (s *ProjectService) RemoveChecklistItem(ctx context.Context, projectID uuid.UUID, phase model.Phase, itemID uuid.UUID) (*model.Project, error) {
	return s.mutatePhase(ctx, projectID, phase, func(p *model.Project) error {
		list := checklistFor(p, phase)
		for i := range *list {
			if (*list)[i].ID == itemID {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return nil
			}
		}
		return ErrChecklistItemNotFound
	})
}

func checklistFor(p *model.Project, phase model.Phase) *[]model.ChecklistItem {
	switch phase {
	case model.PhaseInvestigate:
		return &p.Investigate.Checklist
	case model.PhaseAct:
		return &p.Act.Checklist
	default:
		return &p.Engage.Checklist
	}
}

// mutate loads the project, applies fn, persists and re-runs badge
// evaluation over the saved state.
func (s *ProjectService) mutate(ctx context.Context, projectID uuid.UUID, fn func(*model.Project) error) (*model.Project, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := fn(project); err != nil {
		return nil, err
	}
	project.LastModified = time.Now().UTC()

	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.awards.CheckProgress(ctx, project)

	return project, nil
}

// mutatePhase is mutate with the phase unlock order enforced: Investigate
// needs Engage completed, Act needs Investigate completed.
func (s *ProjectService) mutatePhase(ctx context.Context, projectID uuid.UUID, phase model.Phase, fn func(*model.Project) error) (*model.Project, error) {
	return s.mutate(ctx, projectID, func(p *model.Project) error {
		if !p.PhaseUnlocked(phase) {
			return ErrPhaseLocked
		}
		return fn(p)
	})
}
