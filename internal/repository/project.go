package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ALH_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// The three phase trees are stored as JSONB columns; the rest of the project
// is flat. goccy/go-json handles the (de)serialization.
type project struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Engage       []byte    `db:"engage"`
	Investigate  []byte    `db:"investigate"`
	Act          []byte    `db:"act"`
	NudgeViewed  bool      `db:"nudge_viewed"`
	CreatedAt    time.Time `db:"created_at"`
	LastModified time.Time `db:"last_modified"`
}

func (p *project) toModel() (*model.Project, error) {
	out := &model.Project{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		Description:  p.Description,
		NudgeViewed:  p.NudgeViewed,
		CreatedAt:    p.CreatedAt,
		LastModified: p.LastModified,
	}

	if err := json.Unmarshal(p.Engage, &out.Engage); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engage phase: %w", err)
	}
	if err := json.Unmarshal(p.Investigate, &out.Investigate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal investigate phase: %w", err)
	}
	if err := json.Unmarshal(p.Act, &out.Act); err != nil {
		return nil, fmt.Errorf("failed to unmarshal act phase: %w", err)
	}

	return out, nil
}

func marshalPhases(p *model.Project) (engage, investigate, act []byte, err error) {
	engage, err = json.Marshal(p.Engage)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal engage phase: %w", err)
	}
	investigate, err = json.Marshal(p.Investigate)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal investigate phase: %w", err)
	}
	act, err = json.Marshal(p.Act)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal act phase: %w", err)
	}
	return engage, investigate, act, nil
}

func (r *Repository) CreateProject(ctx context.Context, p *model.Project) error {
	engage, investigate, act, err := marshalPhases(p)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("projects").
		SetMap(map[string]interface{}{
			"id":            p.ID,
			"user_id":       p.UserID,
			"name":          p.Name,
			"description":   p.Description,
			"engage":        engage,
			"investigate":   investigate,
			"act":           act,
			"nudge_viewed":  p.NudgeViewed,
			"created_at":    p.CreatedAt,
			"last_modified": p.LastModified,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build project insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

func (r *Repository) GetProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p project
	query, args, err := squirrel.
		Select("*").
		From("projects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &p, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p.toModel()
}

func (r *Repository) GetUserProjects(ctx context.Context, userID uuid.UUID) ([]*model.Project, error) {
	query, args, err := squirrel.
		Select("*").
		From("projects").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []project
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	projects := make([]*model.Project, len(rows))
	for i := range rows {
		projects[i], err = rows[i].toModel()
		if err != nil {
			return nil, err
		}
	}

	return projects, nil
}

func (r *Repository) UpdateProject(ctx context.Context, p *model.Project) error {
	engage, investigate, act, err := marshalPhases(p)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update("projects").
		SetMap(map[string]interface{}{
			"name":          p.Name,
			"description":   p.Description,
			"engage":        engage,
			"investigate":   investigate,
			"act":           act,
			"nudge_viewed":  p.NudgeViewed,
			"last_modified": p.LastModified,
		}).
		Where(squirrel.Eq{"id": p.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build project update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("projects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
