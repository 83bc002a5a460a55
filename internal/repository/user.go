package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ALH_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type user struct {
	ID               uuid.UUID `db:"id"`
	Email            string    `db:"email"`
	Username         string    `db:"username"`
	Points           int       `db:"points"`
	RegistrationDate time.Time `db:"registration_date"`
}

type leaderboardRow struct {
	Username string         `db:"username"`
	Points   int            `db:"points"`
	BadgeIDs pq.StringArray `db:"badge_ids"`
}

func (u *user) toModel() *model.User {
	return &model.User{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		Points:           u.Points,
		RegistrationDate: u.RegistrationDate,
	}
}

func (r *Repository) CreateUser(ctx context.Context, u *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"id":                u.ID,
			"email":             u.Email,
			"username":          u.Username,
			"points":            u.Points,
			"registration_date": u.RegistrationDate,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u user
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u.toModel(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u user
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u.toModel(), nil
}

// DeleteUser removes the user together with all projects and earned badges.
// This is the bulk reset lifecycle event: after it, every badge is unearned
// again for that account.
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, table := range []string{"user_badges", "projects"} {
			query, args, err := squirrel.
				Delete(table).
				Where(squirrel.Eq{"user_id": id}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", table, err)
			}
		}

		query, args, err := squirrel.
			Delete("users").
			Where(squirrel.Eq{"id": id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (r *Repository) GetTopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select(
			"u.username",
			"u.points",
			"array_agg(ub.badge_id) FILTER (WHERE ub.badge_id IS NOT NULL) as badge_ids",
		).
		From("users u").
		LeftJoin("user_badges ub ON ub.user_id = u.id").
		GroupBy("u.id").
		OrderBy("u.points DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}

	entries := make([]*model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = &model.LeaderboardEntry{
			Username: row.Username,
			Points:   row.Points,
			BadgeIDs: row.BadgeIDs,
		}
	}

	return entries, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
