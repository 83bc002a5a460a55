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
	"github.com/jmoiron/sqlx"
)

type userBadge struct {
	UserID      uuid.UUID `db:"user_id"`
	BadgeID     string    `db:"badge_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Points      int       `db:"points"`
	Icon        string    `db:"icon"`
	EarnedAt    time.Time `db:"earned_at"`
}

// RecordBadge persists an award record and credits its points in one
// transaction. The (user_id, badge_id) primary key plus ON CONFLICT DO
// NOTHING makes the check-then-act atomic: two racing calls for the same
// badge land exactly one record, and the loser gets ErrAlreadyAwarded.
func (r *Repository) RecordBadge(ctx context.Context, award *model.UserBadge) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("user_badges").
			SetMap(map[string]interface{}{
				"user_id":     award.UserID,
				"badge_id":    award.BadgeID,
				"title":       award.Title,
				"description": award.Description,
				"points":      award.Points,
				"icon":        award.Icon,
				"earned_at":   award.EarnedAt,
			}).
			Suffix("ON CONFLICT (user_id, badge_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build badge insert query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert user badge: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return ErrAlreadyAwarded
		}

		updateQuery, updateArgs, err := squirrel.
			Update("users").
			Set("points", squirrel.Expr("points + ?", award.Points)).
			Where(squirrel.Eq{"id": award.UserID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to update user points: %w", err)
		}

		rows, err = result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (r *Repository) GetUserBadges(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, error) {
	query, args, err := squirrel.
		Select("user_id", "badge_id", "title", "description", "points", "icon", "earned_at").
		From("user_badges").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("earned_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []userBadge
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get user badges: %w", err)
	}

	badges := make([]*model.UserBadge, len(rows))
	for i, row := range rows {
		badges[i] = &model.UserBadge{
			UserID:      row.UserID,
			BadgeID:     row.BadgeID,
			Title:       row.Title,
			Description: row.Description,
			Points:      row.Points,
			Icon:        row.Icon,
			EarnedAt:    row.EarnedAt,
		}
	}

	return badges, nil
}

// GetTotalPoints sums the denormalized points over the user's award records.
// This is the authoritative score, independent of the cached users.points.
func (r *Repository) GetTotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(points), 0)").
		From("user_badges").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	err = r.db.GetContext(ctx, &total, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to sum badge points: %w", err)
	}

	return total, nil
}
