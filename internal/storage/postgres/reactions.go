package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
)

// ReactionByCommentAndUser возвращает реакцию пары (comment, user).
func (s *Storage) ReactionByCommentAndUser(ctx context.Context, commentID string, userID uuid.UUID) (*models.Reaction, error) {
	const op = "storage.postgres.ReactionByCommentAndUser"

	var r models.Reaction
	err := s.q.QueryRow(ctx, `
		SELECT comment_id, user_id, type, created_at
		FROM reactions
		WHERE comment_id = $1 AND user_id = $2
	`, commentID, userID).Scan(&r.CommentID, &r.UserID, &r.Type, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.CreatedAt = r.CreatedAt.UTC()

	return &r, nil
}

// SaveReaction - upsert по первичному ключу (comment_id, user_id).
func (s *Storage) SaveReaction(ctx context.Context, r models.Reaction) error {
	const op = "storage.postgres.SaveReaction"

	_, err := s.q.Exec(ctx, `
		INSERT INTO reactions (comment_id, user_id, type, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (comment_id, user_id) DO UPDATE
		SET type = EXCLUDED.type, created_at = EXCLUDED.created_at
	`, r.CommentID, r.UserID, r.Type, r.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteReaction удаляет реакцию пары.
func (s *Storage) DeleteReaction(ctx context.Context, commentID string, userID uuid.UUID) error {
	const op = "storage.postgres.DeleteReaction"

	tag, err := s.q.Exec(ctx, `DELETE FROM reactions WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ReactionsByUser возвращает реакции пользователя на комментарии ветки.
func (s *Storage) ReactionsByUser(ctx context.Context, scope models.Scope, userID uuid.UUID) ([]models.Reaction, error) {
	const op = "storage.postgres.ReactionsByUser"

	rows, err := s.q.Query(ctx, `
		SELECT r.comment_id, r.user_id, r.type, r.created_at
		FROM reactions r
		JOIN comments c ON c.id = r.comment_id
		WHERE c.site_id = $1 AND c.page_id = $2 AND r.user_id = $3
		ORDER BY r.comment_id
	`, scope.SiteID, scope.PageID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.Reaction, 0)
	for rows.Next() {
		var r models.Reaction
		if err := rows.Scan(&r.CommentID, &r.UserID, &r.Type, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
