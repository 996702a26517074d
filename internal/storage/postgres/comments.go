package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
)

// sort_order читается текстом: так decimal не теряет ни одного знака.
const commentColumns = `id, site_id, page_id, parent_id, depth, sort_order::text, content,
	author_id, author_name, state, status, like_count, dislike_count, created_at, updated_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var (
		c   models.Comment
		key string
	)

	err := row.Scan(
		&c.ID,
		&c.Scope.SiteID,
		&c.Scope.PageID,
		&c.ParentID,
		&c.Depth,
		&key,
		&c.Content,
		&c.AuthorID,
		&c.AuthorName,
		&c.State,
		&c.Status,
		&c.LikeCount,
		&c.DislikeCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.SortOrder, err = decimal.NewFromString(key)
	if err != nil {
		return nil, fmt.Errorf("bad sort_order %q: %w", key, err)
	}

	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()

	return &c, nil
}

func collectComments(rows pgx.Rows) ([]models.Comment, error) {
	defer rows.Close()

	out := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}

	return out, rows.Err()
}

// CommentByID возвращает комментарий по идентификатору.
func (s *Storage) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage.postgres.CommentByID"

	c, err := scanComment(s.q.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// ListByScope возвращает всю ветку одним запросом.
func (s *Storage) ListByScope(ctx context.Context, scope models.Scope) ([]models.Comment, error) {
	const op = "storage.postgres.ListByScope"

	rows, err := s.q.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE site_id = $1 AND page_id = $2
		ORDER BY sort_order, id
	`, scope.SiteID, scope.PageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := collectComments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListRoots - keyset-пагинация корней по (sort_order, id).
func (s *Storage) ListRoots(ctx context.Context, scope models.Scope, p models.ListParams) (*models.Page, error) {
	const op = "storage.postgres.ListRoots"

	limit := p.PageSize
	if limit <= 0 {
		limit = 1
	}

	var (
		rows pgx.Rows
		err  error
	)

	if p.PageToken == "" {
		rows, err = s.q.Query(ctx, `
			SELECT `+commentColumns+`
			FROM comments
			WHERE site_id = $1 AND page_id = $2 AND parent_id = ''
			ORDER BY sort_order, id
			LIMIT $3
		`, scope.SiteID, scope.PageID, limit+1)
	} else {
		key, id, decErr := storage.DecodeCursor(p.PageToken)
		if decErr != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		rows, err = s.q.Query(ctx, `
			SELECT `+commentColumns+`
			FROM comments
			WHERE site_id = $1 AND page_id = $2 AND parent_id = ''
			  AND (sort_order, id) > ($3::numeric, $4)
			ORDER BY sort_order, id
			LIMIT $5
		`, scope.SiteID, scope.PageID, key.String(), id, limit+1)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := collectComments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page := &models.Page{Items: items}
	if len(items) > int(limit) {
		page.Items = items[:limit]
		last := page.Items[len(page.Items)-1]
		page.NextPageToken = storage.EncodeCursor(last.SortOrder, last.ID)
	}

	return page, nil
}

// ListChildren возвращает прямых детей комментария.
func (s *Storage) ListChildren(ctx context.Context, parentID string) ([]models.Comment, error) {
	const op = "storage.postgres.ListChildren"

	if parentID == "" {
		return []models.Comment{}, nil
	}

	rows, err := s.q.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE parent_id = $1
		ORDER BY sort_order, id
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := collectComments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CountLiveChildren считает детей не в состоянии deleted_leaf.
func (s *Storage) CountLiveChildren(ctx context.Context, parentID, excludeID string) (int, error) {
	const op = "storage.postgres.CountLiveChildren"

	var n int
	err := s.q.QueryRow(ctx, `
		SELECT count(*)
		FROM comments
		WHERE parent_id = $1 AND id <> $2 AND state <> $3
	`, parentID, excludeID, models.StateDeletedLeaf).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// MaxSortOrder возвращает наибольший ключ среди корней scope или детей parentID.
func (s *Storage) MaxSortOrder(ctx context.Context, scope models.Scope, parentID string) (decimal.Decimal, bool, error) {
	const op = "storage.postgres.MaxSortOrder"

	var key *string
	err := s.q.QueryRow(ctx, `
		SELECT max(sort_order)::text
		FROM comments
		WHERE site_id = $1 AND page_id = $2 AND parent_id = $3
	`, scope.SiteID, scope.PageID, parentID).Scan(&key)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if key == nil {
		return decimal.Decimal{}, false, nil
	}

	d, err := decimal.NewFromString(*key)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return d, true, nil
}

// LockThread блокирует строку родителя (FOR UPDATE) или, для корней,
// берёт advisory-блокировку на scope. Обе держатся до конца транзакции.
func (s *Storage) LockThread(ctx context.Context, scope models.Scope, parentID string) error {
	const op = "storage.postgres.LockThread"

	if parentID == "" {
		if _, err := s.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, scope.Key()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	}

	if err := s.LockComment(ctx, parentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LockComment берёт FOR UPDATE на строку комментария. После ожидания блокировки
// следующие запросы транзакции (READ COMMITTED) видят уже закоммиченные изменения.
func (s *Storage) LockComment(ctx context.Context, id string) error {
	const op = "storage.postgres.LockComment"

	var got string
	err := s.q.QueryRow(ctx, `SELECT id FROM comments WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// InsertComment сохраняет новый комментарий.
func (s *Storage) InsertComment(ctx context.Context, c models.Comment) error {
	const op = "storage.postgres.InsertComment"

	_, err := s.q.Exec(ctx, `
		INSERT INTO comments (id, site_id, page_id, parent_id, depth, sort_order, content,
			author_id, author_name, state, status, like_count, dislike_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, c.ID, c.Scope.SiteID, c.Scope.PageID, c.ParentID, c.Depth, c.SortOrder.String(), c.Content,
		c.AuthorID, c.AuthorName, c.State, c.Status, c.LikeCount, c.DislikeCount,
		c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateComment перезаписывает content, state, status и updated_at.
func (s *Storage) UpdateComment(ctx context.Context, c models.Comment) error {
	const op = "storage.postgres.UpdateComment"

	tag, err := s.q.Exec(ctx, `
		UPDATE comments
		SET content = $2, state = $3, status = $4, updated_at = $5
		WHERE id = $1
	`, c.ID, c.Content, c.State, c.Status, c.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateCounters сдвигает счётчики реакций одним UPDATE.
func (s *Storage) UpdateCounters(ctx context.Context, id string, likeDelta, dislikeDelta int64) error {
	const op = "storage.postgres.UpdateCounters"

	tag, err := s.q.Exec(ctx, `
		UPDATE comments
		SET like_count = like_count + $2, dislike_count = dislike_count + $3
		WHERE id = $1
	`, id, likeDelta, dislikeDelta)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateSortKeys переписывает ключи пачкой. Проверка уникальности откладывается
// до COMMIT, поэтому вызывать нужно внутри InTx.
func (s *Storage) UpdateSortKeys(ctx context.Context, scope models.Scope, updates []models.SortKeyUpdate) error {
	const op = "storage.postgres.UpdateSortKeys"

	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	batch.Queue(`SET CONSTRAINTS comments_slot_uniq DEFERRED`)
	for _, u := range updates {
		batch.Queue(`
			UPDATE comments
			SET sort_order = $4::numeric, depth = $5
			WHERE id = $1 AND site_id = $2 AND page_id = $3
		`, u.ID, scope.SiteID, scope.PageID, u.SortOrder.String(), u.Depth)
	}

	br := s.q.SendBatch(ctx, batch)
	defer br.Close()

	if _, err := br.Exec(); err != nil {
		return fmt.Errorf("%s: defer constraint: %w", op, err)
	}

	for i := range updates {
		tag, err := br.Exec()
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%s: %w", op, storage.ErrConflict)
			}

			return fmt.Errorf("%s: batch item %d: %w", op, i, err)
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s: %s: %w", op, updates[i].ID, storage.ErrNotFound)
		}
	}

	return nil
}
