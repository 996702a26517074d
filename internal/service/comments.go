package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/ordering"
	"github.com/pribylovaa/commentary/internal/pkg/log"
	"github.com/pribylovaa/commentary/internal/storage"
	"github.com/pribylovaa/commentary/internal/tree"
)

// Входные структуры сервисного слоя.

// CreateCommentInput - создание корня (ParentID пуст) или ответа.
// OwnerID - владелец сайта для квоты; пустой - квота считается по SiteID.
type CreateCommentInput struct {
	Scope      models.Scope
	ParentID   string
	AuthorID   uuid.UUID
	AuthorName string
	Content    string
	OwnerID    string
}

// EditCommentInput - замена текста комментария его автором.
type EditCommentInput struct {
	ID          string
	RequesterID uuid.UUID
	Content     string
}

// ListThreadInput - страница корней ветки.
type ListThreadInput struct {
	Scope     models.Scope
	PageSize  int32
	PageToken string
}

func normalizeScope(sc models.Scope) (models.Scope, bool) {
	sc.SiteID = strings.TrimSpace(sc.SiteID)
	sc.PageID = strings.TrimSpace(sc.PageID)

	return sc, sc.SiteID != "" && sc.PageID != ""
}

// cleanContent санитизирует HTML и проверяет длину.
func (s *Service) cleanContent(raw string) (string, bool) {
	c := strings.TrimSpace(s.policy.Sanitize(raw))
	if c == "" || utf8.RuneCountInString(c) > maxContentRunes {
		return "", false
	}

	return c, true
}

// CreateComment - бизнес-операция создания комментария.
//
// Валидация:
//   - scope (site_id, page_id) обязателен;
//   - AuthorID обязателен (uuid.Nil -> ErrInvalidArgument);
//   - AuthorName и Content не пустые; Content проходит HTML-санитизацию.
//
// Поведение/ошибки:
//   - ErrQuotaExceeded - квота владельца исчерпана, ничего не сохраняется;
//   - ErrParentNotFound - родителя нет, он в другой ветке или в состоянии deleted_leaf;
//   - ErrDepthInvariantViolation - вычисленная глубина вне [1, MaxDepth];
//   - ErrSortKeyConflict - ключ занят и после одного повтора;
//   - ErrInternal - прочие ошибки стораджа.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	in.ParentID = strings.TrimSpace(in.ParentID)
	lg := log.From(ctx).With(
		"op", op,
		"site_id", in.Scope.SiteID,
		"page_id", in.Scope.PageID,
		"parent_id", in.ParentID,
		"author_id", in.AuthorID.String(),
	)

	scope, ok := normalizeScope(in.Scope)
	if !ok {
		lg.Warn("invalid argument: empty scope")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	in.Scope = scope

	if in.AuthorID == uuid.Nil {
		lg.Warn("invalid argument: empty author_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.AuthorName = strings.TrimSpace(in.AuthorName)
	if in.AuthorName == "" || utf8.RuneCountInString(in.AuthorName) > maxAuthorNameRunes {
		lg.Warn("invalid argument: bad author_name")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	content, ok := s.cleanContent(in.Content)
	if !ok {
		lg.Warn("invalid argument: bad content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	in.Content = content

	owner := strings.TrimSpace(in.OwnerID)
	if owner == "" {
		owner = scope.SiteID
	}

	slot, allowed, err := s.quota.AllowNewComment(ctx, owner)
	if err != nil {
		return nil, internalErr(lg, op, err)
	}

	if !allowed {
		lg.Warn("quota exceeded", "owner_id", owner)
		return nil, fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
	}

	var created *models.Comment
	for attempt := 1; attempt <= 2; attempt++ {
		created, err = s.createTx(ctx, in)
		if !errors.Is(err, storage.ErrConflict) {
			break
		}

		s.metrics.SortKeyConflict()
		lg.Warn("sort key conflict", "attempt", attempt)
	}

	if err != nil {
		if relErr := s.quota.Release(ctx, slot); relErr != nil {
			lg.Error("quota release failed", "err", relErr)
		}

		switch {
		case errors.Is(err, ErrParentNotFound):
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrParentNotFound)
		case errors.Is(err, ErrDepthInvariantViolation):
			lg.Error("depth invariant violated", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrDepthInvariantViolation)
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("sort key conflict persisted")
			return nil, fmt.Errorf("%s: %w", op, ErrSortKeyConflict)
		default:
			return nil, internalErr(lg, op, err)
		}
	}

	s.metrics.CommentCreated(created.ParentID != "")
	lg.Info("comment created", "id", created.ID, "sort_order", created.SortOrder.String(), "depth", created.Depth)

	return created, nil
}

// createTx - одна попытка создания: блокировка, родитель, ключ, вставка.
func (s *Service) createTx(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	var out models.Comment

	err := s.storage.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.LockThread(ctx, in.Scope, in.ParentID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrParentNotFound
			}
			return err
		}

		depth := int32(1)
		var parentKey *decimal.Decimal

		if in.ParentID != "" {
			parent, err := tx.CommentByID(ctx, in.ParentID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return ErrParentNotFound
				}
				return err
			}

			if parent.Scope != in.Scope || parent.State == models.StateDeletedLeaf {
				return ErrParentNotFound
			}

			depth = ordering.ChildDepth(parent.Depth, s.cfg.Limits.MaxDepth)
			parentKey = &parent.SortOrder
		}

		if depth < 1 || depth > s.cfg.Limits.MaxDepth {
			return fmt.Errorf("depth %d: %w", depth, ErrDepthInvariantViolation)
		}

		key, err := s.assigner.Assign(ctx, tx, in.Scope, in.ParentID, parentKey)
		if err != nil {
			return err
		}

		status := models.StatusApproved
		if s.cfg.Moderation.Premoderate {
			status = models.StatusPending
		}

		now := s.now()
		out = models.Comment{
			ID:         s.newID(),
			Scope:      in.Scope,
			ParentID:   in.ParentID,
			Depth:      depth,
			SortOrder:  key,
			Content:    in.Content,
			AuthorID:   in.AuthorID,
			AuthorName: in.AuthorName,
			State:      models.StateActive,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		return tx.InsertComment(ctx, out)
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// EditComment - замена текста автором.
//
// Поведение/ошибки:
//   - ErrNotFound - комментария нет;
//   - ErrNotOwner - запрос не от автора;
//   - ErrCannotEditDeleted - комментарий удалён.
func (s *Service) EditComment(ctx context.Context, in EditCommentInput) (*models.Comment, error) {
	const op = "service/comments/EditComment"

	in.ID = strings.TrimSpace(in.ID)
	lg := log.From(ctx).With("op", op, "id", in.ID, "requester_id", in.RequesterID.String())

	if in.ID == "" || in.RequesterID == uuid.Nil {
		lg.Warn("invalid argument: empty id or requester")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	content, ok := s.cleanContent(in.Content)
	if !ok {
		lg.Warn("invalid argument: bad content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var out models.Comment
	err := s.storage.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		c, err := tx.CommentByID(ctx, in.ID)
		if err != nil {
			return err
		}

		if c.AuthorID != in.RequesterID {
			return ErrNotOwner
		}

		if c.IsDeleted() {
			return ErrCannotEditDeleted
		}

		c.Content = content
		c.UpdatedAt = s.now()
		out = *c

		return tx.UpdateComment(ctx, *c)
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, ErrNotOwner):
			lg.Warn("not owner")
			return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
		case errors.Is(err, ErrCannotEditDeleted):
			lg.Warn("cannot edit deleted")
			return nil, fmt.Errorf("%s: %w", op, ErrCannotEditDeleted)
		default:
			return nil, internalErr(lg, op, err)
		}
	}

	return &out, nil
}

// SetStatus - флаг модерации (только администратор).
func (s *Service) SetStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Comment, error) {
	const op = "service/comments/SetStatus"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id, "status", string(status))

	if id == "" || !status.Valid() {
		lg.Warn("invalid argument: bad id or status")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var out models.Comment
	err := s.storage.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		c, err := tx.CommentByID(ctx, id)
		if err != nil {
			return err
		}

		if c.Status == status {
			out = *c
			return nil
		}

		c.Status = status
		c.UpdatedAt = s.now()
		out = *c

		return tx.UpdateComment(ctx, *c)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, internalErr(lg, op, err)
	}

	return &out, nil
}

// CommentByID возвращает представление комментария (удалённые - с редактированием).
func (s *Service) CommentByID(ctx context.Context, id string) (*models.CommentView, error) {
	const op = "service/comments/CommentByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	c, err := s.storage.CommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, internalErr(lg, op, err)
	}

	v := tree.View(*c)

	return &v, nil
}

// ListThread возвращает страницу корней ветки с полностью собранными поддеревьями.
// Ветка читается одним запросом; страница корней - keyset по (sort_order, id).
func (s *Service) ListThread(ctx context.Context, in ListThreadInput) (*models.ThreadPage, error) {
	const op = "service/comments/ListThread"

	lg := log.From(ctx).With("op", op, "site_id", in.Scope.SiteID, "page_id", in.Scope.PageID)

	scope, ok := normalizeScope(in.Scope)
	if !ok {
		lg.Warn("invalid argument: empty scope")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	page, err := s.storage.ListRoots(ctx, scope, models.ListParams{
		PageSize:  s.limitOrDefault(in.PageSize),
		PageToken: strings.TrimSpace(in.PageToken),
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCursor) {
			lg.Warn("invalid cursor")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		}

		return nil, internalErr(lg, op, err)
	}

	flat, err := s.storage.ListByScope(ctx, scope)
	if err != nil {
		return nil, internalErr(lg, op, err)
	}

	return &models.ThreadPage{
		Nodes:         tree.Build(flat, page.Items),
		NextPageToken: page.NextPageToken,
		Total:         len(tree.Roots(flat)),
	}, nil
}

// ListFlat возвращает всю ветку плоским списком в порядке отображения.
func (s *Service) ListFlat(ctx context.Context, sc models.Scope) ([]models.CommentSummary, error) {
	const op = "service/comments/ListFlat"

	lg := log.From(ctx).With("op", op, "site_id", sc.SiteID, "page_id", sc.PageID)

	scope, ok := normalizeScope(sc)
	if !ok {
		lg.Warn("invalid argument: empty scope")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	flat, err := s.storage.ListByScope(ctx, scope)
	if err != nil {
		return nil, internalErr(lg, op, err)
	}

	out := tree.Flatten(tree.Build(flat, tree.Roots(flat)))
	if out == nil {
		out = []models.CommentSummary{}
	}

	return out, nil
}

// ListReplies возвращает прямых детей комментария в порядке отображения.
func (s *Service) ListReplies(ctx context.Context, id string) ([]models.CommentView, error) {
	const op = "service/comments/ListReplies"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.storage.CommentByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, internalErr(lg, op, err)
	}

	kids, err := s.storage.ListChildren(ctx, id)
	if err != nil {
		return nil, internalErr(lg, op, err)
	}

	out := make([]models.CommentView, 0, len(kids))
	for _, c := range kids {
		out = append(out, tree.View(c))
	}

	return out, nil
}
