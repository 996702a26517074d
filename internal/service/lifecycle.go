package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/pkg/log"
	"github.com/pribylovaa/commentary/internal/storage"
)

// DeleteResult - итог мягкого удаления.
type DeleteResult struct {
	Comment models.Comment
	// Cascaded - сколько предков каскад перевёл в deleted_leaf.
	Cascaded int
}

// DeleteComment - мягкое удаление автором.
//
// Поведение/ошибки:
//   - ErrNotFound - комментария нет;
//   - ErrNotOwner - запрос не от автора, комментарий не меняется;
//   - ErrAlreadyDeleted - комментарий уже удалён.
//
// С живыми детьми комментарий становится надгробием (deleted_with_descendants,
// текст заменён плейсхолдером). Без них - deleted_leaf и каскад вверх по предкам.
func (s *Service) DeleteComment(ctx context.Context, id string, requesterID uuid.UUID) (*DeleteResult, error) {
	const op = "service/lifecycle/DeleteComment"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id, "requester_id", requesterID.String())

	if id == "" || requesterID == uuid.Nil {
		lg.Warn("invalid argument: empty id or requester")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	return s.delete(ctx, lg, op, id, &requesterID)
}

// AdminDeleteComment - та же механика удаления без проверки авторства.
func (s *Service) AdminDeleteComment(ctx context.Context, id string) (*DeleteResult, error) {
	const op = "service/lifecycle/AdminDeleteComment"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	return s.delete(ctx, lg, op, id, nil)
}

// delete выполняет удаление в одной транзакции. requester == nil - без проверки авторства.
func (s *Service) delete(ctx context.Context, lg *slog.Logger, op, id string, requester *uuid.UUID) (*DeleteResult, error) {
	var res DeleteResult

	err := s.storage.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		res = DeleteResult{}

		// Повторное удаление того же комментария ждёт здесь и затем видит новое состояние.
		if err := tx.LockComment(ctx, id); err != nil {
			return err
		}

		c, err := tx.CommentByID(ctx, id)
		if err != nil {
			return err
		}

		if requester != nil && c.AuthorID != *requester {
			return ErrNotOwner
		}

		if c.IsDeleted() {
			return ErrAlreadyDeleted
		}

		live, err := tx.CountLiveChildren(ctx, c.ID, "")
		if err != nil {
			return err
		}

		c.UpdatedAt = s.now()
		if live > 0 {
			c.State = models.StateDeletedWithDescendants
			c.Content = models.DeletedPlaceholder
		} else {
			c.State = models.StateDeletedLeaf
		}

		if err := tx.UpdateComment(ctx, *c); err != nil {
			return err
		}
		res.Comment = *c

		if c.State == models.StateDeletedLeaf {
			hops, err := s.cascade(ctx, lg, tx, *c)
			if err != nil {
				return err
			}
			res.Cascaded = hops
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, ErrNotOwner):
			lg.Warn("not owner")
			return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
		case errors.Is(err, ErrAlreadyDeleted):
			lg.Warn("already deleted")
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyDeleted)
		default:
			return nil, internalErr(lg, op, err)
		}
	}

	s.metrics.CommentDeleted(res.Comment.State)
	if res.Comment.State == models.StateDeletedLeaf {
		s.metrics.Cascade(res.Cascaded)
	}
	lg.Info("comment deleted", "state", string(res.Comment.State), "cascaded", res.Cascaded)

	return &res, nil
}

// cascade поднимается от только что ставшего deleted_leaf узла к корню.
// Предок переводится в deleted_leaf, если он надгробие и, без текущего узла,
// у него не осталось живых детей. Каждый предок перечитывается внутри транзакции.
// Обход останавливается на живом предке, предке с живым ребёнком, корне или
// отсутствующем предке. Длина обхода ограничена Limits.MaxCascade и множеством seen.
// Блокировки берутся снизу вверх, в том же направлении, что и у создания ответа,
// поэтому встречных ожиданий нет.
func (s *Service) cascade(ctx context.Context, lg *slog.Logger, tx storage.Tx, start models.Comment) (int, error) {
	seen := map[string]struct{}{start.ID: {}}
	cur := start
	hops := 0

	for hops < s.cfg.Limits.MaxCascade {
		if cur.ParentID == "" {
			return hops, nil
		}

		if _, ok := seen[cur.ParentID]; ok {
			lg.Warn("cascade: cycle in ancestors", "at", cur.ID, "parent_id", cur.ParentID)
			return hops, nil
		}
		seen[cur.ParentID] = struct{}{}

		// Предок блокируется до подсчёта живых детей: параллельные удаление соседа
		// и создание ответа под тем же предком сериализуются на этой строке.
		if err := tx.LockComment(ctx, cur.ParentID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("cascade: ancestor vanished", "parent_id", cur.ParentID)
				return hops, nil
			}
			return hops, err
		}

		parent, err := tx.CommentByID(ctx, cur.ParentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("cascade: ancestor vanished", "parent_id", cur.ParentID)
				return hops, nil
			}
			return hops, err
		}

		if parent.State != models.StateDeletedWithDescendants {
			return hops, nil
		}

		live, err := tx.CountLiveChildren(ctx, parent.ID, cur.ID)
		if err != nil {
			return hops, err
		}

		if live > 0 {
			return hops, nil
		}

		parent.State = models.StateDeletedLeaf
		parent.UpdatedAt = s.now()
		if err := tx.UpdateComment(ctx, *parent); err != nil {
			return hops, err
		}

		hops++
		cur = *parent
	}

	if cur.ParentID != "" {
		lg.Warn("cascade: hop limit reached", "limit", s.cfg.Limits.MaxCascade, "stopped_at", cur.ID)
	}

	return hops, nil
}
