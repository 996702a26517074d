package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/pkg/log"
	"github.com/pribylovaa/commentary/internal/storage"
)

// ReactInput - переключение реакции пользователя на комментарий.
type ReactInput struct {
	CommentID string
	UserID    uuid.UUID
	Type      models.ReactionType
}

// ReactResult - итог переключения: комментарий с новыми счётчиками и текущая реакция пользователя.
type ReactResult struct {
	Comment models.Comment
	Action  models.ReactionAction
	// Current - реакция пользователя после операции; nil, если реакция снята.
	Current *models.ReactionType
}

// delta возвращает сдвиг пары счётчиков (like, dislike) для реакции t.
func delta(t models.ReactionType, by int64) (int64, int64) {
	if t == models.ReactionLike {
		return by, 0
	}

	return 0, by
}

// React переключает реакцию:
//   - реакции не было - создаётся, счётчик типа +1;
//   - та же реакция - снимается, счётчик типа -1;
//   - противоположная - меняется тип, старый счётчик -1, новый +1.
//
// Реакция и счётчики меняются в одной транзакции. Удалённые комментарии
// реакции принимают: снять ранее поставленную реакцию должно быть можно всегда.
func (s *Service) React(ctx context.Context, in ReactInput) (*ReactResult, error) {
	const op = "service/reactions/React"

	in.CommentID = strings.TrimSpace(in.CommentID)
	lg := log.From(ctx).With("op", op, "comment_id", in.CommentID, "user_id", in.UserID.String(), "type", string(in.Type))

	if in.CommentID == "" || in.UserID == uuid.Nil || !in.Type.Valid() {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var res ReactResult
	err := s.storage.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		res = ReactResult{}

		// Блокировка комментария сериализует двойные нажатия одного пользователя:
		// иначе оба видят prev == nil и счётчик уходит на +2 при одной реакции.
		if err := tx.LockComment(ctx, in.CommentID); err != nil {
			return err
		}

		prev, err := tx.ReactionByCommentAndUser(ctx, in.CommentID, in.UserID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		var likeDelta, dislikeDelta int64

		switch {
		case prev == nil:
			if err := tx.SaveReaction(ctx, models.Reaction{
				CommentID: in.CommentID,
				UserID:    in.UserID,
				Type:      in.Type,
				CreatedAt: s.now(),
			}); err != nil {
				return err
			}
			likeDelta, dislikeDelta = delta(in.Type, 1)
			res.Action = models.ReactionAdded
			t := in.Type
			res.Current = &t

		case prev.Type == in.Type:
			if err := tx.DeleteReaction(ctx, in.CommentID, in.UserID); err != nil {
				return err
			}
			likeDelta, dislikeDelta = delta(in.Type, -1)
			res.Action = models.ReactionRemoved

		default:
			prev.Type = in.Type
			prev.CreatedAt = s.now()
			if err := tx.SaveReaction(ctx, *prev); err != nil {
				return err
			}
			l1, d1 := delta(in.Type, 1)
			l2, d2 := delta(in.Type.Opposite(), -1)
			likeDelta, dislikeDelta = l1+l2, d1+d2
			res.Action = models.ReactionFlipped
			t := in.Type
			res.Current = &t
		}

		if err := tx.UpdateCounters(ctx, in.CommentID, likeDelta, dislikeDelta); err != nil {
			return err
		}

		c, err := tx.CommentByID(ctx, in.CommentID)
		if err != nil {
			return err
		}
		res.Comment = *c

		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, internalErr(lg, op, err)
	}

	s.metrics.Reaction(res.Action, in.Type)
	lg.Debug("reaction toggled", "action", string(res.Action))

	return &res, nil
}

// UserReactions возвращает реакции пользователя в ветке: comment_id -> тип.
func (s *Service) UserReactions(ctx context.Context, sc models.Scope, userID uuid.UUID) (map[string]models.ReactionType, error) {
	const op = "service/reactions/UserReactions"

	lg := log.From(ctx).With("op", op, "site_id", sc.SiteID, "page_id", sc.PageID, "user_id", userID.String())

	scope, ok := normalizeScope(sc)
	if !ok || userID == uuid.Nil {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	list, err := s.storage.ReactionsByUser(ctx, scope, userID)
	if err != nil {
		return nil, internalErr(lg, op, err)
	}

	out := make(map[string]models.ReactionType, len(list))
	for _, r := range list {
		out[r.CommentID] = r.Type
	}

	return out, nil
}
