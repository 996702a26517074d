// Package memory - хранилище в памяти процесса: локальный запуск и тесты сервиса.
//
// Транзакции сериализуются: в каждый момент открыта не больше одной, поэтому
// LockThread ничего не делает. Откат восстанавливает снимок данных.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
)

type reactionKey struct {
	commentID string
	userID    uuid.UUID
}

// Storage - реализация storage.Storage в памяти.
type Storage struct {
	txMu sync.Mutex

	mu        sync.RWMutex
	comments  map[string]models.Comment
	reactions map[reactionKey]models.Reaction
}

var _ storage.Storage = (*Storage)(nil)

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		comments:  make(map[string]models.Comment),
		reactions: make(map[reactionKey]models.Reaction),
	}
}

// InTx выполняет fn под эксклюзивной блокировкой транзакций и откатывает данные при ошибке.
func (s *Storage) InTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	comments := make(map[string]models.Comment, len(s.comments))
	for k, v := range s.comments {
		comments[k] = v
	}
	reactions := make(map[reactionKey]models.Reaction, len(s.reactions))
	for k, v := range s.reactions {
		reactions[k] = v
	}
	s.mu.RUnlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.comments = comments
		s.reactions = reactions
		s.mu.Unlock()

		return err
	}

	return nil
}

// Ping всегда успешен.
func (s *Storage) Ping(context.Context) error { return nil }

// Close ничего не делает.
func (s *Storage) Close() {}

func compare(a, b models.Comment) int {
	if c := a.SortOrder.Cmp(b.SortOrder); c != 0 {
		return c
	}

	return strings.Compare(a.ID, b.ID)
}

func (s *Storage) CommentByID(_ context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &c, nil
}

func (s *Storage) ListByScope(_ context.Context, scope models.Scope) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.Scope == scope {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, compare)

	return out, nil
}

func (s *Storage) ListRoots(_ context.Context, scope models.Scope, p models.ListParams) (*models.Page, error) {
	var (
		afterKey decimal.Decimal
		afterID  string
		err      error
	)

	if p.PageToken != "" {
		afterKey, afterID, err = storage.DecodeCursor(p.PageToken)
		if err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	roots := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.Scope != scope || c.ParentID != "" {
			continue
		}

		if p.PageToken != "" {
			cmp := c.SortOrder.Cmp(afterKey)
			if cmp < 0 || (cmp == 0 && c.ID <= afterID) {
				continue
			}
		}

		roots = append(roots, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(roots, compare)

	page := &models.Page{Items: roots}
	if p.PageSize > 0 && len(roots) > int(p.PageSize) {
		page.Items = roots[:p.PageSize]
		last := page.Items[len(page.Items)-1]
		page.NextPageToken = storage.EncodeCursor(last.SortOrder, last.ID)
	}

	return page, nil
}

func (s *Storage) ListChildren(_ context.Context, parentID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.ParentID == parentID && parentID != "" {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, compare)

	return out, nil
}

func (s *Storage) CountLiveChildren(_ context.Context, parentID, excludeID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.comments {
		if c.ParentID == parentID && c.ID != excludeID && c.State.Living() {
			n++
		}
	}

	return n, nil
}

func (s *Storage) MaxSortOrder(_ context.Context, scope models.Scope, parentID string) (decimal.Decimal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		top   decimal.Decimal
		found bool
	)

	for _, c := range s.comments {
		if c.Scope != scope || c.ParentID != parentID {
			continue
		}

		if !found || c.SortOrder.GreaterThan(top) {
			top, found = c.SortOrder, true
		}
	}

	return top, found, nil
}

// LockThread - no-op: транзакции и так сериализованы.
func (s *Storage) LockThread(context.Context, models.Scope, string) error { return nil }

// LockComment только проверяет, что комментарий существует.
func (s *Storage) LockComment(_ context.Context, id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) InsertComment(_ context.Context, c models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[c.ID]; ok {
		return storage.ErrConflict
	}

	for _, other := range s.comments {
		if sameSlot(other, c) {
			return storage.ErrConflict
		}
	}

	s.comments[c.ID] = c

	return nil
}

func sameSlot(a, b models.Comment) bool {
	return a.Scope == b.Scope && a.ParentID == b.ParentID && a.SortOrder.Equal(b.SortOrder)
}

func (s *Storage) UpdateComment(_ context.Context, c models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.comments[c.ID]
	if !ok {
		return storage.ErrNotFound
	}

	cur.Content = c.Content
	cur.State = c.State
	cur.Status = c.Status
	cur.UpdatedAt = c.UpdatedAt
	s.comments[c.ID] = cur

	return nil
}

func (s *Storage) UpdateCounters(_ context.Context, id string, likeDelta, dislikeDelta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.comments[id]
	if !ok {
		return storage.ErrNotFound
	}

	cur.LikeCount += likeDelta
	cur.DislikeCount += dislikeDelta
	s.comments[id] = cur

	return nil
}

func (s *Storage) UpdateSortKeys(_ context.Context, scope models.Scope, updates []models.SortKeyUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range updates {
		cur, ok := s.comments[u.ID]
		if !ok || cur.Scope != scope {
			return storage.ErrNotFound
		}

		cur.SortOrder = u.SortOrder
		cur.Depth = u.Depth
		s.comments[u.ID] = cur
	}

	slots := make(map[string]struct{})
	for _, c := range s.comments {
		if c.Scope != scope {
			continue
		}

		k := c.ParentID + "|" + c.SortOrder.String()
		if _, dup := slots[k]; dup {
			return storage.ErrConflict
		}
		slots[k] = struct{}{}
	}

	return nil
}

func (s *Storage) ReactionByCommentAndUser(_ context.Context, commentID string, userID uuid.UUID) (*models.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reactions[reactionKey{commentID, userID}]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &r, nil
}

func (s *Storage) SaveReaction(_ context.Context, r models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[r.CommentID]; !ok {
		return storage.ErrNotFound
	}

	s.reactions[reactionKey{r.CommentID, r.UserID}] = r

	return nil
}

func (s *Storage) DeleteReaction(_ context.Context, commentID string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := reactionKey{commentID, userID}
	if _, ok := s.reactions[k]; !ok {
		return storage.ErrNotFound
	}
	delete(s.reactions, k)

	return nil
}

func (s *Storage) ReactionsByUser(_ context.Context, scope models.Scope, userID uuid.UUID) ([]models.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reaction, 0)
	for k, r := range s.reactions {
		if k.userID != userID {
			continue
		}

		if c, ok := s.comments[k.commentID]; ok && c.Scope == scope {
			out = append(out, r)
		}
	}

	slices.SortFunc(out, func(a, b models.Reaction) int { return strings.Compare(a.CommentID, b.CommentID) })

	return out, nil
}
