// Package storagetest - общий набор проверок контракта storage.Storage.
// Каждая реализация (memory, postgres, mongo) прогоняет его в своих тестах.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
)

// Run прогоняет набор проверок на хранилище st.
// Каждая проверка работает в своём уникальном scope, поэтому хранилище можно переиспользовать.
func Run(t *testing.T, st storage.Storage) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, st storage.Storage)
	}{
		{"InsertAndGet", testInsertAndGet},
		{"SlotConflict", testSlotConflict},
		{"ListByScope", testListByScope},
		{"ListRootsPagination", testListRootsPagination},
		{"ChildrenAndLiveCount", testChildrenAndLiveCount},
		{"MaxSortOrder", testMaxSortOrder},
		{"UpdateComment", testUpdateComment},
		{"UpdateCounters", testUpdateCounters},
		{"UpdateSortKeysSwap", testUpdateSortKeysSwap},
		{"Reactions", testReactions},
		{"TxRollback", testTxRollback},
		{"TxCommitWithLock", testTxCommitWithLock},
		{"LockComment", testLockComment},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, st)
		})
	}
}

func newScope() models.Scope {
	return models.Scope{SiteID: "site-" + uuid.NewString()[:8], PageID: "/page/" + uuid.NewString()[:8]}
}

// Comment собирает валидный комментарий с заданным ключом.
// Время округлено до миллисекунд: так его без потерь хранят все драйверы.
func Comment(scope models.Scope, parentID, key string, depth int32) models.Comment {
	ts := time.Now().UTC().Truncate(time.Millisecond)

	return models.Comment{
		ID:         uuid.NewString(),
		Scope:      scope,
		ParentID:   parentID,
		Depth:      depth,
		SortOrder:  decimal.RequireFromString(key),
		Content:    "hello",
		AuthorID:   uuid.New(),
		AuthorName: "alice",
		State:      models.StateActive,
		Status:     models.StatusApproved,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

func insert(t *testing.T, st storage.Storage, cs ...models.Comment) {
	t.Helper()

	for _, c := range cs {
		require.NoError(t, st.InsertComment(context.Background(), c))
	}
}

func ids(cs []models.Comment) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}

	return out
}

func testInsertAndGet(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	c := Comment(newScope(), "", "1", 1)
	c.LikeCount, c.DislikeCount = 2, 1
	insert(t, st, c)

	got, err := st.CommentByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)
	require.Equal(t, c.Scope, got.Scope)
	require.Empty(t, got.ParentID)
	require.EqualValues(t, 1, got.Depth)
	require.True(t, c.SortOrder.Equal(got.SortOrder))
	require.Equal(t, c.Content, got.Content)
	require.Equal(t, c.AuthorID, got.AuthorID)
	require.Equal(t, c.AuthorName, got.AuthorName)
	require.Equal(t, models.StateActive, got.State)
	require.Equal(t, models.StatusApproved, got.Status)
	require.EqualValues(t, 2, got.LikeCount)
	require.EqualValues(t, 1, got.DislikeCount)
	require.True(t, c.CreatedAt.Equal(got.CreatedAt))

	_, err = st.CommentByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testSlotConflict(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()

	root := Comment(scope, "", "1", 1)
	other := Comment(scope, "", "2", 1)
	insert(t, st, root, other)

	// Тот же ключ у корня - конфликт.
	require.ErrorIs(t, st.InsertComment(ctx, Comment(scope, "", "1", 1)), storage.ErrConflict)

	// Одинаковые ключи у детей разных родителей допустимы.
	insert(t, st, Comment(scope, root.ID, "1.2", 2), Comment(scope, other.ID, "1.2", 2))
	require.ErrorIs(t, st.InsertComment(ctx, Comment(scope, root.ID, "1.2", 2)), storage.ErrConflict)

	// Тот же ключ в другом scope допустим.
	insert(t, st, Comment(newScope(), "", "1", 1))
}

func testListByScope(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()

	root := Comment(scope, "", "1", 1)
	child := Comment(scope, root.ID, "1.1", 2)
	child.State = models.StateDeletedLeaf
	insert(t, st, root, child, Comment(newScope(), "", "1", 1))

	got, err := st.ListByScope(ctx, scope)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{root.ID, child.ID}, ids(got))

	empty, err := st.ListByScope(ctx, newScope())
	require.NoError(t, err)
	require.Empty(t, empty)
}

func testListRootsPagination(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()

	var want []string
	for _, k := range []string{"3", "1", "10", "2", "4"} {
		c := Comment(scope, "", k, 1)
		insert(t, st, c)
	}
	insert(t, st, Comment(scope, "", "0.5", 1))

	all, err := st.ListByScope(ctx, scope)
	require.NoError(t, err)
	require.Len(t, all, 6)

	keyOf := map[string]string{}
	for _, c := range all {
		keyOf[c.ID] = c.SortOrder.String()
	}

	var got []string
	token := ""
	for i := 0; i < 10; i++ {
		page, err := st.ListRoots(ctx, scope, models.ListParams{PageSize: 4, PageToken: token})
		require.NoError(t, err)

		for _, c := range page.Items {
			got = append(got, keyOf[c.ID])
		}

		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	want = []string{"0.5", "1", "2", "3", "4", "10"}
	require.Equal(t, want, got)

	_, err = st.ListRoots(ctx, scope, models.ListParams{PageSize: 2, PageToken: "!!!"})
	require.ErrorIs(t, err, storage.ErrInvalidCursor)
}

func testChildrenAndLiveCount(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()

	root := Comment(scope, "", "1", 1)
	a := Comment(scope, root.ID, "1.1", 2)
	b := Comment(scope, root.ID, "1.11", 2)
	b.State = models.StateDeletedWithDescendants
	c := Comment(scope, root.ID, "1.12", 2)
	c.State = models.StateDeletedLeaf
	insert(t, st, root, c, b, a)

	kids, err := st.ListChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Equal(t, []string{a.ID, b.ID, c.ID}, ids(kids))

	n, err := st.CountLiveChildren(ctx, root.ID, "")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = st.CountLiveChildren(ctx, root.ID, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = st.CountLiveChildren(ctx, a.ID, "")
	require.NoError(t, err)
	require.Zero(t, n)
}

func testMaxSortOrder(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()

	_, ok, err := st.MaxSortOrder(ctx, scope, "")
	require.NoError(t, err)
	require.False(t, ok)

	root := Comment(scope, "", "9", 1)
	insert(t, st, root, Comment(scope, "", "10", 1),
		Comment(scope, root.ID, "9.1", 2), Comment(scope, root.ID, "9.11", 2), Comment(scope, root.ID, "9.2", 2))

	top, ok, err := st.MaxSortOrder(ctx, scope, "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "10", top.String())

	top, ok, err = st.MaxSortOrder(ctx, scope, root.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "9.2", top.String())
}

func testUpdateComment(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	c := Comment(newScope(), "", "1", 1)
	insert(t, st, c)

	c.Content = models.DeletedPlaceholder
	c.State = models.StateDeletedWithDescendants
	c.Status = models.StatusRejected
	c.UpdatedAt = c.UpdatedAt.Add(time.Minute)
	require.NoError(t, st.UpdateComment(ctx, c))

	got, err := st.CommentByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.DeletedPlaceholder, got.Content)
	require.Equal(t, models.StateDeletedWithDescendants, got.State)
	require.Equal(t, models.StatusRejected, got.Status)
	require.True(t, c.UpdatedAt.Equal(got.UpdatedAt))

	missing := Comment(newScope(), "", "1", 1)
	require.ErrorIs(t, st.UpdateComment(ctx, missing), storage.ErrNotFound)
}

func testUpdateCounters(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	c := Comment(newScope(), "", "1", 1)
	insert(t, st, c)

	require.NoError(t, st.UpdateCounters(ctx, c.ID, 1, 0))
	require.NoError(t, st.UpdateCounters(ctx, c.ID, -1, 1))
	require.NoError(t, st.UpdateCounters(ctx, c.ID, 1, 0))

	got, err := st.CommentByID(ctx, c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.LikeCount)
	require.EqualValues(t, 1, got.DislikeCount)

	require.ErrorIs(t, st.UpdateCounters(ctx, uuid.NewString(), 1, 0), storage.ErrNotFound)
}

// Обмен ключами двух корней проходит внутри одной транзакции.
func testUpdateSortKeysSwap(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()

	a := Comment(scope, "", "1", 1)
	b := Comment(scope, "", "2", 1)
	child := Comment(scope, a.ID, "1.1", 5)
	insert(t, st, a, b, child)

	err := st.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.UpdateSortKeys(ctx, scope, []models.SortKeyUpdate{
			{ID: a.ID, SortOrder: decimal.RequireFromString("2"), Depth: 1},
			{ID: b.ID, SortOrder: decimal.RequireFromString("1"), Depth: 1},
			{ID: child.ID, SortOrder: decimal.RequireFromString("2.1"), Depth: 2},
		})
	})
	require.NoError(t, err)

	got, err := st.CommentByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "2", got.SortOrder.String())

	got, err = st.CommentByID(ctx, child.ID)
	require.NoError(t, err)
	require.Equal(t, "2.1", got.SortOrder.String())
	require.EqualValues(t, 2, got.Depth)

	// Итоговый дубль ключа отклоняется целиком.
	err = st.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.UpdateSortKeys(ctx, scope, []models.SortKeyUpdate{
			{ID: a.ID, SortOrder: decimal.RequireFromString("7"), Depth: 1},
			{ID: b.ID, SortOrder: decimal.RequireFromString("7"), Depth: 1},
		})
	})
	require.ErrorIs(t, err, storage.ErrConflict)

	got, err = st.CommentByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "2", got.SortOrder.String())
}

func testReactions(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()
	c1 := Comment(scope, "", "1", 1)
	c2 := Comment(scope, "", "2", 1)
	foreign := Comment(newScope(), "", "1", 1)
	insert(t, st, c1, c2, foreign)

	user := uuid.New()
	ts := time.Now().UTC().Truncate(time.Millisecond)

	_, err := st.ReactionByCommentAndUser(ctx, c1.ID, user)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.SaveReaction(ctx, models.Reaction{CommentID: c1.ID, UserID: user, Type: models.ReactionLike, CreatedAt: ts}))
	require.NoError(t, st.SaveReaction(ctx, models.Reaction{CommentID: c1.ID, UserID: user, Type: models.ReactionDislike, CreatedAt: ts}))
	require.NoError(t, st.SaveReaction(ctx, models.Reaction{CommentID: c2.ID, UserID: user, Type: models.ReactionLike, CreatedAt: ts}))
	require.NoError(t, st.SaveReaction(ctx, models.Reaction{CommentID: foreign.ID, UserID: user, Type: models.ReactionLike, CreatedAt: ts}))

	r, err := st.ReactionByCommentAndUser(ctx, c1.ID, user)
	require.NoError(t, err)
	require.Equal(t, models.ReactionDislike, r.Type)

	list, err := st.ReactionsByUser(ctx, scope, user)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, st.DeleteReaction(ctx, c1.ID, user))
	require.ErrorIs(t, st.DeleteReaction(ctx, c1.ID, user), storage.ErrNotFound)

	list, err = st.ReactionsByUser(ctx, scope, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, c2.ID, list[0].CommentID)
}

func testTxRollback(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()
	root := Comment(scope, "", "1", 1)
	insert(t, st, root)

	boom := errors.New("boom")
	c := Comment(scope, "", "2", 1)

	err := st.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.InsertComment(ctx, c); err != nil {
			return err
		}
		if err := tx.UpdateCounters(ctx, root.ID, 5, 0); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.CommentByID(ctx, c.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	got, err := st.CommentByID(ctx, root.ID)
	require.NoError(t, err)
	require.Zero(t, got.LikeCount)
}

func testTxCommitWithLock(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()
	root := Comment(scope, "", "1", 1)
	insert(t, st, root)

	reply := Comment(scope, root.ID, "1.1", 2)
	err := st.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.LockThread(ctx, scope, ""); err != nil {
			return err
		}
		if err := tx.LockThread(ctx, scope, root.ID); err != nil {
			return err
		}
		if _, _, err := tx.MaxSortOrder(ctx, scope, root.ID); err != nil {
			return err
		}
		return tx.InsertComment(ctx, reply)
	})
	require.NoError(t, err)

	_, err = st.CommentByID(ctx, reply.ID)
	require.NoError(t, err)
}

func testLockComment(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	scope := newScope()
	c := Comment(scope, "", "1", 1)
	insert(t, st, c)

	err := st.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.LockComment(ctx, c.ID); err != nil {
			return err
		}

		got, err := tx.CommentByID(ctx, c.ID)
		if err != nil {
			return err
		}

		got.State = models.StateDeletedLeaf
		return tx.UpdateComment(ctx, *got)
	})
	require.NoError(t, err)

	got, err := st.CommentByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, got.State)

	err = st.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.LockComment(ctx, uuid.NewString())
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}
