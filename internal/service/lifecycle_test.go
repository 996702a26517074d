package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
	"github.com/pribylovaa/commentary/mocks"
)

// state - текущее состояние комментария в хранилище.
func state(t *testing.T, st storage.CommentStore, id string) models.CommentState {
	t.Helper()
	c, err := st.CommentByID(context.Background(), id)
	require.NoError(t, err)
	return c.State
}

func TestService_DeleteComment_Validation(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()

	_, err := s.DeleteComment(ctx, " ", uuid.New())
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.DeleteComment(ctx, "id", uuid.Nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.AdminDeleteComment(ctx, "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.DeleteComment(ctx, "missing", uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

// Лист без детей сразу структурно мёртв, текст сохраняется в хранилище.
func TestService_DeleteComment_Leaf(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	author := uuid.New()
	c := create(t, s, "", author)

	res, err := s.DeleteComment(context.Background(), c.ID, author)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, res.Comment.State)
	require.Zero(t, res.Cascaded)

	stored, err := st.CommentByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, stored.State)
	require.Equal(t, "hello", stored.Content)
}

// С живыми детьми - надгробие: плейсхолдер вместо текста, дети не трогаются.
func TestService_DeleteComment_Tombstone(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	author := uuid.New()
	root := create(t, s, "", author)
	child := create(t, s, root.ID, author)

	res, err := s.DeleteComment(context.Background(), root.ID, author)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedWithDescendants, res.Comment.State)
	require.Equal(t, models.DeletedPlaceholder, res.Comment.Content)
	require.Equal(t, models.StateActive, state(t, st, child.ID))
}

func TestService_DeleteComment_NotOwnerAndAlreadyDeleted(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	ctx := context.Background()
	author := uuid.New()
	root := create(t, s, "", author)
	create(t, s, root.ID, author)

	_, err := s.DeleteComment(ctx, root.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotOwner)
	require.Equal(t, models.StateActive, state(t, st, root.ID))

	_, err = s.DeleteComment(ctx, root.ID, author)
	require.NoError(t, err)

	_, err = s.DeleteComment(ctx, root.ID, author)
	require.ErrorIs(t, err, ErrAlreadyDeleted)

	_, err = s.AdminDeleteComment(ctx, root.ID)
	require.ErrorIs(t, err, ErrAlreadyDeleted)
}

func TestService_AdminDeleteComment_IgnoresAuthorship(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	c := create(t, s, "", uuid.New())

	res, err := s.AdminDeleteComment(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, res.Comment.State)
}

// Цепочка надгробий схлопывается вверх, когда уходит последний живой потомок.
//
//	r (надгробие)
//	  a (надгробие)
//	    b  <- удаляем
func TestService_DeleteComment_CascadeChain(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	r := create(t, s, "", author)
	a := create(t, s, r.ID, author)
	b := create(t, s, a.ID, author)

	_, err := s.DeleteComment(ctx, a.ID, author)
	require.NoError(t, err)
	_, err = s.DeleteComment(ctx, r.ID, author)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedWithDescendants, state(t, st, r.ID))

	res, err := s.DeleteComment(ctx, b.ID, author)
	require.NoError(t, err)
	require.Equal(t, 2, res.Cascaded)

	for _, id := range []string{r.ID, a.ID, b.ID} {
		require.Equal(t, models.StateDeletedLeaf, state(t, st, id))
	}

	// Структурно мёртвая ветка остаётся в выдаче с редактированием.
	flat, err := s.ListFlat(ctx, testScope)
	require.NoError(t, err)
	require.Len(t, flat, 3)
	for _, it := range flat {
		require.True(t, it.Deleted)
	}
}

// Каскад останавливается на предке, у которого остался живой ребёнок.
//
//	r (надгробие)
//	  a (надгробие)
//	    b  <- удаляем
//	  c (живой)
func TestService_DeleteComment_CascadeStopsAtLiveSibling(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	r := create(t, s, "", author)
	a := create(t, s, r.ID, author)
	b := create(t, s, a.ID, author)
	c := create(t, s, r.ID, author)

	_, err := s.DeleteComment(ctx, a.ID, author)
	require.NoError(t, err)
	_, err = s.DeleteComment(ctx, r.ID, author)
	require.NoError(t, err)

	res, err := s.DeleteComment(ctx, b.ID, author)
	require.NoError(t, err)
	require.Equal(t, 1, res.Cascaded)

	require.Equal(t, models.StateDeletedLeaf, state(t, st, a.ID))
	require.Equal(t, models.StateDeletedWithDescendants, state(t, st, r.ID))
	require.Equal(t, models.StateActive, state(t, st, c.ID))

	// Когда уходит и c, r наконец схлопывается.
	res, err = s.DeleteComment(ctx, c.ID, author)
	require.NoError(t, err)
	require.Equal(t, 1, res.Cascaded)
	require.Equal(t, models.StateDeletedLeaf, state(t, st, r.ID))
}

// Каскад не трогает живого предка.
func TestService_DeleteComment_CascadeStopsAtActiveAncestor(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	author := uuid.New()

	r := create(t, s, "", author)
	a := create(t, s, r.ID, author)

	res, err := s.DeleteComment(context.Background(), a.ID, author)
	require.NoError(t, err)
	require.Zero(t, res.Cascaded)
	require.Equal(t, models.StateActive, state(t, st, r.ID))
}

func TestService_DeleteComment_CascadeHopLimit(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	s.cfg.Limits.MaxCascade = 1
	ctx := context.Background()
	author := uuid.New()

	r := create(t, s, "", author)
	a := create(t, s, r.ID, author)
	b := create(t, s, a.ID, author)

	_, err := s.DeleteComment(ctx, a.ID, author)
	require.NoError(t, err)
	_, err = s.DeleteComment(ctx, r.ID, author)
	require.NoError(t, err)

	res, err := s.DeleteComment(ctx, b.ID, author)
	require.NoError(t, err)
	require.Equal(t, 1, res.Cascaded)
	require.Equal(t, models.StateDeletedLeaf, state(t, st, a.ID))
	require.Equal(t, models.StateDeletedWithDescendants, state(t, st, r.ID))
}

// mockComment - комментарий для сценариев на моках.
func mockComment(id, parentID string, st models.CommentState) *models.Comment {
	return &models.Comment{
		ID:        id,
		Scope:     testScope,
		ParentID:  parentID,
		Depth:     2,
		SortOrder: decimal.NewFromInt(1),
		AuthorID:  uuid.New(),
		State:     st,
		Status:    models.StatusApproved,
	}
}

// inTx прокидывает вызов транзакции в мок Tx.
func inTx(ms *mocks.MockStorage, tx *mocks.MockTx) {
	ms.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, storage.Tx) error) error {
			return fn(ctx, tx)
		})
}

// Отсутствующий предок (повреждённые данные) - не ошибка, каскад просто заканчивается.
func TestService_DeleteComment_MissingAncestorIsBenign(t *testing.T) {
	t.Parallel()

	s, ms, ctrl := newServiceWithMocks(t)
	tx := mocks.NewMockTx(ctrl)
	inTx(ms, tx)

	c := mockComment("x", "ghost", models.StateActive)
	gomock.InOrder(
		tx.EXPECT().LockComment(gomock.Any(), "x").Return(nil),
		tx.EXPECT().CommentByID(gomock.Any(), "x").Return(c, nil),
		tx.EXPECT().CountLiveChildren(gomock.Any(), "x", "").Return(0, nil),
		tx.EXPECT().UpdateComment(gomock.Any(), gomock.Any()).Return(nil),
		tx.EXPECT().LockComment(gomock.Any(), "ghost").Return(storage.ErrNotFound),
	)

	res, err := s.AdminDeleteComment(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, res.Comment.State)
	require.Zero(t, res.Cascaded)
}

// Цикл в предках обрывается множеством посещённых.
func TestService_DeleteComment_CascadeCycle(t *testing.T) {
	t.Parallel()

	s, ms, ctrl := newServiceWithMocks(t)
	tx := mocks.NewMockTx(ctrl)
	inTx(ms, tx)

	x := mockComment("x", "y", models.StateActive)
	y := mockComment("y", "x", models.StateDeletedWithDescendants)

	tx.EXPECT().LockComment(gomock.Any(), "x").Return(nil)
	tx.EXPECT().CommentByID(gomock.Any(), "x").Return(x, nil)
	tx.EXPECT().CountLiveChildren(gomock.Any(), "x", "").Return(0, nil)
	tx.EXPECT().LockComment(gomock.Any(), "y").Return(nil)
	tx.EXPECT().CommentByID(gomock.Any(), "y").Return(y, nil)
	tx.EXPECT().CountLiveChildren(gomock.Any(), "y", "x").Return(0, nil)
	tx.EXPECT().UpdateComment(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := s.AdminDeleteComment(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, 1, res.Cascaded)
}

func TestService_DeleteComment_StorageError(t *testing.T) {
	t.Parallel()

	s, ms, ctrl := newServiceWithMocks(t)
	tx := mocks.NewMockTx(ctrl)
	inTx(ms, tx)

	tx.EXPECT().LockComment(gomock.Any(), "x").Return(nil)
	tx.EXPECT().CommentByID(gomock.Any(), "x").Return(mockComment("x", "", models.StateActive), nil)
	tx.EXPECT().CountLiveChildren(gomock.Any(), "x", "").Return(0, errors.New("db down"))

	_, err := s.AdminDeleteComment(context.Background(), "x")
	require.ErrorIs(t, err, ErrInternal)
}

// Удаляемый комментарий и каждый предок блокируются до чтения состояния
// и подсчёта живых детей; подсчёт идёт уже под блокировкой.
func TestService_DeleteComment_LocksBeforeCounting(t *testing.T) {
	t.Parallel()

	s, ms, ctrl := newServiceWithMocks(t)
	tx := mocks.NewMockTx(ctrl)
	inTx(ms, tx)

	x := mockComment("x", "t", models.StateActive)
	tomb := mockComment("t", "", models.StateDeletedWithDescendants)

	gomock.InOrder(
		tx.EXPECT().LockComment(gomock.Any(), "x").Return(nil),
		tx.EXPECT().CommentByID(gomock.Any(), "x").Return(x, nil),
		tx.EXPECT().CountLiveChildren(gomock.Any(), "x", "").Return(0, nil),
		tx.EXPECT().UpdateComment(gomock.Any(), gomock.Any()).Return(nil),
		tx.EXPECT().LockComment(gomock.Any(), "t").Return(nil),
		tx.EXPECT().CommentByID(gomock.Any(), "t").Return(tomb, nil),
		// Под блокировкой виден ответ, добавленный параллельным созданием.
		tx.EXPECT().CountLiveChildren(gomock.Any(), "t", "x").Return(1, nil),
	)

	res, err := s.AdminDeleteComment(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, res.Comment.State)
	require.Zero(t, res.Cascaded)
}

// Ошибка блокировки (в том числе отсутствие записи) останавливает удаление до чтения.
func TestService_DeleteComment_LockErrors(t *testing.T) {
	t.Parallel()

	s, ms, ctrl := newServiceWithMocks(t)
	tx := mocks.NewMockTx(ctrl)
	ms.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, storage.Tx) error) error {
			return fn(ctx, tx)
		}).Times(2)

	gomock.InOrder(
		tx.EXPECT().LockComment(gomock.Any(), "x").Return(storage.ErrNotFound),
		tx.EXPECT().LockComment(gomock.Any(), "x").Return(errors.New("lock timeout")),
	)

	_, err := s.AdminDeleteComment(context.Background(), "x")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.AdminDeleteComment(context.Background(), "x")
	require.ErrorIs(t, err, ErrInternal)
}

// Параллельные удаления последних живых детей надгробия: после всех
// транзакций надгробие схлопнуто, каждый ребёнок удалён ровно один раз.
func TestService_DeleteComment_ConcurrentSiblings(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	r := create(t, s, "", author)
	kids := make([]*models.Comment, 8)
	for i := range kids {
		kids[i] = create(t, s, r.ID, author)
	}

	_, err := s.DeleteComment(ctx, r.ID, author)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2*len(kids))
	for _, k := range kids {
		for range 2 {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := s.DeleteComment(ctx, id, author)
				errs <- err
			}(k.ID)
		}
	}
	wg.Wait()
	close(errs)

	var ok, already int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyDeleted):
			already++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, len(kids), ok)
	require.Equal(t, len(kids), already)
	require.Equal(t, models.StateDeletedLeaf, state(t, st, r.ID))
}

// Ответ удаляется первым: корень не трогается; затем корень без живых детей
// сразу становится deleted_leaf, каскаду выше идти некуда.
func TestService_DeleteComment_ReplyThenRoot(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	ctx := context.Background()
	owner := uuid.New()

	r := create(t, s, "", owner)
	x := create(t, s, r.ID, owner)

	res, err := s.DeleteComment(ctx, x.ID, owner)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, res.Comment.State)
	require.Zero(t, res.Cascaded)
	require.Equal(t, models.StateActive, state(t, st, r.ID))

	res, err = s.DeleteComment(ctx, r.ID, owner)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedLeaf, res.Comment.State)
	require.Zero(t, res.Cascaded)
	require.Equal(t, models.StateDeletedLeaf, state(t, st, x.ID))
}
