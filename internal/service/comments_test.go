package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/quota"
	"github.com/pribylovaa/commentary/internal/storage"
	"github.com/pribylovaa/commentary/mocks"
)

// Валидация: пустой scope, пустой автор, пустое имя, пустой после санитизации текст.
func TestService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	cases := []struct {
		name string
		in   CreateCommentInput
	}{
		{"empty site", CreateCommentInput{Scope: models.Scope{PageID: "/p"}, AuthorID: author, AuthorName: "x", Content: "x"}},
		{"blank page", CreateCommentInput{Scope: models.Scope{SiteID: "s", PageID: "   "}, AuthorID: author, AuthorName: "x", Content: "x"}},
		{"nil author", CreateCommentInput{Scope: testScope, AuthorID: uuid.Nil, AuthorName: "x", Content: "x"}},
		{"blank name", CreateCommentInput{Scope: testScope, AuthorID: author, AuthorName: "  ", Content: "x"}},
		{"blank content", CreateCommentInput{Scope: testScope, AuthorID: author, AuthorName: "x", Content: "  "}},
		{"script only", CreateCommentInput{Scope: testScope, AuthorID: author, AuthorName: "x", Content: "<script>alert(1)</script>"}},
	}

	for _, tc := range cases {
		_, err := s.CreateComment(ctx, tc.in)
		require.ErrorIs(t, err, ErrInvalidArgument, tc.name)
	}

	all, err := st.ListByScope(ctx, testScope)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestService_CreateComment_SanitizesAndTrims(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)

	c, err := s.CreateComment(context.Background(), CreateCommentInput{
		Scope:      models.Scope{SiteID: "  site ", PageID: " /post/1 "},
		AuthorID:   uuid.New(),
		AuthorName: "  alice ",
		Content:    ` <b>hi</b><script>alert(1)</script> `,
	})
	require.NoError(t, err)
	require.Equal(t, testScope, c.Scope)
	require.Equal(t, "alice", c.AuthorName)
	require.Equal(t, "<b>hi</b>", c.Content)
	require.Equal(t, models.StateActive, c.State)
	require.Equal(t, models.StatusApproved, c.Status)
	require.NotEmpty(t, c.ID)
}

// Ключи: корни 1, 2; первый ответ parent+0.1, следующие max+0.01.
func TestService_CreateComment_SortKeys(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	author := uuid.New()

	r1 := create(t, s, "", author)
	r2 := create(t, s, "", author)
	require.Equal(t, "1", r1.SortOrder.String())
	require.Equal(t, "2", r2.SortOrder.String())
	require.EqualValues(t, 1, r1.Depth)

	a := create(t, s, r1.ID, author)
	b := create(t, s, r1.ID, author)
	require.Equal(t, "1.1", a.SortOrder.String())
	require.Equal(t, "1.11", b.SortOrder.String())
	require.EqualValues(t, 2, a.Depth)

	a1 := create(t, s, a.ID, author)
	require.Equal(t, "1.2", a1.SortOrder.String())
	require.EqualValues(t, 3, a1.Depth)

	c := create(t, s, r2.ID, author)
	require.Equal(t, "2.1", c.SortOrder.String())
}

// Ответ на узел максимальной глубины остаётся его ребёнком, глубина насыщается.
func TestService_CreateComment_DepthSaturates(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	author := uuid.New()

	parent := create(t, s, "", author)
	for i := 0; i < 6; i++ {
		child := create(t, s, parent.ID, author)
		require.Equal(t, parent.ID, child.ParentID)
		require.LessOrEqual(t, child.Depth, s.cfg.Limits.MaxDepth)
		require.True(t, child.SortOrder.GreaterThan(parent.SortOrder))
		parent = child
	}
	require.EqualValues(t, 3, parent.Depth)
}

func TestService_CreateComment_ParentNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	_, err := s.CreateComment(ctx, CreateCommentInput{
		Scope: testScope, ParentID: uuid.NewString(), AuthorID: author, AuthorName: "x", Content: "x",
	})
	require.ErrorIs(t, err, ErrParentNotFound)

	// Родитель из другой ветки.
	other, err := s.CreateComment(ctx, CreateCommentInput{
		Scope: models.Scope{SiteID: "site", PageID: "/other"}, AuthorID: author, AuthorName: "x", Content: "x",
	})
	require.NoError(t, err)

	_, err = s.CreateComment(ctx, CreateCommentInput{
		Scope: testScope, ParentID: other.ID, AuthorID: author, AuthorName: "x", Content: "x",
	})
	require.ErrorIs(t, err, ErrParentNotFound)

	// Структурно мёртвый родитель.
	leaf := create(t, s, "", author)
	_, err = s.DeleteComment(ctx, leaf.ID, author)
	require.NoError(t, err)

	_, err = s.CreateComment(ctx, CreateCommentInput{
		Scope: testScope, ParentID: leaf.ID, AuthorID: author, AuthorName: "x", Content: "x",
	})
	require.ErrorIs(t, err, ErrParentNotFound)
}

// На надгробие (deleted_with_descendants) отвечать можно.
func TestService_CreateComment_ReplyToTombstone(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	author := uuid.New()

	root := create(t, s, "", author)
	create(t, s, root.ID, author)

	res, err := s.DeleteComment(context.Background(), root.ID, author)
	require.NoError(t, err)
	require.Equal(t, models.StateDeletedWithDescendants, res.Comment.State)

	reply := create(t, s, root.ID, author)
	require.Equal(t, "1.11", reply.SortOrder.String())
}

func TestService_CreateComment_Premoderate(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	s.cfg.Moderation.Premoderate = true

	c := create(t, s, "", uuid.New())
	require.Equal(t, models.StatusPending, c.Status)
}

// Параллельные ответы одному родителю получают различные ключи.
func TestService_CreateComment_ConcurrentReplies(t *testing.T) {
	t.Parallel()

	s, st := newMemService(t)
	root := create(t, s, "", uuid.New())

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateComment(context.Background(), CreateCommentInput{
				Scope: testScope, ParentID: root.ID, AuthorID: uuid.New(), AuthorName: "x", Content: "x",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	kids, err := st.ListChildren(context.Background(), root.ID)
	require.NoError(t, err)
	require.Len(t, kids, n)

	keys := map[string]struct{}{}
	for _, k := range kids {
		keys[k.SortOrder.String()] = struct{}{}
	}
	require.Len(t, keys, n)
}

func TestService_CreateComment_QuotaExceeded(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	mq := mocks.NewMockChecker(ctrl)
	s := New(ms, mq, nil, testConfig())

	mq.EXPECT().AllowNewComment(gomock.Any(), "owner-1").Return(quota.Slot{}, false, nil)

	_, err := s.CreateComment(context.Background(), CreateCommentInput{
		Scope: testScope, AuthorID: uuid.New(), AuthorName: "x", Content: "x", OwnerID: " owner-1 ",
	})
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

// Без OwnerID квота считается по site_id; неудачное создание возвращает слот квоты.
func TestService_CreateComment_QuotaReleasedOnFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mq := mocks.NewMockChecker(ctrl)
	s, _ := newMemService(t)
	s.quota = mq
	slot := quota.Slot{OwnerID: testScope.SiteID, Period: "2026-03"}

	gomock.InOrder(
		mq.EXPECT().AllowNewComment(gomock.Any(), testScope.SiteID).Return(slot, true, nil),
		mq.EXPECT().Release(gomock.Any(), slot).Return(nil),
	)

	_, err := s.CreateComment(context.Background(), CreateCommentInput{
		Scope: testScope, ParentID: "missing", AuthorID: uuid.New(), AuthorName: "x", Content: "x",
	})
	require.ErrorIs(t, err, ErrParentNotFound)
}

func TestService_CreateComment_QuotaBackendError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mq := mocks.NewMockChecker(ctrl)
	s, _ := newMemService(t)
	s.quota = mq

	mq.EXPECT().AllowNewComment(gomock.Any(), gomock.Any()).Return(quota.Slot{}, false, errors.New("redis down"))

	_, err := s.CreateComment(context.Background(), CreateCommentInput{
		Scope: testScope, AuthorID: uuid.New(), AuthorName: "x", Content: "x",
	})
	require.ErrorIs(t, err, ErrInternal)
}

// Конфликт ключа повторяется один раз; вторая попытка проходит.
func TestService_CreateComment_RetryOnConflict(t *testing.T) {
	t.Parallel()

	s, ms, _ := newServiceWithMocks(t)
	s.now = clock()
	mem, _ := newMemService(t)

	gomock.InOrder(
		ms.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(storage.ErrConflict),
		ms.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context, storage.Tx) error) error {
				return mem.storage.InTx(ctx, fn)
			}),
	)

	c, err := s.CreateComment(context.Background(), CreateCommentInput{
		Scope: testScope, AuthorID: uuid.New(), AuthorName: "x", Content: "x",
	})
	require.NoError(t, err)
	require.Equal(t, "1", c.SortOrder.String())
}

func TestService_CreateComment_ConflictPersists(t *testing.T) {
	t.Parallel()

	s, ms, _ := newServiceWithMocks(t)

	ms.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(storage.ErrConflict).Times(2)

	_, err := s.CreateComment(context.Background(), CreateCommentInput{
		Scope: testScope, AuthorID: uuid.New(), AuthorName: "x", Content: "x",
	})
	require.ErrorIs(t, err, ErrSortKeyConflict)
}

// Сбой на блокировке ветки маппится в ErrInternal, ошибки контекста пробрасываются.
func TestService_CreateComment_StorageErrors(t *testing.T) {
	t.Parallel()

	s, ms, _ := newServiceWithMocks(t)
	tx := mocks.NewMockTx(gomock.NewController(t))

	ms.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, storage.Tx) error) error {
			return fn(ctx, tx)
		}).Times(2)

	gomock.InOrder(
		tx.EXPECT().LockThread(gomock.Any(), testScope, "").Return(errors.New("db down")),
		tx.EXPECT().LockThread(gomock.Any(), testScope, "").Return(context.DeadlineExceeded),
	)

	in := CreateCommentInput{Scope: testScope, AuthorID: uuid.New(), AuthorName: "x", Content: "x"}

	_, err := s.CreateComment(context.Background(), in)
	require.ErrorIs(t, err, ErrInternal)

	_, err = s.CreateComment(context.Background(), in)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotErrorIs(t, err, ErrInternal)
}

func TestService_EditComment(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	c := create(t, s, "", author)

	_, err := s.EditComment(ctx, EditCommentInput{ID: c.ID, RequesterID: author, Content: "  "})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.EditComment(ctx, EditCommentInput{ID: "", RequesterID: author, Content: "x"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.EditComment(ctx, EditCommentInput{ID: "missing", RequesterID: author, Content: "x"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.EditComment(ctx, EditCommentInput{ID: c.ID, RequesterID: uuid.New(), Content: "x"})
	require.ErrorIs(t, err, ErrNotOwner)

	edited, err := s.EditComment(ctx, EditCommentInput{ID: c.ID, RequesterID: author, Content: " updated "})
	require.NoError(t, err)
	require.Equal(t, "updated", edited.Content)
	require.True(t, edited.UpdatedAt.After(c.UpdatedAt))
	require.True(t, edited.SortOrder.Equal(c.SortOrder))

	_, err = s.DeleteComment(ctx, c.ID, author)
	require.NoError(t, err)

	_, err = s.EditComment(ctx, EditCommentInput{ID: c.ID, RequesterID: author, Content: "again"})
	require.ErrorIs(t, err, ErrCannotEditDeleted)
}

func TestService_SetStatus(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()

	c := create(t, s, "", uuid.New())

	_, err := s.SetStatus(ctx, c.ID, "bogus")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.SetStatus(ctx, "missing", models.StatusRejected)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := s.SetStatus(ctx, c.ID, models.StatusRejected)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, got.Status)

	// Повтор с тем же статусом ничего не меняет.
	again, err := s.SetStatus(ctx, c.ID, models.StatusRejected)
	require.NoError(t, err)
	require.Equal(t, got.UpdatedAt, again.UpdatedAt)
}

func TestService_CommentByID(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	_, err := s.CommentByID(ctx, " ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.CommentByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	c := create(t, s, "", author)
	v, err := s.CommentByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", v.Content)
	require.Equal(t, author, v.Author.ID)

	_, err = s.DeleteComment(ctx, c.ID, author)
	require.NoError(t, err)

	v, err = s.CommentByID(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, v.Deleted)
	require.Equal(t, models.DeletedPlaceholder, v.Content)
	require.Nil(t, v.Author)
}

func TestService_CommentByID_Internal(t *testing.T) {
	t.Parallel()

	s, ms, _ := newServiceWithMocks(t)
	ms.EXPECT().CommentByID(gomock.Any(), "id").Return(nil, errors.New("boom"))

	_, err := s.CommentByID(context.Background(), "id")
	require.ErrorIs(t, err, ErrInternal)
}

// ListThread: страницы корней с поддеревьями, токен следующей страницы, Total.
func TestService_ListThread(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	var roots []*models.Comment
	for i := 0; i < 5; i++ {
		roots = append(roots, create(t, s, "", author))
	}
	reply := create(t, s, roots[0].ID, author)
	create(t, s, reply.ID, author)

	page, err := s.ListThread(ctx, ListThreadInput{Scope: testScope, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 5, page.Total)
	require.Len(t, page.Nodes, 2)
	require.Equal(t, roots[0].ID, page.Nodes[0].Comment.ID)
	require.Len(t, page.Nodes[0].Children, 1)
	require.Len(t, page.Nodes[0].Children[0].Children, 1)
	require.NotEmpty(t, page.NextPageToken)

	var seen []string
	token := ""
	for {
		p, err := s.ListThread(ctx, ListThreadInput{Scope: testScope, PageSize: 2, PageToken: token})
		require.NoError(t, err)
		for _, n := range p.Nodes {
			seen = append(seen, n.Comment.ID)
		}
		if p.NextPageToken == "" {
			break
		}
		token = p.NextPageToken
	}

	want := make([]string, 0, len(roots))
	for _, r := range roots {
		want = append(want, r.ID)
	}
	require.Equal(t, want, seen)

	_, err = s.ListThread(ctx, ListThreadInput{Scope: testScope, PageToken: "%%%"})
	require.ErrorIs(t, err, ErrInvalidCursor)

	_, err = s.ListThread(ctx, ListThreadInput{Scope: models.Scope{SiteID: "s"}})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// ListFlat: pre-order по ключам, удалённые узлы на месте с редактированием.
func TestService_ListFlat(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	empty, err := s.ListFlat(ctx, testScope)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	r1 := create(t, s, "", author)
	r2 := create(t, s, "", author)
	c := create(t, s, r2.ID, author)
	a := create(t, s, r1.ID, author)
	a1 := create(t, s, a.ID, author)
	b := create(t, s, r1.ID, author)

	_, err = s.DeleteComment(ctx, a.ID, author)
	require.NoError(t, err)

	flat, err := s.ListFlat(ctx, testScope)
	require.NoError(t, err)

	var got []string
	for _, it := range flat {
		got = append(got, it.ID)
	}
	require.Equal(t, []string{r1.ID, a.ID, a1.ID, b.ID, r2.ID, c.ID}, got)

	require.True(t, flat[1].Deleted)
	require.Equal(t, 1, flat[1].ChildCount)
	require.Equal(t, 2, flat[0].ChildCount)
}

func TestService_ListReplies(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	ctx := context.Background()
	author := uuid.New()

	_, err := s.ListReplies(ctx, "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.ListReplies(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	root := create(t, s, "", author)
	var want []string
	for i := 0; i < 3; i++ {
		want = append(want, create(t, s, root.ID, author).ID)
	}

	kids, err := s.ListReplies(ctx, root.ID)
	require.NoError(t, err)

	var got []string
	for _, k := range kids {
		got = append(got, k.ID)
	}
	require.Equal(t, want, got)
}

// Ответы одному родителю строго возрастают и лежат между ключом родителя и следующего корня.
func TestService_CreateComment_SiblingsBetweenParentAndNextRoot(t *testing.T) {
	t.Parallel()

	s, _ := newMemService(t)
	author := uuid.New()

	parent := create(t, s, "", author)
	next := create(t, s, "", author)

	prev := parent.SortOrder
	for i := 0; i < 10; i++ {
		c := create(t, s, parent.ID, author)
		require.True(t, c.SortOrder.GreaterThan(prev), "child %d", i)
		require.True(t, c.SortOrder.LessThan(next.SortOrder), "child %d", i)
		prev = c.SortOrder
	}
}
