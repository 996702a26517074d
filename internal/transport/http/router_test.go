package http

// Тесты HTTP-поверхности: роутер chi + middleware + handlers поверх сервиса
// на хранилище в памяти. Проверяем коды ответов, формат JSON и маппинг ошибок.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/commentary/internal/config"
	"github.com/pribylovaa/commentary/internal/metrics"
	"github.com/pribylovaa/commentary/internal/service"
	"github.com/pribylovaa/commentary/internal/storage/memory"
	apierrors "github.com/pribylovaa/commentary/internal/transport/http/errors"
	"github.com/pribylovaa/commentary/internal/transport/http/handlers"
)

// thread - путь ветки; page_id "/post/1" кодируется в %2F.
const thread = "/sites/site/pages/%2Fpost%2F1"

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type env struct {
	handler http.Handler
	reg     *prometheus.Registry
}

func newEnv(t *testing.T, basePath string) *env {
	t.Helper()

	cfg := config.Config{
		Limits: config.LimitsConfig{Default: 20, Max: 300, MaxDepth: 3, MaxCascade: 64},
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	st := memory.New()
	svc := service.New(st, nil, m, cfg)

	h := NewRouter(svc, st, Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout:  time.Second,
		BasePath: basePath,
		Metrics:  m,
	})

	return &env{handler: h, reg: reg}
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil).
func (e *env) do(t *testing.T, method, target string, user *uuid.UUID, body any, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, rd)
	if user != nil {
		req.Header.Set(handlers.HeaderUserID, user.String())
		req.Header.Set(handlers.HeaderUserName, "alice")
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)

	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	if out != nil {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out), rr.Body.String())
	}

	return rr.Code
}

// errCode - код ошибки из конверта.
func (e *env) errCode(t *testing.T, method, target string, user *uuid.UUID, body any) (int, string) {
	t.Helper()
	var envl apierrors.ErrorResponse
	status := e.do(t, method, target, user, body, &envl)
	return status, envl.Error.Code
}

func TestRouter_CommentLifecycle(t *testing.T) {
	e := newEnv(t, "")
	alice := uuid.New()
	bob := uuid.New()

	var root handlers.Comment
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, thread+"/comments", &alice,
		handlers.CreateCommentRequest{Content: "first"}, &root))
	require.Equal(t, "1", root.SortOrder)
	require.Equal(t, "/post/1", root.PageID)
	require.Equal(t, "alice", root.Author.Name)
	require.EqualValues(t, 1, root.Depth)

	var reply handlers.Comment
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, thread+"/comments", &bob,
		handlers.CreateCommentRequest{ParentID: root.ID, Content: "reply"}, &reply))
	require.Equal(t, "1.1", reply.SortOrder)
	require.Equal(t, root.ID, reply.ParentID)

	var page handlers.ThreadPage
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, thread+"/comments?page_size=10", nil, nil, &page))
	require.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	require.Len(t, page.Items[0].Children, 1)
	require.Equal(t, reply.ID, page.Items[0].Children[0].Comment.ID)

	var flat handlers.FlatList
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, thread+"/comments/flat", nil, nil, &flat))
	require.Len(t, flat.Items, 2)
	require.Equal(t, 1, flat.Items[0].ChildCount)

	var replies handlers.Replies
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/comments/"+root.ID+"/replies", nil, nil, &replies))
	require.Len(t, replies.Items, 1)

	// Редактирует только автор.
	status, code := e.errCode(t, http.MethodPatch, "/comments/"+root.ID, &bob, handlers.EditCommentRequest{Content: "x"})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "not_owner", code)

	var edited handlers.Comment
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPatch, "/comments/"+root.ID, &alice,
		handlers.EditCommentRequest{Content: "edited"}, &edited))
	require.Equal(t, "edited", edited.Content)

	// Реакции.
	var react handlers.ReactResponse
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/comments/"+root.ID+"/reactions", &bob,
		handlers.ReactRequest{Type: "like"}, &react))
	require.Equal(t, "added", react.Action)
	require.EqualValues(t, 1, react.Comment.LikeCount)
	require.Equal(t, "like", *react.Current)

	var mine handlers.UserReactionsResponse
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, thread+"/reactions", &bob, nil, &mine))
	require.Len(t, mine.Reactions, 1)

	// Удаление корня с живым ответом - надгробие.
	var del handlers.DeleteResponse
	require.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, "/comments/"+root.ID, &alice, nil, &del))
	require.True(t, del.Comment.Deleted)
	require.Nil(t, del.Comment.Author)

	var got handlers.Comment
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/comments/"+root.ID, nil, nil, &got))
	require.True(t, got.Deleted)
	require.Equal(t, "[deleted]", got.Content)

	status, code = e.errCode(t, http.MethodDelete, "/comments/"+root.ID, &alice, nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "already_deleted", code)

	// Удаление последнего ответа схлопывает надгробие.
	require.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, "/comments/"+reply.ID, &bob, nil, &del))
	require.Equal(t, 1, del.Cascaded)

	// Ответ на структурно мёртвый комментарий.
	status, code = e.errCode(t, http.MethodPost, thread+"/comments", &bob,
		handlers.CreateCommentRequest{ParentID: root.ID, Content: "late"})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "parent_not_found", code)
}

func TestRouter_Admin(t *testing.T) {
	e := newEnv(t, "")
	alice := uuid.New()

	var c handlers.Comment
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, thread+"/comments", &alice,
		handlers.CreateCommentRequest{Content: "spam"}, &c))

	var moderated handlers.Comment
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/admin/comments/"+c.ID+"/status", nil,
		handlers.SetStatusRequest{Status: "rejected"}, &moderated))
	require.Equal(t, "rejected", moderated.Status)

	status, code := e.errCode(t, http.MethodPut, "/admin/comments/"+c.ID+"/status", nil,
		handlers.SetStatusRequest{Status: "maybe"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid_argument", code)

	var rep handlers.ReorderResponse
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/admin"+thread+"/reorder", nil, nil, &rep))
	require.Equal(t, 1, rep.Total)

	var del handlers.DeleteResponse
	require.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, "/admin/comments/"+c.ID, nil, nil, &del))
	require.True(t, del.Comment.Deleted)
}

func TestRouter_Errors(t *testing.T) {
	e := newEnv(t, "")
	alice := uuid.New()

	cases := []struct {
		name       string
		method     string
		target     string
		user       *uuid.UUID
		body       any
		wantStatus int
		wantCode   string
	}{
		{"no identity", http.MethodPost, thread + "/comments", nil, handlers.CreateCommentRequest{Content: "x"}, http.StatusBadRequest, "invalid_argument"},
		{"unknown field", http.MethodPost, thread + "/comments", &alice, map[string]any{"content": "x", "extra": 1}, http.StatusBadRequest, "invalid_argument"},
		{"empty content", http.MethodPost, thread + "/comments", &alice, handlers.CreateCommentRequest{Content: " "}, http.StatusBadRequest, "invalid_argument"},
		{"missing parent", http.MethodPost, thread + "/comments", &alice, handlers.CreateCommentRequest{ParentID: "nope", Content: "x"}, http.StatusNotFound, "parent_not_found"},
		{"bad page_size", http.MethodGet, thread + "/comments?page_size=abc", nil, nil, http.StatusBadRequest, "invalid_argument"},
		{"bad cursor", http.MethodGet, thread + "/comments?page_token=%25%25", nil, nil, http.StatusBadRequest, "invalid_cursor"},
		{"unknown comment", http.MethodGet, "/comments/nope", nil, nil, http.StatusNotFound, "not_found"},
		{"bad reaction", http.MethodPost, "/comments/nope/reactions", &alice, handlers.ReactRequest{Type: "love"}, http.StatusBadRequest, "invalid_argument"},
		{"reactions no identity", http.MethodGet, thread + "/reactions", nil, nil, http.StatusBadRequest, "invalid_argument"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := e.errCode(t, tc.method, tc.target, tc.user, tc.body)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantCode, code)
		})
	}
}

func TestRouter_BadUserHeader(t *testing.T) {
	e := newEnv(t, "")

	req := httptest.NewRequest(http.MethodDelete, "/comments/x", nil)
	req.Header.Set(handlers.HeaderUserID, "not-a-uuid")
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_BasePathAndProbes(t *testing.T) {
	e := newEnv(t, "/api")
	alice := uuid.New()

	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/api"+thread+"/comments", &alice,
		handlers.CreateCommentRequest{Content: "x"}, &handlers.Comment{}))

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, thread+"/comments", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	for _, p := range []string{"/livez", "/healthz"} {
		rr := httptest.NewRecorder()
		e.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, p, nil))
		require.Equal(t, http.StatusOK, rr.Code, p)
	}

	n, err := testutil.GatherAndCount(e.reg, "commentary_http_requests_total")
	require.NoError(t, err)
	require.Positive(t, n)
}

func TestRouter_HealthzFailing(t *testing.T) {
	st := memory.New()
	svc := service.New(st, nil, nil, config.Config{Limits: config.LimitsConfig{Default: 20, Max: 300, MaxDepth: 3}})

	h := NewRouter(svc, pingerFunc(func(context.Context) error { return errors.New("down") }), Options{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
