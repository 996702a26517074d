package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/service"
)

// Заголовки доверенного апстрима (шлюза) с идентичностью пользователя.
const (
	HeaderUserID      = "X-User-Id"
	HeaderUserName    = "X-User-Name"
	HeaderSiteOwnerID = "X-Site-Owner-Id"
)

// CommentService - операции сервиса, которые использует HTTP-слой.
type CommentService interface {
	CreateComment(ctx context.Context, in service.CreateCommentInput) (*models.Comment, error)
	EditComment(ctx context.Context, in service.EditCommentInput) (*models.Comment, error)
	SetStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Comment, error)
	CommentByID(ctx context.Context, id string) (*models.CommentView, error)
	ListThread(ctx context.Context, in service.ListThreadInput) (*models.ThreadPage, error)
	ListFlat(ctx context.Context, scope models.Scope) ([]models.CommentSummary, error)
	ListReplies(ctx context.Context, id string) ([]models.CommentView, error)
	DeleteComment(ctx context.Context, id string, requesterID uuid.UUID) (*service.DeleteResult, error)
	AdminDeleteComment(ctx context.Context, id string) (*service.DeleteResult, error)
	React(ctx context.Context, in service.ReactInput) (*service.ReactResult, error)
	UserReactions(ctx context.Context, scope models.Scope, userID uuid.UUID) (map[string]models.ReactionType, error)
	ReorderAll(ctx context.Context, scope models.Scope) (*service.ReorderReport, error)
}

// Pinger - проверка готовности хранилища для /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers агрегирует зависимости HTTP-обработчиков.
type Handlers struct {
	Service CommentService
	Health  Pinger
}

func New(svc CommentService, health Pinger) *Handlers {
	return &Handlers{Service: svc, Health: health}
}

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict - строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument - локальная ошибка парсинга запроса.
func errInvalidArgument(reason string) error {
	return fmt.Errorf("%s: %w", reason, service.ErrInvalidArgument)
}

// param - параметр пути chi; page_id обычно содержит "/", поэтому приходит в %-кодировке.
func param(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)

	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", errInvalidArgument("bad path param " + name)
	}

	return strings.TrimSpace(v), nil
}

// scopeFrom собирает scope из параметров {site} и {page}.
func scopeFrom(r *http.Request) (models.Scope, error) {
	site, err := param(r, "site")
	if err != nil {
		return models.Scope{}, err
	}

	page, err := param(r, "page")
	if err != nil {
		return models.Scope{}, err
	}

	return models.Scope{SiteID: site, PageID: page}, nil
}

// userID читает идентичность пользователя из заголовка X-User-Id.
func userID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if raw == "" {
		return uuid.Nil, errInvalidArgument("missing " + HeaderUserID)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidArgument("bad " + HeaderUserID)
	}

	return id, nil
}
