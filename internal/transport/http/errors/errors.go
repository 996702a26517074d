// errors стандартизирует ответы об ошибках HTTP-слоя commentary.
// На вход он принимает ошибку сервисного слоя (sentinel из internal/service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткий стабильный code и безопасное message без утечки деталей.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/commentary/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError - единый формат для виджета.
// Code - короткий стабильный код для машиночитаемой обработки.
// Message - безопасное человекочитаемое описание.
// RequestID - прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse - корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// mapping - строка таблицы sentinel -> HTTP.
type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// table - порядок важен только для читаемости: sentinel-ошибки не пересекаются.
var table = []mapping{
	{service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", "invalid argument"},
	{service.ErrInvalidCursor, http.StatusBadRequest, "invalid_cursor", "invalid page token"},
	{service.ErrNotFound, http.StatusNotFound, "not_found", "not found"},
	{service.ErrParentNotFound, http.StatusNotFound, "parent_not_found", "parent comment not found"},
	{service.ErrNotOwner, http.StatusForbidden, "not_owner", "only the author can do this"},
	{service.ErrAlreadyDeleted, http.StatusConflict, "already_deleted", "comment already deleted"},
	{service.ErrCannotEditDeleted, http.StatusConflict, "cannot_edit_deleted", "deleted comment cannot be edited"},
	{service.ErrSortKeyConflict, http.StatusConflict, "sort_key_conflict", "concurrent update, retry"},
	{service.ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded", "monthly comment quota exceeded"},
	{context.Canceled, StatusClientClosedRequest, "canceled", "canceled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal, чтобы не послать
//     "200 OK" с телом ошибки и не маскировать баг;
//   - известный sentinel (через errors.Is) - соответствующий статус из table;
//   - прочее (ErrInternal, ErrDepthInvariantViolation, неизвестные) - 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	if err != nil {
		for _, m := range table {
			if errors.Is(err, m.target) {
				return m.status, ErrorResponse{Error: APIError{Code: m.code, Message: m.message}}
			}
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: APIError{
			Code:    "internal",
			Message: "internal error",
		},
	}
}

// WriteError - хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
