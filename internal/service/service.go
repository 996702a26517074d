// Package service содержит бизнес-логику commentary: выдачу ключей порядка,
// жизненный цикл комментариев, реакции и пересчёт ключей.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pribylovaa/commentary/internal/config"
	"github.com/pribylovaa/commentary/internal/metrics"
	"github.com/pribylovaa/commentary/internal/ordering"
	"github.com/pribylovaa/commentary/internal/quota"
	"github.com/pribylovaa/commentary/internal/storage"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument - неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCursor - битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInternal - внутренняя ошибка (стораж/БД/и т.д.).
	ErrInternal = errors.New("internal")
	// ErrParentNotFound - родитель отсутствует, в другой ветке или структурно мёртв.
	ErrParentNotFound = errors.New("parent not found")
	// ErrNotOwner - операция доступна только автору комментария.
	ErrNotOwner = errors.New("not owner")
	// ErrAlreadyDeleted - комментарий уже удалён.
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrCannotEditDeleted - удалённый комментарий нельзя редактировать.
	ErrCannotEditDeleted = errors.New("cannot edit deleted comment")
	// ErrQuotaExceeded - исчерпана месячная квота владельца сайта.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrDepthInvariantViolation - вычисленная глубина вне [1, MaxDepth].
	ErrDepthInvariantViolation = errors.New("depth invariant violation")
	// ErrSortKeyConflict - ключ порядка занят и после повторной попытки.
	ErrSortKeyConflict = errors.New("sort key conflict")
)

const (
	maxContentRunes    = 10000
	maxAuthorNameRunes = 100
)

// Service - описывает бизнес-логику commentary.
type Service struct {
	storage  storage.Storage
	quota    quota.Checker
	metrics  *metrics.Metrics
	policy   *bluemonday.Policy
	assigner ordering.Assigner
	cfg      config.Config

	now   func() time.Time
	newID func() string
}

// New создает новый экземпляр Service. quota и metrics могут быть nil.
func New(storage storage.Storage, q quota.Checker, m *metrics.Metrics, cfg config.Config) *Service {
	if q == nil {
		q = quota.Unlimited{}
	}

	if cfg.Reorder.BatchSize <= 0 {
		cfg.Reorder.BatchSize = 500
	}

	if cfg.Limits.MaxCascade <= 0 {
		cfg.Limits.MaxCascade = 64
	}

	return &Service{
		storage: storage,
		quota:   q,
		metrics: m,
		policy:  bluemonday.UGCPolicy(),
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// internalErr логирует сбой нижнего слоя и прячет детали за ErrInternal.
// Ошибки контекста пробрасываются как есть: их различает транспорт.
func internalErr(lg *slog.Logger, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		lg.Warn("request aborted", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Error("storage failure", "err", err)

	return fmt.Errorf("%s: %w", op, ErrInternal)
}

// limitOrDefault приводит запрошенный размер страницы к [1, Max].
func (s *Service) limitOrDefault(pageSize int32) int32 {
	if pageSize <= 0 {
		return s.cfg.Limits.Default
	}

	if pageSize > s.cfg.Limits.Max {
		return s.cfg.Limits.Max
	}

	return pageSize
}
