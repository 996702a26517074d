// Package storage описывает контракт хранилища комментариев и реакций.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pribylovaa/commentary/internal/models"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCursor - битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrConflict - конфликт уникальности (в том числе ключа порядка среди детей одного родителя).
	ErrConflict = errors.New("conflict")
)

// CommentStore описывает операции над комментариями.
type CommentStore interface {
	// CommentByID возвращает комментарий в любом состоянии.
	// Если запись не найдена - ErrNotFound.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByScope возвращает все комментарии ветки, включая удалённые.
	// Порядок не гарантируется.
	ListByScope(ctx context.Context, scope models.Scope) ([]models.Comment, error)

	// ListRoots возвращает страницу корней ветки по возрастанию (sort_order, id).
	// p.PageSize уже нормализован вызывающей стороной.
	// При некорректном page_token - ErrInvalidCursor.
	ListRoots(ctx context.Context, scope models.Scope, p models.ListParams) (*models.Page, error)

	// ListChildren возвращает прямых детей комментария по возрастанию (sort_order, id).
	ListChildren(ctx context.Context, parentID string) ([]models.Comment, error)

	// CountLiveChildren считает живых (не deleted_leaf) прямых детей parentID,
	// не считая excludeID.
	CountLiveChildren(ctx context.Context, parentID, excludeID string) (int, error)

	// MaxSortOrder возвращает наибольший ключ среди корней scope (parentID == "")
	// или среди детей parentID. ok=false - ключей ещё нет.
	MaxSortOrder(ctx context.Context, scope models.Scope, parentID string) (max decimal.Decimal, ok bool, err error)

	// LockThread захватывает блокировку на выдачу ключей под parentID
	// (или под корнями scope) до конца текущей транзакции.
	LockThread(ctx context.Context, scope models.Scope, parentID string) error

	// LockComment захватывает блокировку строки комментария до конца транзакции.
	// Конкурирующие удаления, каскады и реакции на этот комментарий сериализуются на ней.
	// Если запись не найдена - ErrNotFound.
	LockComment(ctx context.Context, id string) error

	// InsertComment сохраняет новый комментарий.
	// Совпадение (scope, parent_id, sort_order) - ErrConflict.
	InsertComment(ctx context.Context, c models.Comment) error

	// UpdateComment перезаписывает изменяемые поля: content, state, status, updated_at.
	// Если запись не найдена - ErrNotFound.
	UpdateComment(ctx context.Context, c models.Comment) error

	// UpdateCounters атомарно сдвигает счётчики реакций на дельты.
	// Если запись не найдена - ErrNotFound.
	UpdateCounters(ctx context.Context, id string, likeDelta, dislikeDelta int64) error

	// UpdateSortKeys переписывает ключи порядка и глубину у набора комментариев scope.
	// Уникальность проверяется по итоговому состоянию набора.
	UpdateSortKeys(ctx context.Context, scope models.Scope, updates []models.SortKeyUpdate) error
}

// ReactionStore описывает операции над реакциями.
type ReactionStore interface {
	// ReactionByCommentAndUser возвращает реакцию пользователя на комментарий.
	// Если реакции нет - ErrNotFound.
	ReactionByCommentAndUser(ctx context.Context, commentID string, userID uuid.UUID) (*models.Reaction, error)

	// SaveReaction создаёт или заменяет реакцию пары (comment, user).
	SaveReaction(ctx context.Context, r models.Reaction) error

	// DeleteReaction удаляет реакцию пары. Если реакции нет - ErrNotFound.
	DeleteReaction(ctx context.Context, commentID string, userID uuid.UUID) error

	// ReactionsByUser возвращает все реакции пользователя в ветке.
	ReactionsByUser(ctx context.Context, scope models.Scope, userID uuid.UUID) ([]models.Reaction, error)
}

// Tx - набор операций, доступных внутри транзакции.
type Tx interface {
	CommentStore
	ReactionStore
}

// Storage - хранилище целиком.
type Storage interface {
	Tx

	// InTx выполняет fn в одной транзакции. Любая ошибка fn откатывает все изменения.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error

	// Close закрывает соединения/ресурсы хранилища.
	Close()
}
