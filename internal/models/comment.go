// Package models содержит доменные сущности сервиса комментариев.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scope - границы одной ветки обсуждения: пара (сайт, страница).
type Scope struct {
	SiteID string
	PageID string
}

// Key возвращает строковое представление scope для логов и блокировок.
func (s Scope) Key() string {
	return s.SiteID + "|" + s.PageID
}

// CommentState - явное состояние жизненного цикла комментария.
//
//	active                    -> deleted_with_descendants (надгробие, остаются живые потомки)
//	active                    -> deleted_leaf             (структурно мёртв)
//	deleted_with_descendants  -> deleted_leaf             (через каскад, когда ушёл последний живой потомок)
type CommentState string

const (
	StateActive                 CommentState = "active"
	StateDeletedWithDescendants CommentState = "deleted_with_descendants"
	StateDeletedLeaf            CommentState = "deleted_leaf"
)

// Valid сообщает, является ли значение известным состоянием.
func (s CommentState) Valid() bool {
	switch s {
	case StateActive, StateDeletedWithDescendants, StateDeletedLeaf:
		return true
	default:
		return false
	}
}

// Living - узел считается живым, пока у него есть шанс отображаться в ветке:
// активный комментарий или надгробие с живыми потомками.
func (s CommentState) Living() bool {
	return s == StateActive || s == StateDeletedWithDescendants
}

// ModerationStatus - флаг модерации. Отдельного workflow нет.
type ModerationStatus string

const (
	StatusApproved ModerationStatus = "approved"
	StatusPending  ModerationStatus = "pending"
	StatusRejected ModerationStatus = "rejected"
)

// Valid сообщает, является ли значение известным статусом.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusRejected:
		return true
	default:
		return false
	}
}

// DeletedPlaceholder - текст, которым заменяется содержимое удалённых комментариев.
const DeletedPlaceholder = "[deleted]"

// Comment - внутренняя доменная модель комментария.
// Важно:
//   - ID - UUID, генерируется сервисом до вставки.
//   - ParentID - пустая строка у корня.
//   - Depth - глубина ветки (корень = 1), не больше cfg.Limits.MaxDepth.
//   - SortOrder - десятичный ключ порядка, уникален среди детей одного родителя.
//   - State - состояние жизненного цикла; IsDeleted выводится из него.
//   - LikeCount/DislikeCount - денормализованные счётчики реакций.
type Comment struct {
	ID           string
	Scope        Scope
	ParentID     string
	Depth        int32
	SortOrder    decimal.Decimal
	Content      string
	AuthorID     uuid.UUID
	AuthorName   string
	State        CommentState
	Status       ModerationStatus
	LikeCount    int64
	DislikeCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRoot сообщает, является ли комментарий корнем ветки.
func (c *Comment) IsRoot() bool {
	return c.ParentID == ""
}

// IsDeleted - комментарий мягко удалён (в любом из удалённых состояний).
func (c *Comment) IsDeleted() bool {
	return c.State != StateActive
}

// ListParams - базовые параметры постраничной выдачи.
type ListParams struct {
	PageSize  int32
	PageToken string
}

// Page - результат постраничной выдачи.
type Page struct {
	Items         []Comment
	NextPageToken string
}

// SortKeyUpdate - новый ключ порядка (и исправленная глубина) для одного комментария.
type SortKeyUpdate struct {
	ID        string
	SortOrder decimal.Decimal
	Depth     int32
}
