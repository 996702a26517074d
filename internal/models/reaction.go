package models

import (
	"time"

	"github.com/google/uuid"
)

// ReactionType - лайк или дизлайк.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid сообщает, является ли значение известным типом реакции.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Opposite возвращает противоположный тип реакции.
func (t ReactionType) Opposite() ReactionType {
	if t == ReactionLike {
		return ReactionDislike
	}

	return ReactionLike
}

// Reaction - активная реакция пользователя на комментарий.
// Составной ключ: (CommentID, UserID); у пары не больше одной реакции.
type Reaction struct {
	CommentID string
	UserID    uuid.UUID
	Type      ReactionType
	CreatedAt time.Time
}

// ReactionAction - что произошло с реакцией в результате переключения.
type ReactionAction string

const (
	ReactionAdded   ReactionAction = "added"
	ReactionRemoved ReactionAction = "removed"
	ReactionFlipped ReactionAction = "flipped"
)
