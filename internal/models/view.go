package models

import (
	"time"

	"github.com/google/uuid"
)

// Author - публичные данные автора. У удалённых комментариев отсутствует.
type Author struct {
	ID   uuid.UUID
	Name string
}

// CommentView - представление комментария для контроллеров.
// Внутренние детали удаления (State, исходный текст) наружу не выходят:
// у удалённых узлов Content = DeletedPlaceholder, Author = nil.
type CommentView struct {
	ID           string
	Scope        Scope
	ParentID     string
	Depth        int32
	SortOrder    string
	Content      string
	Author       *Author
	Deleted      bool
	Status       ModerationStatus
	LikeCount    int64
	DislikeCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CommentNode - узел дерева: комментарий и его упорядоченные дети.
type CommentNode struct {
	Comment  CommentView
	Children []CommentNode
}

// CommentSummary - элемент плоского списка в порядке отображения.
type CommentSummary struct {
	CommentView
	ChildCount int
}

// ThreadPage - страница корней ветки с полностью собранными поддеревьями.
type ThreadPage struct {
	Nodes         []CommentNode
	NextPageToken string
	Total         int
}
