package handlers

import (
	"time"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/service"
	"github.com/pribylovaa/commentary/internal/tree"
)

// Запросы.

type CreateCommentRequest struct {
	ParentID string `json:"parent_id,omitempty"`
	Content  string `json:"content"`
	// AuthorName - имя для отображения, если апстрим не передал X-User-Name.
	AuthorName string `json:"author_name,omitempty"`
}

type EditCommentRequest struct {
	Content string `json:"content"`
}

type ReactRequest struct {
	Type models.ReactionType `json:"type"`
}

type SetStatusRequest struct {
	Status models.ModerationStatus `json:"status"`
}

// Ответы.

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Comment struct {
	ID           string    `json:"id"`
	SiteID       string    `json:"site_id"`
	PageID       string    `json:"page_id"`
	ParentID     string    `json:"parent_id,omitempty"`
	Depth        int32     `json:"depth"`
	SortOrder    string    `json:"sort_order"`
	Content      string    `json:"content"`
	Author       *Author   `json:"author"`
	Deleted      bool      `json:"deleted"`
	Status       string    `json:"status"`
	LikeCount    int64     `json:"like_count"`
	DislikeCount int64     `json:"dislike_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Node struct {
	Comment  Comment `json:"comment"`
	Children []Node  `json:"children"`
}

type ThreadPage struct {
	Items         []Node `json:"items"`
	NextPageToken string `json:"next_page_token,omitempty"`
	Total         int    `json:"total"`
}

type FlatItem struct {
	Comment
	ChildCount int `json:"child_count"`
}

type FlatList struct {
	Items []FlatItem `json:"items"`
}

type Replies struct {
	Items []Comment `json:"items"`
}

type DeleteResponse struct {
	Comment  Comment `json:"comment"`
	Cascaded int     `json:"cascaded"`
}

type ReactResponse struct {
	Comment Comment `json:"comment"`
	Action  string  `json:"action"`
	Current *string `json:"current"`
}

type UserReactionsResponse struct {
	Reactions map[string]models.ReactionType `json:"reactions"`
}

type ReorderResponse struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Orphans int `json:"orphans"`
}

// Конвертеры.

func commentFromView(v models.CommentView) Comment {
	out := Comment{
		ID:           v.ID,
		SiteID:       v.Scope.SiteID,
		PageID:       v.Scope.PageID,
		ParentID:     v.ParentID,
		Depth:        v.Depth,
		SortOrder:    v.SortOrder,
		Content:      v.Content,
		Deleted:      v.Deleted,
		Status:       string(v.Status),
		LikeCount:    v.LikeCount,
		DislikeCount: v.DislikeCount,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}

	if v.Author != nil {
		out.Author = &Author{ID: v.Author.ID.String(), Name: v.Author.Name}
	}

	return out
}

func nodesFromModel(nodes []models.CommentNode) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Node{Comment: commentFromView(n.Comment), Children: nodesFromModel(n.Children)})
	}
	return out
}

func threadFromModel(p *models.ThreadPage) ThreadPage {
	return ThreadPage{
		Items:         nodesFromModel(p.Nodes),
		NextPageToken: p.NextPageToken,
		Total:         p.Total,
	}
}

func flatFromModel(items []models.CommentSummary) FlatList {
	out := FlatList{Items: make([]FlatItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, FlatItem{Comment: commentFromView(it.CommentView), ChildCount: it.ChildCount})
	}
	return out
}

func repliesFromModel(items []models.CommentView) Replies {
	out := Replies{Items: make([]Comment, 0, len(items))}
	for _, v := range items {
		out.Items = append(out.Items, commentFromView(v))
	}
	return out
}

func commentFromModel(c models.Comment) Comment {
	return commentFromView(tree.View(c))
}

func deleteFromModel(res *service.DeleteResult) DeleteResponse {
	return DeleteResponse{Comment: commentFromModel(res.Comment), Cascaded: res.Cascaded}
}

func reactFromModel(res *service.ReactResult) ReactResponse {
	out := ReactResponse{Comment: commentFromModel(res.Comment), Action: string(res.Action)}
	if res.Current != nil {
		cur := string(*res.Current)
		out.Current = &cur
	}
	return out
}
