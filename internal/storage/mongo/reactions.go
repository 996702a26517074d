package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
)

// reactionDoc - документ коллекции reactions. Scope продублирован из комментария
// для выборки реакций пользователя по ветке.
type reactionDoc struct {
	ID        string    `bson:"_id"`
	CommentID string    `bson:"comment_id"`
	UserID    string    `bson:"user_id"`
	SiteID    string    `bson:"site_id"`
	PageID    string    `bson:"page_id"`
	Type      string    `bson:"type"`
	CreatedAt time.Time `bson:"created_at"`
}

func reactionID(commentID string, userID uuid.UUID) string {
	return commentID + "|" + userID.String()
}

func (d reactionDoc) model() (models.Reaction, error) {
	user, err := uuid.Parse(d.UserID)
	if err != nil {
		return models.Reaction{}, fmt.Errorf("bad user_id: %w", err)
	}

	return models.Reaction{
		CommentID: d.CommentID,
		UserID:    user,
		Type:      models.ReactionType(d.Type),
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

// ReactionByCommentAndUser возвращает реакцию пары (comment, user).
func (s *Storage) ReactionByCommentAndUser(ctx context.Context, commentID string, userID uuid.UUID) (*models.Reaction, error) {
	const op = "storage/mongo/ReactionByCommentAndUser"

	var d reactionDoc
	if err := s.reactions.FindOne(ctx, bson.D{{Key: "_id", Value: reactionID(commentID, userID)}}).Decode(&d); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r, err := d.model()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &r, nil
}

// SaveReaction - upsert по паре (comment, user). Комментарий должен существовать.
func (s *Storage) SaveReaction(ctx context.Context, r models.Reaction) error {
	const op = "storage/mongo/SaveReaction"

	var scope struct {
		SiteID string `bson:"site_id"`
		PageID string `bson:"page_id"`
	}

	err := s.comments.FindOne(ctx,
		bson.D{{Key: "_id", Value: r.CommentID}},
		options.FindOne().SetProjection(bson.D{{Key: "site_id", Value: 1}, {Key: "page_id", Value: 1}}),
	).Decode(&scope)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	id := reactionID(r.CommentID, r.UserID)
	doc := reactionDoc{
		ID:        id,
		CommentID: r.CommentID,
		UserID:    r.UserID.String(),
		SiteID:    scope.SiteID,
		PageID:    scope.PageID,
		Type:      string(r.Type),
		CreatedAt: toMS(r.CreatedAt),
	}

	if _, err := s.reactions.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteReaction удаляет реакцию пары.
func (s *Storage) DeleteReaction(ctx context.Context, commentID string, userID uuid.UUID) error {
	const op = "storage/mongo/DeleteReaction"

	res, err := s.reactions.DeleteOne(ctx, bson.D{{Key: "_id", Value: reactionID(commentID, userID)}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ReactionsByUser возвращает реакции пользователя на комментарии ветки.
func (s *Storage) ReactionsByUser(ctx context.Context, scope models.Scope, userID uuid.UUID) ([]models.Reaction, error) {
	const op = "storage/mongo/ReactionsByUser"

	cur, err := s.reactions.Find(ctx,
		bson.D{
			{Key: "user_id", Value: userID.String()},
			{Key: "site_id", Value: scope.SiteID},
			{Key: "page_id", Value: scope.PageID},
		},
		options.Find().SetSort(bson.D{{Key: "comment_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Reaction, 0)
	for cur.Next(ctx) {
		var d reactionDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		r, err := d.model()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, r)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
