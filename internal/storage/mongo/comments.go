package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
)

// commentDoc - документ коллекции comments. sort_order хранится как Decimal128:
// сравнение и уникальность числовые.
type commentDoc struct {
	ID           string               `bson:"_id"`
	SiteID       string               `bson:"site_id"`
	PageID       string               `bson:"page_id"`
	ParentID     string               `bson:"parent_id"`
	Depth        int32                `bson:"depth"`
	SortOrder    primitive.Decimal128 `bson:"sort_order"`
	Content      string               `bson:"content"`
	AuthorID     string               `bson:"author_id"`
	AuthorName   string               `bson:"author_name"`
	State        string               `bson:"state"`
	Status       string               `bson:"status"`
	LikeCount    int64                `bson:"like_count"`
	DislikeCount int64                `bson:"dislike_count"`
	LockSeq      int64                `bson:"lock_seq,omitempty"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

func toDoc(c models.Comment) (commentDoc, error) {
	key, err := toDecimal128(c.SortOrder)
	if err != nil {
		return commentDoc{}, err
	}

	return commentDoc{
		ID:           c.ID,
		SiteID:       c.Scope.SiteID,
		PageID:       c.Scope.PageID,
		ParentID:     c.ParentID,
		Depth:        c.Depth,
		SortOrder:    key,
		Content:      c.Content,
		AuthorID:     c.AuthorID.String(),
		AuthorName:   c.AuthorName,
		State:        string(c.State),
		Status:       string(c.Status),
		LikeCount:    c.LikeCount,
		DislikeCount: c.DislikeCount,
		CreatedAt:    toMS(c.CreatedAt),
		UpdatedAt:    toMS(c.UpdatedAt),
	}, nil
}

func (d commentDoc) model() (models.Comment, error) {
	key, err := fromDecimal128(d.SortOrder)
	if err != nil {
		return models.Comment{}, fmt.Errorf("bad sort_order: %w", err)
	}

	author, err := uuid.Parse(d.AuthorID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("bad author_id: %w", err)
	}

	return models.Comment{
		ID:           d.ID,
		Scope:        models.Scope{SiteID: d.SiteID, PageID: d.PageID},
		ParentID:     d.ParentID,
		Depth:        d.Depth,
		SortOrder:    key,
		Content:      d.Content,
		AuthorID:     author,
		AuthorName:   d.AuthorName,
		State:        models.CommentState(d.State),
		Status:       models.ModerationStatus(d.Status),
		LikeCount:    d.LikeCount,
		DislikeCount: d.DislikeCount,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}, nil
}

var byKey = bson.D{{Key: "sort_order", Value: 1}, {Key: "_id", Value: 1}}

func (s *Storage) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]models.Comment, error) {
	cur, err := s.comments.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Comment, 0)
	for cur.Next(ctx) {
		var d commentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}

		c, err := d.model()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, cur.Err()
}

// CommentByID возвращает комментарий по идентификатору.
func (s *Storage) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	var d commentDoc
	if err := s.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := d.model()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// ListByScope возвращает всю ветку одним запросом.
func (s *Storage) ListByScope(ctx context.Context, scope models.Scope) ([]models.Comment, error) {
	const op = "storage/mongo/ListByScope"

	out, err := s.find(ctx,
		bson.D{{Key: "site_id", Value: scope.SiteID}, {Key: "page_id", Value: scope.PageID}},
		options.Find().SetSort(byKey),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListRoots - keyset-пагинация корней по (sort_order, _id).
func (s *Storage) ListRoots(ctx context.Context, scope models.Scope, p models.ListParams) (*models.Page, error) {
	const op = "storage/mongo/ListRoots"

	limit := int64(p.PageSize)
	if limit <= 0 {
		limit = 1
	}

	filter := bson.D{
		{Key: "site_id", Value: scope.SiteID},
		{Key: "page_id", Value: scope.PageID},
		{Key: "parent_id", Value: ""},
	}

	if p.PageToken != "" {
		key, id, err := storage.DecodeCursor(p.PageToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		k, err := toDecimal128(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "sort_order", Value: bson.D{{Key: "$gt", Value: k}}}},
			bson.D{{Key: "sort_order", Value: k}, {Key: "_id", Value: bson.D{{Key: "$gt", Value: id}}}},
		}})
	}

	items, err := s.find(ctx, filter, options.Find().SetSort(byKey).SetLimit(limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page := &models.Page{Items: items}
	if int64(len(items)) > limit {
		page.Items = items[:limit]
		last := page.Items[len(page.Items)-1]
		page.NextPageToken = storage.EncodeCursor(last.SortOrder, last.ID)
	}

	return page, nil
}

// ListChildren возвращает прямых детей комментария.
func (s *Storage) ListChildren(ctx context.Context, parentID string) ([]models.Comment, error) {
	const op = "storage/mongo/ListChildren"

	if parentID == "" {
		return []models.Comment{}, nil
	}

	out, err := s.find(ctx, bson.D{{Key: "parent_id", Value: parentID}}, options.Find().SetSort(byKey))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CountLiveChildren считает детей не в состоянии deleted_leaf.
func (s *Storage) CountLiveChildren(ctx context.Context, parentID, excludeID string) (int, error) {
	const op = "storage/mongo/CountLiveChildren"

	n, err := s.comments.CountDocuments(ctx, bson.D{
		{Key: "parent_id", Value: parentID},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID}}},
		{Key: "state", Value: bson.D{{Key: "$ne", Value: string(models.StateDeletedLeaf)}}},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}

// MaxSortOrder возвращает наибольший ключ среди корней scope или детей parentID.
func (s *Storage) MaxSortOrder(ctx context.Context, scope models.Scope, parentID string) (decimal.Decimal, bool, error) {
	const op = "storage/mongo/MaxSortOrder"

	var d struct {
		SortOrder primitive.Decimal128 `bson:"sort_order"`
	}

	err := s.comments.FindOne(ctx,
		bson.D{
			{Key: "site_id", Value: scope.SiteID},
			{Key: "page_id", Value: scope.PageID},
			{Key: "parent_id", Value: parentID},
		},
		options.FindOne().
			SetSort(bson.D{{Key: "sort_order", Value: -1}}).
			SetProjection(bson.D{{Key: "sort_order", Value: 1}}),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return decimal.Decimal{}, false, nil
		}

		return decimal.Decimal{}, false, fmt.Errorf("%s: %w", op, err)
	}

	key, err := fromDecimal128(d.SortOrder)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return key, true, nil
}

// LockThread инкрементирует lock_seq у родителя или у документа ветки в threads.
// Конкурирующая транзакция, сделавшая то же самое, получает write conflict.
func (s *Storage) LockThread(ctx context.Context, scope models.Scope, parentID string) error {
	const op = "storage/mongo/LockThread"

	bump := bson.D{{Key: "$inc", Value: bson.D{{Key: "lock_seq", Value: 1}}}}

	if parentID == "" {
		_, err := s.threads.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: scope.Key()}},
			bump,
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	}

	if err := s.LockComment(ctx, parentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LockComment инкрементирует lock_seq у комментария: две транзакции, тронувшие
// один документ, получают write conflict, и WithTransaction повторяет проигравшую.
func (s *Storage) LockComment(ctx context.Context, id string) error {
	const op = "storage/mongo/LockComment"

	res, err := s.comments.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "lock_seq", Value: 1}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// InsertComment сохраняет новый комментарий.
func (s *Storage) InsertComment(ctx context.Context, c models.Comment) error {
	const op = "storage/mongo/InsertComment"

	d, err := toDoc(c)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.comments.InsertOne(ctx, d); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateComment перезаписывает content, state, status и updated_at.
func (s *Storage) UpdateComment(ctx context.Context, c models.Comment) error {
	const op = "storage/mongo/UpdateComment"

	res, err := s.comments.UpdateByID(ctx, c.ID, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "content", Value: c.Content},
			{Key: "state", Value: string(c.State)},
			{Key: "status", Value: string(c.Status)},
			{Key: "updated_at", Value: toMS(c.UpdatedAt)},
		}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateCounters сдвигает счётчики реакций через $inc.
func (s *Storage) UpdateCounters(ctx context.Context, id string, likeDelta, dislikeDelta int64) error {
	const op = "storage/mongo/UpdateCounters"

	res, err := s.comments.UpdateByID(ctx, id, bson.D{
		{Key: "$inc", Value: bson.D{
			{Key: "like_count", Value: likeDelta},
			{Key: "dislike_count", Value: dislikeDelta},
		}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateSortKeys переписывает ключи в две фазы: сначала временные отрицательные
// дробные ключи -0.1, -0.3, ... (реальные ключи положительны, а временные ключи
// ReorderAll - целые отрицательные), затем итоговые. Так перестановка
// внутри одного родителя не упирается в уникальный индекс. Вызывать внутри InTx.
func (s *Storage) UpdateSortKeys(ctx context.Context, scope models.Scope, updates []models.SortKeyUpdate) error {
	const op = "storage/mongo/UpdateSortKeys"

	if len(updates) == 0 {
		return nil
	}

	scoped := func(id string) bson.D {
		return bson.D{
			{Key: "_id", Value: id},
			{Key: "site_id", Value: scope.SiteID},
			{Key: "page_id", Value: scope.PageID},
		}
	}

	tmp := make([]mongodriver.WriteModel, 0, len(updates))
	final := make([]mongodriver.WriteModel, 0, len(updates))

	for i, u := range updates {
		t, err := toDecimal128(decimal.New(-int64(2*i+1), -1))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		k, err := toDecimal128(u.SortOrder)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		tmp = append(tmp, mongodriver.NewUpdateOneModel().
			SetFilter(scoped(u.ID)).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: "sort_order", Value: t}}}}))

		final = append(final, mongodriver.NewUpdateOneModel().
			SetFilter(scoped(u.ID)).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{
				{Key: "sort_order", Value: k},
				{Key: "depth", Value: u.Depth},
			}}}))
	}

	for phase, batch := range [][]mongodriver.WriteModel{tmp, final} {
		res, err := s.comments.BulkWrite(ctx, batch, options.BulkWrite().SetOrdered(true))
		if err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				return fmt.Errorf("%s: %w", op, storage.ErrConflict)
			}

			return fmt.Errorf("%s: phase %d: %w", op, phase, err)
		}

		if res.MatchedCount != int64(len(updates)) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
	}

	return nil
}
