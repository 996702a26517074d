// Package mongo - реализация storage.Storage поверх MongoDB.
//
// Транзакции требуют replica set. Блокировка выдачи ключей сделана через
// запись в документ родителя (или ветки): параллельная транзакция получает
// write conflict и перезапускается драйвером.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/pribylovaa/commentary/internal/storage"
)

const (
	commentsCollection  = "comments"
	reactionsCollection = "reactions"
	threadsCollection   = "threads"
	defaultDBName       = "commentary"
)

// Storage - тонкий адаптер для подключения и коллекций MongoDB.
type Storage struct {
	client    *mongodriver.Client
	db        *mongodriver.Database
	comments  *mongodriver.Collection
	reactions *mongodriver.Collection
	threads   *mongodriver.Collection
}

var _ storage.Storage = (*Storage)(nil)

// New подключается к MongoDB, проверяет его и обеспечивает индексацию.
func New(ctx context.Context, uri string) (*Storage, error) {
	if uri == "" {
		return nil, errors.New("mongo: empty uri")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(uri))

	s := &Storage{
		client:    cli,
		db:        db,
		comments:  db.Collection(commentsCollection),
		reactions: db.Collection(reactionsCollection),
		threads:   db.Collection(threadsCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

// ensureIndexes создаёт индексы:
//   - уникальный слот ключа: site_id + page_id + parent_id + sort_order;
//   - дети родителя: parent_id + sort_order + _id;
//   - реакции пользователя в ветке: user_id + site_id + page_id.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.comments.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "site_id", Value: 1},
				{Key: "page_id", Value: 1},
				{Key: "parent_id", Value: 1},
				{Key: "sort_order", Value: 1},
			},
			Options: options.Index().SetName("slot_uniq").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "parent_id", Value: 1}, {Key: "sort_order", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("parent_sort"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo ensure comment indexes: %w", err)
	}

	_, err = s.reactions.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "site_id", Value: 1}, {Key: "page_id", Value: 1}},
		Options: options.Index().SetName("user_scope"),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure reaction indexes: %w", err)
	}

	return nil
}

// InTx выполняет fn в транзакции сессии. Транзиентные ошибки (write conflict)
// перезапускаются драйвером целиком.
func (s *Storage) InTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongo start session: %w", err)
	}
	defer sess.EndSession(context.Background())

	opts := options.Transaction().SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongodriver.SessionContext) (any, error) {
		return nil, fn(sc, s)
	}, opts)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) && !errors.Is(err, storage.ErrConflict) {
			return fmt.Errorf("mongo tx: %w", storage.ErrConflict)
		}

		return err
	}

	return nil
}

// Ping проверяет доступность primary.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close закрывает соединение.
func (s *Storage) Close() {
	_ = s.client.Disconnect(context.Background())
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
