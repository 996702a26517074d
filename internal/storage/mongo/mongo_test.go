package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/storage"
	"github.com/pribylovaa/commentary/internal/storage/storagetest"
)

// testTimeout - общий дедлайн на операции с БД в тестах.
const testTimeout = 30 * time.Second

// TestMain запускает MongoDB (replica set из одного узла, нужен для транзакций)
// один раз на весь пакет. Адрес прокидывается в DATABASE_URL.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/mongo -v -count=1
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	code, _, err := mongoC.Exec(ctx, []string{
		"mongosh", "--quiet", "--eval",
		"rs.initiate({_id: 'rs0', members: [{_id: 0, host: 'localhost:27017'}]})",
	})
	if err != nil || code != 0 {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to initiate replica set: code=%d err=%v\n", code, err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code = m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewMongo подключается к отдельной тестовой БД и удаляет её по завершении теста.
func mustNewMongo(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	uri := fmt.Sprintf("%s/commentary_test_%s?directConnection=true",
		os.Getenv("DATABASE_URL"), uuid.NewString()[:8])

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	s, err := New(ctx, uri)
	require.NoError(t, err, "cannot connect to MongoDB in container (uri=%s)", uri)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = s.db.Drop(ctx)
		s.Close()
	})

	return s
}

func TestDatabaseFromURI(t *testing.T) {
	t.Parallel()

	require.Equal(t, "comments", databaseFromURI("mongodb://localhost:27017/comments?replicaSet=rs0"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("::bad::"))
}

func TestDocRoundTrip(t *testing.T) {
	t.Parallel()

	c := storagetest.Comment(models.Scope{SiteID: "s", PageID: "p"}, "parent", "12.0301", 3)
	d, err := toDoc(c)
	require.NoError(t, err)

	got, err := d.model()
	require.NoError(t, err)
	require.True(t, c.SortOrder.Equal(got.SortOrder))
	require.Equal(t, c.AuthorID, got.AuthorID)
	require.Equal(t, c.Scope, got.Scope)
	require.Equal(t, c.ParentID, got.ParentID)
}

func TestMongo(t *testing.T) {
	s := mustNewMongo(t)

	t.Run("Contract", func(t *testing.T) {
		storagetest.Run(t, s)
	})

	t.Run("IndexesCreated", func(t *testing.T) {
		cur, err := s.comments.Indexes().List(context.Background())
		require.NoError(t, err)

		var specs []struct {
			Name   string `bson:"name"`
			Unique bool   `bson:"unique"`
		}
		require.NoError(t, cur.All(context.Background(), &specs))

		found := false
		for _, sp := range specs {
			if sp.Name == "slot_uniq" {
				found = sp.Unique
			}
		}
		require.True(t, found, "slot_uniq must be unique")
	})

	t.Run("LockMissingParent", func(t *testing.T) {
		err := s.InTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
			return tx.LockThread(ctx, models.Scope{SiteID: "x", PageID: "y"}, "missing")
		})
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
