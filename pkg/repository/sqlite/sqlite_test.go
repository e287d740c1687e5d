package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/hutarka-ai/hutarka/pkg/repository/sqlite"
	"github.com/m-mizutani/gt"
)

func newRepo(t *testing.T) *sqlite.SQLite {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})

	return repo
}

func TestSQLiteUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("put and get round trip", func(t *testing.T) {
		repo := newRepo(t)
		user := model.NewUser()

		gt.NoError(t, repo.PutUser(ctx, user)).Required()

		got, err := repo.GetUser(ctx, user.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(user.ID)
		gt.Bool(t, got.CreatedAt.Equal(user.CreatedAt)).True()
	})

	t.Run("put is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		user := model.NewUser()

		gt.NoError(t, repo.PutUser(ctx, user)).Required()
		gt.NoError(t, repo.PutUser(ctx, user)).Required()

		count, err := repo.CountUsers(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(int64(1))
	})

	t.Run("get returns ErrNotFound for unknown user", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetUser(ctx, types.NewUserID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, sqlite.ErrNotFound)).True()
	})

	t.Run("count reflects distinct users", func(t *testing.T) {
		repo := newRepo(t)

		for i := 0; i < 3; i++ {
			gt.NoError(t, repo.PutUser(ctx, model.NewUser())).Required()
		}

		count, err := repo.CountUsers(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(int64(3))
	})
}

func TestSQLiteProducts(t *testing.T) {
	ctx := context.Background()

	put := func(t *testing.T, repo *sqlite.SQLite, id string, embedding []float32) {
		t.Helper()
		gt.NoError(t, repo.PutProduct(ctx, &model.Product{
			ID:        id,
			Name:      "product " + id,
			Embedding: embedding,
		})).Required()
	}

	t.Run("ranks by cosine similarity", func(t *testing.T) {
		repo := newRepo(t)
		put(t, repo, "far", []float32{0, 1, 0})
		put(t, repo, "exact", []float32{1, 0, 0})

		products, err := repo.FindProductsByEmbedding(ctx, []float32{1, 0, 0}, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, products).Length(1)
		gt.Value(t, products[0].ID).Equal("exact")
	})

	t.Run("upsert replaces existing product", func(t *testing.T) {
		repo := newRepo(t)
		put(t, repo, "p", []float32{1, 0})

		gt.NoError(t, repo.PutProduct(ctx, &model.Product{
			ID:        "p",
			Name:      "renamed",
			Embedding: []float32{1, 0},
		})).Required()

		products, err := repo.FindProductsByEmbedding(ctx, []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, products).Length(1)
		gt.Value(t, products[0].Name).Equal("renamed")
	})
}
