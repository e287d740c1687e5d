package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/hutarka-ai/hutarka/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("put and get round trip", func(t *testing.T) {
		repo := memory.New()
		user := model.NewUser()

		gt.NoError(t, repo.PutUser(ctx, user)).Required()

		got, err := repo.GetUser(ctx, user.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(user.ID)
		gt.Bool(t, got.CreatedAt.IsZero()).False()
	})

	t.Run("put is idempotent and first record wins", func(t *testing.T) {
		repo := memory.New()
		user := model.NewUser()

		gt.NoError(t, repo.PutUser(ctx, user)).Required()

		later := &model.User{ID: user.ID, CreatedAt: user.CreatedAt.Add(time.Hour)}
		gt.NoError(t, repo.PutUser(ctx, later)).Required()

		got, err := repo.GetUser(ctx, user.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.CreatedAt).Equal(user.CreatedAt)

		count, err := repo.CountUsers(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(int64(1))
	})

	t.Run("get returns ErrNotFound for unknown user", func(t *testing.T) {
		repo := memory.New()

		_, err := repo.GetUser(ctx, types.NewUserID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
	})

	t.Run("count increments per distinct user", func(t *testing.T) {
		repo := memory.New()

		for i := 0; i < 3; i++ {
			gt.NoError(t, repo.PutUser(ctx, model.NewUser())).Required()
		}

		count, err := repo.CountUsers(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(int64(3))
	})

	t.Run("rejects user without ID", func(t *testing.T) {
		repo := memory.New()

		err := repo.PutUser(ctx, &model.User{})
		gt.Error(t, err)
	})
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()

	put := func(t *testing.T, repo *memory.Memory, id string, embedding []float32) {
		t.Helper()
		gt.NoError(t, repo.PutProduct(ctx, &model.Product{
			ID:        id,
			Name:      "product " + id,
			Embedding: embedding,
		})).Required()
	}

	t.Run("ranks by cosine similarity", func(t *testing.T) {
		repo := memory.New()
		put(t, repo, "far", []float32{0, 1, 0})
		put(t, repo, "near", []float32{1, 0.1, 0})
		put(t, repo, "exact", []float32{1, 0, 0})

		products, err := repo.FindProductsByEmbedding(ctx, []float32{1, 0, 0}, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, products).Length(2)
		gt.Value(t, products[0].ID).Equal("exact")
		gt.Value(t, products[1].ID).Equal("near")
	})

	t.Run("limit above catalog size returns all", func(t *testing.T) {
		repo := memory.New()
		put(t, repo, "a", []float32{1, 0})
		put(t, repo, "b", []float32{0, 1})

		products, err := repo.FindProductsByEmbedding(ctx, []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, products).Length(2)
	})

	t.Run("products without embedding are skipped", func(t *testing.T) {
		repo := memory.New()
		put(t, repo, "with", []float32{1, 0})
		gt.NoError(t, repo.PutProduct(ctx, &model.Product{ID: "without", Name: "no vector"})).Required()

		products, err := repo.FindProductsByEmbedding(ctx, []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, products).Length(1)
		gt.Value(t, products[0].ID).Equal("with")
	})

	t.Run("put replaces existing product", func(t *testing.T) {
		repo := memory.New()
		put(t, repo, "p", []float32{1, 0})
		gt.NoError(t, repo.PutProduct(ctx, &model.Product{
			ID:        "p",
			Name:      "renamed",
			Embedding: []float32{1, 0},
		})).Required()

		products, err := repo.FindProductsByEmbedding(ctx, []float32{1, 0}, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, products).Length(1)
		gt.Value(t, products[0].Name).Equal("renamed")
	})
}
