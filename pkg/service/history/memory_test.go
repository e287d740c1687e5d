package history_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/hutarka-ai/hutarka/pkg/service/history"
	"github.com/m-mizutani/gt"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history for unknown user", func(t *testing.T) {
		store := history.NewMemoryStore(10)

		msgs, err := store.Get(ctx, types.NewUserID())
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(0)
	})

	t.Run("append and get preserve order", func(t *testing.T) {
		store := history.NewMemoryStore(10)
		id := types.NewUserID()

		gt.NoError(t, store.Append(ctx, id,
			model.NewUserMessage("привет"),
			model.NewAssistantMessage("здравствуйте"),
		)).Required()

		msgs, err := store.Get(ctx, id)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(2)
		gt.Value(t, msgs[0].Role).Equal(types.RoleUser)
		gt.Value(t, msgs[0].Content).Equal("привет")
		gt.Value(t, msgs[1].Role).Equal(types.RoleAssistant)
		gt.Value(t, msgs[1].Content).Equal("здравствуйте")
	})

	t.Run("cap keeps only most recent messages", func(t *testing.T) {
		store := history.NewMemoryStore(4)
		id := types.NewUserID()

		for i := 0; i < 6; i++ {
			gt.NoError(t, store.Append(ctx, id,
				model.NewUserMessage(fmt.Sprintf("q%d", i)),
				model.NewAssistantMessage(fmt.Sprintf("a%d", i)),
			)).Required()
		}

		msgs, err := store.Get(ctx, id)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(4)
		gt.Value(t, msgs[0].Content).Equal("q4")
		gt.Value(t, msgs[3].Content).Equal("a5")
	})

	t.Run("users are isolated", func(t *testing.T) {
		store := history.NewMemoryStore(10)
		id1 := types.NewUserID()
		id2 := types.NewUserID()

		gt.NoError(t, store.Append(ctx, id1, model.NewUserMessage("от первого"))).Required()

		msgs, err := store.Get(ctx, id2)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(0)
	})

	t.Run("clear removes history", func(t *testing.T) {
		store := history.NewMemoryStore(10)
		id := types.NewUserID()

		gt.NoError(t, store.Append(ctx, id, model.NewUserMessage("привет"))).Required()
		gt.NoError(t, store.Clear(ctx, id)).Required()

		msgs, err := store.Get(ctx, id)
		gt.NoError(t, err).Required()
		gt.Array(t, msgs).Length(0)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		store := history.NewMemoryStore(10)
		id := types.NewUserID()

		gt.NoError(t, store.Append(ctx, id, model.NewUserMessage("оригинал"))).Required()

		msgs, err := store.Get(ctx, id)
		gt.NoError(t, err).Required()
		msgs[0].Content = "изменено"

		again, err := store.Get(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, again[0].Content).Equal("оригинал")
	})
}
