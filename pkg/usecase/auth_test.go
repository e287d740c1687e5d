package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/hutarka-ai/hutarka/pkg/repository/memory"
	"github.com/hutarka-ai/hutarka/pkg/service/token"
	"github.com/hutarka-ai/hutarka/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func echoChatClient() *stubChatClient {
	return &stubChatClient{complete: func(ctx context.Context, msgs []model.Message) (string, error) {
		return "ok", nil
	}}
}

func TestAuthInit(t *testing.T) {
	ctx := context.Background()

	newAuth := func(t *testing.T, opts ...token.Option) (*usecase.AuthUseCase, *memory.Memory) {
		t.Helper()
		repo := memory.New()
		mgr, err := token.New("test-secret", time.Hour, opts...)
		gt.NoError(t, err).Required()
		return usecase.NewAuthUseCase(repo, mgr), repo
	}

	t.Run("no credential mints a new identity", func(t *testing.T) {
		auth, repo := newAuth(t)

		cred, id, err := auth.Init(ctx, "")
		gt.NoError(t, err).Required()
		gt.String(t, cred).NotEqual("")
		gt.NoError(t, id.Validate())

		user, err := repo.GetUser(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, user.ID).Equal(id)
	})

	t.Run("valid credential is returned unchanged", func(t *testing.T) {
		auth, _ := newAuth(t)

		cred, id, err := auth.Init(ctx, "")
		gt.NoError(t, err).Required()

		again, sameID, err := auth.Init(ctx, cred)
		gt.NoError(t, err).Required()
		gt.Value(t, again).Equal(cred)
		gt.Value(t, sameID).Equal(id)
	})

	t.Run("expired credential is renewed for the same identity", func(t *testing.T) {
		now := time.Now()
		clock := &now
		auth, _ := newAuth(t, token.WithClock(func() time.Time { return *clock }))

		cred, id, err := auth.Init(ctx, "")
		gt.NoError(t, err).Required()

		later := now.Add(2 * time.Hour)
		clock = &later

		fresh, sameID, err := auth.Init(ctx, cred)
		gt.NoError(t, err).Required()
		gt.Value(t, sameID).Equal(id)
		gt.String(t, fresh).NotEqual(cred)
	})

	t.Run("malformed credential yields a fresh identity", func(t *testing.T) {
		auth, _ := newAuth(t)

		cred, id, err := auth.Init(ctx, "garbage-token")
		gt.NoError(t, err).Required()
		gt.String(t, cred).NotEqual("garbage-token")
		gt.NoError(t, id.Validate())
	})

	t.Run("credential from another secret yields a fresh identity", func(t *testing.T) {
		auth, _ := newAuth(t)

		other, err := token.New("other-secret", time.Hour)
		gt.NoError(t, err).Required()
		foreignID := types.NewUserID()
		foreign, err := other.Issue(foreignID)
		gt.NoError(t, err).Required()

		_, id, err := auth.Init(ctx, foreign)
		gt.NoError(t, err).Required()
		gt.Value(t, id).NotEqual(foreignID)
	})
}

func TestAuthAuthenticate(t *testing.T) {
	ctx := context.Background()

	repo := memory.New()
	now := time.Now()
	clock := &now
	mgr, err := token.New("test-secret", time.Hour, token.WithClock(func() time.Time { return *clock }))
	gt.NoError(t, err).Required()
	auth := usecase.NewAuthUseCase(repo, mgr)

	t.Run("accepts valid credential and records the user", func(t *testing.T) {
		cred, id, err := auth.Init(ctx, "")
		gt.NoError(t, err).Required()

		got, err := auth.Authenticate(ctx, cred)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(id)

		user, err := repo.GetUser(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, user.ID).Equal(id)
	})

	t.Run("rejects missing credential", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrInvalidCredential)).True()
	})

	t.Run("rejects malformed credential", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "garbage")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrInvalidCredential)).True()
	})

	t.Run("rejects expired credential without renewal", func(t *testing.T) {
		cred, _, err := auth.Init(ctx, "")
		gt.NoError(t, err).Required()

		later := now.Add(2 * time.Hour)
		clock = &later
		defer func() { clock = &now }()

		_, err = auth.Authenticate(ctx, cred)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrExpiredCredential)).True()
	})
}

func TestCountUsers(t *testing.T) {
	ctx := context.Background()

	uc := usecase.New(memory.New(), newTokenManager(t), echoChatClient(), nil)

	count, err := uc.Auth.CountUsers(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(int64(0))

	for i := 0; i < 3; i++ {
		_, _, err := uc.Auth.Init(ctx, "")
		gt.NoError(t, err).Required()
	}

	count, err = uc.Auth.CountUsers(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(int64(3))
}
