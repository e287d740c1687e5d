package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/hutarka-ai/hutarka/pkg/service/token"
	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AuthUseCase manages session bootstrap and credential verification
type AuthUseCase struct {
	repo   interfaces.Repository
	tokens *token.Manager
}

func NewAuthUseCase(repo interfaces.Repository, tokens *token.Manager) *AuthUseCase {
	return &AuthUseCase{
		repo:   repo,
		tokens: tokens,
	}
}

// Init bootstraps a session from an optional presented credential:
// a valid credential is returned unchanged; an authentic but expired one
// is reissued for the same identity; anything unverifiable is ignored and
// a brand-new identity is minted. Unverifiable credentials never block
// onboarding, so Init only fails on storage or signing errors.
func (uc *AuthUseCase) Init(ctx context.Context, raw string) (string, types.UserID, error) {
	if raw != "" {
		id, err := uc.tokens.Verify(raw, false)
		if err == nil {
			return raw, id, nil
		}

		if errors.Is(err, types.ErrExpiredCredential) {
			if id, err := uc.tokens.Verify(raw, true); err == nil {
				fresh, err := uc.tokens.Issue(id)
				if err != nil {
					return "", "", goerr.Wrap(err, "failed to reissue credential", goerr.V("id", id))
				}
				logging.From(ctx).Info("renewed expired credential", "user_id", id)
				return fresh, id, nil
			}
		}

		logging.From(ctx).Warn("ignoring unverifiable credential", "error", err.Error())
	}

	user := model.NewUser()
	if err := uc.repo.PutUser(ctx, user); err != nil {
		return "", "", goerr.Wrap(err, "failed to persist new user")
	}

	cred, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to issue credential", goerr.V("id", user.ID))
	}

	logging.From(ctx).Info("minted new user", "user_id", user.ID)
	return cred, user.ID, nil
}

// Authenticate verifies a credential on the message-exchange path. Unlike
// Init it is strict: any verification failure is terminal, so a broken
// credential can never escalate into a fresh anonymous identity
// mid-conversation. The identity is recorded idempotently so every
// authenticated request maps to a durable user record.
func (uc *AuthUseCase) Authenticate(ctx context.Context, raw string) (types.UserID, error) {
	if raw == "" {
		return "", goerr.Wrap(types.ErrInvalidCredential, "no credential presented")
	}

	id, err := uc.tokens.Verify(raw, false)
	if err != nil {
		return "", err
	}

	user := &model.User{ID: id, CreatedAt: time.Now().UTC()}
	if err := uc.repo.PutUser(ctx, user); err != nil {
		return "", goerr.Wrap(err, "failed to ensure user record", goerr.V("id", id))
	}

	return id, nil
}

// CountUsers returns the total number of recorded users
func (uc *AuthUseCase) CountUsers(ctx context.Context) (int64, error) {
	count, err := uc.repo.CountUsers(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count users")
	}
	return count, nil
}
