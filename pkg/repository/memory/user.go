package memory

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func copyUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func (x *Memory) PutUser(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	// Idempotent insert: first contact wins
	if _, exists := x.users[user.ID]; exists {
		return nil
	}

	x.users[user.ID] = copyUser(user)
	return nil
}

func (x *Memory) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	user, ok := x.users[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}

	return copyUser(user), nil
}

func (x *Memory) CountUsers(ctx context.Context) (int64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return int64(len(x.users)), nil
}
