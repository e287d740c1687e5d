package firestore

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (x *Firestore) PutUser(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user")
	}

	docRef := x.client.Collection(usersCollection).Doc(user.ID.String())
	if _, err := docRef.Create(ctx, user); err != nil {
		// Duplicate insert is a no-op: first contact wins
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return goerr.Wrap(err, "failed to put user to firestore", goerr.V("id", user.ID))
	}

	return nil
}

func (x *Firestore) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	doc, err := x.client.Collection(usersCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user from firestore", goerr.V("id", id))
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user")
	}

	return &user, nil
}

func (x *Firestore) CountUsers(ctx context.Context) (int64, error) {
	iter := x.client.Collection(usersCollection).Select().Documents(ctx)
	defer iter.Stop()

	var count int64
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate users")
		}
		count++
	}

	return count, nil
}
