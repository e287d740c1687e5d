package model

import (
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// User is a durable record of an anonymous end user. Records are
// append-only: a user is created on first contact and never deleted.
type User struct {
	ID        types.UserID `firestore:"ID" json:"id"`
	CreatedAt time.Time    `firestore:"CreatedAt" json:"created_at"`
}

// NewUser creates a User with a freshly minted identity
func NewUser() *User {
	return &User{
		ID:        types.NewUserID(),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks if the User is valid
func (x *User) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	return nil
}
