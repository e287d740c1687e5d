package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID is an opaque identifier of an anonymous end user.
// It is minted on first contact and never changes afterwards.
type UserID string

// NewUserID generates a new random UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// String returns the string representation of the UserID
func (x UserID) String() string {
	return string(x)
}

// Validate checks if the UserID is valid
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID is empty")
	}
	return nil
}
