package types

import "github.com/m-mizutani/goerr/v2"

// Role is the author of a conversation entry
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the Role
func (x Role) String() string {
	return string(x)
}

// Validate checks if the Role is one of the known values
func (x Role) Validate() error {
	switch x {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	default:
		return goerr.New("invalid role", goerr.V("role", string(x)))
	}
}
