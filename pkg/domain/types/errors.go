package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared across layers. Callers distinguish credential
// failure modes with errors.Is instead of inspecting error strings.
var (
	// ErrInvalidCredential means the credential signature did not verify.
	ErrInvalidCredential = goerr.New("invalid credential")

	// ErrExpiredCredential means the signature verified but the credential
	// is past its expiry.
	ErrExpiredCredential = goerr.New("credential expired")

	// ErrEmptyMessage means the inbound chat message was absent or blank.
	ErrEmptyMessage = goerr.New("message is required")
)
