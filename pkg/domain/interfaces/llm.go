package interfaces

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
)

// ChatClient generates a reply for an ordered list of conversation turns.
// Implementations talk to a hosted language model; the caller bounds the
// call with a context deadline.
type ChatClient interface {
	Complete(ctx context.Context, msgs []model.Message) (string, error)
}
