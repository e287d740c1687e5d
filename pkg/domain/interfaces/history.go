package interfaces

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
)

// HistoryStore keeps the bounded per-user conversation memory used to
// build model prompts. Entries beyond the store's limit are evicted
// oldest-first on append. Concurrent appends for the same user are
// last-writer-wins; the store only guarantees the limit invariant.
type HistoryStore interface {
	// Get returns the conversation entries for a user, oldest first
	Get(ctx context.Context, id types.UserID) ([]model.Message, error)

	// Append adds entries and truncates to the most recent limit
	Append(ctx context.Context, id types.UserID, msgs ...model.Message) error

	// Clear removes all entries for a user
	Clear(ctx context.Context, id types.UserID) error
}
