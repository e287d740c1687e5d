package history

import (
	"context"
	"sync"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
)

// MemoryStore keeps conversation history in process memory. History is
// lost on restart; that matches the volatile contract of conversation
// memory.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	entries map[types.UserID][]model.Message
}

var _ interfaces.HistoryStore = &MemoryStore{}

func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		entries: make(map[types.UserID][]model.Message),
	}
}

func (x *MemoryStore) Get(ctx context.Context, id types.UserID) ([]model.Message, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	msgs := x.entries[id]
	copied := make([]model.Message, len(msgs))
	copy(copied, msgs)
	return copied, nil
}

func (x *MemoryStore) Append(ctx context.Context, id types.UserID, msgs ...model.Message) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	updated := append(x.entries[id], msgs...)
	x.entries[id] = model.TruncateMessages(updated, x.limit)
	return nil
}

func (x *MemoryStore) Clear(ctx context.Context, id types.UserID) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	delete(x.entries, id)
	return nil
}
