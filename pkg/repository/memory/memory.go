package memory

import (
	"sync"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
)

// Memory is an in-memory Repository for development and tests
type Memory struct {
	mu       sync.RWMutex
	users    map[types.UserID]*model.User
	products map[string]*model.Product
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		users:    make(map[types.UserID]*model.User),
		products: make(map[string]*model.Product),
	}
}

func (x *Memory) Close() error {
	return nil
}
