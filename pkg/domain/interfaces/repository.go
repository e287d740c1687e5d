package interfaces

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
)

// Repository defines the interface for durable data persistence
type Repository interface {
	// PutUser records the user if not already present. Inserting an
	// existing ID is a no-op and keeps the original CreatedAt.
	PutUser(ctx context.Context, user *model.User) error

	// GetUser retrieves a user by ID. Returns a not-found error from the
	// backend package when the user does not exist.
	GetUser(ctx context.Context, id types.UserID) (*model.User, error)

	// CountUsers returns the total number of recorded users
	CountUsers(ctx context.Context) (int64, error)

	// PutProduct creates or replaces a catalog product
	PutProduct(ctx context.Context, product *model.Product) error

	// FindProductsByEmbedding performs vector similarity search using
	// cosine distance. Returns up to limit products closest to the
	// given embedding.
	FindProductsByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.Product, error)

	// Close releases backend resources
	Close() error
}
