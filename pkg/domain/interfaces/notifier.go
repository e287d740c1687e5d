package interfaces

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
)

// Notifier delivers a fully populated order record to an external channel
type Notifier interface {
	NotifyOrder(ctx context.Context, order model.Order) error
}
