package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
)

// Firestore is a Repository backed by Google Cloud Firestore
type Firestore struct {
	client *firestore.Client
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	return &Firestore{client: client}, nil
}

func (x *Firestore) Close() error {
	if x.client != nil {
		return x.client.Close()
	}
	return nil
}
