package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// productDoc is the Firestore document layout for products.
// Embedding is stored as firestore.Vector32 so that FindNearest vector
// search works.
type productDoc struct {
	ID          string             `firestore:"ID"`
	Name        string             `firestore:"Name"`
	Description string             `firestore:"Description"`
	Embedding   firestore.Vector32 `firestore:"Embedding,omitempty"`
}

func productToDoc(p *model.Product) *productDoc {
	doc := &productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
	}
	if p.Embedding != nil {
		doc.Embedding = firestore.Vector32(p.Embedding)
	}
	return doc
}

func docToProduct(doc *firestore.DocumentSnapshot) (*model.Product, error) {
	var d productDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal product")
	}

	return &model.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Embedding:   []float32(d.Embedding),
	}, nil
}

func (x *Firestore) PutProduct(ctx context.Context, product *model.Product) error {
	if err := product.Validate(); err != nil {
		return goerr.Wrap(err, "invalid product")
	}

	docRef := x.client.Collection(productsCollection).Doc(product.ID)
	if _, err := docRef.Set(ctx, productToDoc(product)); err != nil {
		return goerr.Wrap(err, "failed to put product to firestore", goerr.V("id", product.ID))
	}

	return nil
}

func (x *Firestore) FindProductsByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.Product, error) {
	vq := x.client.Collection(productsCollection).
		FindNearest("Embedding", firestore.Vector32(embedding), limit, firestore.DistanceMeasureCosine, nil)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	products := make([]*model.Product, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector search results")
		}

		p, err := docToProduct(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal product from vector search")
		}

		products = append(products, p)
	}

	return products, nil
}
