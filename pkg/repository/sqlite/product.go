package sqlite

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

func (x *SQLite) PutProduct(ctx context.Context, product *model.Product) error {
	if err := product.Validate(); err != nil {
		return goerr.Wrap(err, "invalid product")
	}

	var embeddingJSON *string
	if len(product.Embedding) > 0 {
		data, err := json.Marshal(product.Embedding)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal embedding", goerr.V("id", product.ID))
		}
		s := string(data)
		embeddingJSON = &s
	}

	_, err := x.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, embedding) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description, embedding = excluded.embedding`,
		product.ID, product.Name, product.Description, embeddingJSON,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert product", goerr.V("id", product.ID))
	}

	return nil
}

// FindProductsByEmbedding ranks all products by cosine similarity in
// process. SQLite has no vector index; the catalog is small enough that a
// full scan is acceptable.
func (x *SQLite) FindProductsByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.Product, error) {
	rows, err := x.db.QueryContext(ctx,
		`SELECT id, name, description, embedding FROM products WHERE embedding IS NOT NULL`,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query products")
	}
	defer safe.Close(ctx, rows)

	type scored struct {
		product *model.Product
		score   float64
	}

	var candidates []scored
	for rows.Next() {
		var id, name, description, embeddingJSON string
		if err := rows.Scan(&id, &name, &description, &embeddingJSON); err != nil {
			return nil, goerr.Wrap(err, "failed to scan product")
		}

		var vec []float32
		if err := json.Unmarshal([]byte(embeddingJSON), &vec); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal embedding", goerr.V("id", id))
		}

		p := &model.Product{ID: id, Name: name, Description: description, Embedding: vec}
		candidates = append(candidates, scored{product: p, score: cosineSimilarity(embedding, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate products")
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	result := make([]*model.Product, limit)
	for i := 0; i < limit; i++ {
		result[i] = candidates[i].product
	}

	return result, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
