package memory

import (
	"context"
	"math"
	"sort"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

func copyProduct(p *model.Product) *model.Product {
	copied := &model.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
	}
	if p.Embedding != nil {
		copied.Embedding = make([]float32, len(p.Embedding))
		copy(copied.Embedding, p.Embedding)
	}
	return copied
}

func (x *Memory) PutProduct(ctx context.Context, product *model.Product) error {
	if err := product.Validate(); err != nil {
		return goerr.Wrap(err, "invalid product")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	x.products[product.ID] = copyProduct(product)
	return nil
}

func (x *Memory) FindProductsByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.Product, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	type scored struct {
		product *model.Product
		score   float64
	}

	var candidates []scored
	for _, p := range x.products {
		if len(p.Embedding) == 0 {
			continue
		}
		s := cosineSimilarity(embedding, p.Embedding)
		candidates = append(candidates, scored{product: copyProduct(p), score: s})
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
