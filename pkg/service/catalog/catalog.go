package catalog

import (
	"context"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Service answers free-text similarity queries over the product catalog.
// The query is embedded with the configured LLM client and matched against
// stored product vectors by cosine distance.
type Service struct {
	llmClient gollem.LLMClient
	repo      interfaces.Repository
}

var _ interfaces.CatalogSearcher = &Service{}

func New(llmClient gollem.LLMClient, repo interfaces.Repository) (*Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	if repo == nil {
		return nil, goerr.New("repository is required")
	}

	return &Service{
		llmClient: llmClient,
		repo:      repo,
	}, nil
}

// Search returns up to limit catalog snippets closest to the query,
// ordered by similarity.
func (x *Service) Search(ctx context.Context, query string, limit int) ([]string, error) {
	embedding, err := x.Embed(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query")
	}

	products, err := x.repo.FindProductsByEmbedding(ctx, embedding, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "vector search failed", goerr.V("query", query))
	}

	snippets := make([]string, len(products))
	for i, p := range products {
		snippets[i] = p.Snippet()
	}

	return snippets, nil
}

// Embed generates the embedding vector for the given text
func (x *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := x.llmClient.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}
	if len(embeddings) == 0 {
		return nil, goerr.New("no embedding returned")
	}

	result := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		result[i] = float32(v)
	}

	return result, nil
}
