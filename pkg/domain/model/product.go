package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// EmbeddingDimension is the dimension of product embedding vectors
const EmbeddingDimension = 768

// Product is an entry of the similarity-search catalog.
type Product struct {
	ID          string    `firestore:"ID" json:"id"`
	Name        string    `firestore:"Name" json:"name"`
	Description string    `firestore:"Description" json:"description"`
	Embedding   []float32 `firestore:"-" json:"embedding,omitempty"`
}

// Validate checks if the Product is valid
func (x *Product) Validate() error {
	if x.ID == "" {
		return goerr.New("product ID is required")
	}
	if x.Name == "" {
		return goerr.New("product name is required", goerr.V("id", x.ID))
	}
	return nil
}

// EmbeddingText is the text the embedding vector is computed from.
func (x *Product) EmbeddingText() string {
	if x.Description == "" {
		return x.Name
	}
	return x.Name + ". " + x.Description
}

// Snippet renders the product as a single catalog line for prompts.
func (x *Product) Snippet() string {
	var sb strings.Builder
	sb.WriteString(x.Name)
	if x.Description != "" {
		sb.WriteString(": ")
		sb.WriteString(x.Description)
	}
	return sb.String()
}
