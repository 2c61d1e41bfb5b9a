package embeddings

import "context"

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// CorpusFitter is implemented by embedders that derive their vector space
// from the corpus itself and must be fitted before Embed is called. The
// index builder checks for this capability and fits once per build.
type CorpusFitter interface {
	Fit(corpus []string) error
}
