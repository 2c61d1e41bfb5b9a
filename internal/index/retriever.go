package index

import (
	"context"
	"fmt"

	"github.com/akramhany/repomind/internal/chunker"
	"github.com/akramhany/repomind/internal/embeddings"
	"github.com/akramhany/repomind/internal/progress"
)

// embedBatchSize limits how many chunk contents are embedded per call so
// progress reporting stays responsive on large corpora.
const embedBatchSize = 32

// Result pairs a retrieved chunk with its distance from the query.
type Result struct {
	Chunk    chunker.Chunk
	Distance float32
}

// Retriever composes an embedder and a flat index into text-level search.
// The embedder must be the same instance used to build the index.
type Retriever struct {
	embedder embeddings.Embedder
	index    *Flat
}

// NewRetriever wraps an already-built index.
func NewRetriever(embedder embeddings.Embedder, idx *Flat) *Retriever {
	return &Retriever{embedder: embedder, index: idx}
}

// Build chunks nothing and caches nothing: it embeds every chunk's content
// with the given embedder, builds a fresh flat index over the result, and
// returns a retriever for it. Corpus-fitted embedders (the TF-IDF fallback)
// are fitted on the chunk contents first, so their reduced space matches
// the vectors stored in the index.
func Build(ctx context.Context, embedder embeddings.Embedder, chunks []chunker.Chunk, reporter progress.Reporter) (*Retriever, error) {
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}

	if fitter, ok := embedder.(embeddings.CorpusFitter); ok {
		if err := fitter.Fit(texts); err != nil {
			return nil, fmt.Errorf("fitting embedder on corpus: %w", err)
		}
	}

	if reporter != nil {
		reporter.Start(len(texts))
	}

	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := embedder.Embed(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embedding chunks %d-%d: %w", i, end, err)
		}
		vectors = append(vectors, batch...)
		if reporter != nil {
			reporter.Update(end, fmt.Sprintf("Embedding chunks (%d/%d)", end, len(texts)))
		}
	}

	if reporter != nil {
		reporter.Finish()
	}

	idx := NewFlat()
	if err := idx.Build(vectors, chunks); err != nil {
		return nil, err
	}
	return &Retriever{embedder: embedder, index: idx}, nil
}

// Open loads a previously saved index from disk and wraps it in a
// retriever. Corpus-fitted embedders are re-fitted on the stored chunk
// contents, which reproduces the vector space the index was built in.
func Open(path string, embedder embeddings.Embedder) (*Retriever, error) {
	idx := NewFlat()
	if err := idx.Load(path); err != nil {
		return nil, err
	}

	if fitter, ok := embedder.(embeddings.CorpusFitter); ok {
		texts := make([]string, idx.Count())
		for i := range texts {
			texts[i] = idx.Chunk(i).Content
		}
		if err := fitter.Fit(texts); err != nil {
			return nil, fmt.Errorf("refitting embedder on stored corpus: %w", err)
		}
	}

	return &Retriever{embedder: embedder, index: idx}, nil
}

// Index exposes the underlying flat index, e.g. for persistence.
func (r *Retriever) Index() *Flat { return r.index }

// Search embeds the query and returns the top-k chunks by ascending
// distance. The query is re-embedded on every call; nothing is cached.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]Result, error) {
	vecs, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	hits, err := r.index.Search(vecs[0], k)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{Chunk: r.index.Chunk(h.Position), Distance: h.Distance}
	}
	return results, nil
}
