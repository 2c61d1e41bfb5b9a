package embeddings

import (
	"fmt"
	"os"
)

// Select chooses the embedding strategy for a session. The choice is made
// once, here, and the returned embedder is used for both corpus and query
// encoding — never swapped mid-session.
//
// "openai" and "ollama" are the dense strategies; "tfidf" is the offline
// fallback. When the requested dense strategy cannot be constructed, Select
// falls back to TF-IDF; there is no further fallback beyond that.
func Select(provider, model, apiKey string, fallbackDim int) (Embedder, error) {
	switch provider {
	case "openai":
		e, err := NewOpenAIEmbedder(apiKey, OpenAIModel(model))
		if err != nil {
			fmt.Fprintf(os.Stderr, "openai embedder unavailable (%v), falling back to tfidf\n", err)
			return NewTFIDFEmbedder(fallbackDim), nil
		}
		return e, nil
	case "ollama":
		return NewOllamaEmbedder(model, os.Getenv("OLLAMA_HOST")), nil
	case "tfidf":
		return NewTFIDFEmbedder(fallbackDim), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
