package cmd

import (
	"fmt"
	"os"

	"github.com/akramhany/repomind/internal/config"
	"github.com/akramhany/repomind/internal/embeddings"
	"github.com/akramhany/repomind/internal/engine"
	"github.com/akramhany/repomind/internal/index"
	"github.com/akramhany/repomind/internal/llm"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `repomind init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// Shared by the index, ask, search, and serve commands; all of them must
// end up with the same strategy for a given config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = config.ProviderTFIDF
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModel(provider)
	}

	apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
	return embeddings.Select(string(provider), model, apiKey, cfg.EmbeddingDim)
}

// createProviderFromConfig creates a completion provider based on config.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model)
}

// createEngineFromConfig wires the answer engine for the configured provider.
func createEngineFromConfig(cfg *config.Config) (*engine.Engine, error) {
	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	return engine.New(provider, engine.NewTokenCounter(), engine.Config{
		Model:             cfg.Model,
		MaxContextTokens:  cfg.MaxContextTokens,
		MaxResponseTokens: cfg.MaxResponseTokens,
		SafetyMargin:      cfg.SafetyMargin,
		MinContentTokens:  cfg.MinContentTokens,
		PreviewLength:     cfg.PreviewLength,
	}), nil
}

// openRetriever loads the saved index and wraps it in a retriever using the
// configured embedder.
func openRetriever(cfg *config.Config) (*index.Retriever, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	retriever, err := index.Open(cfg.IndexPath, embedder)
	if err != nil {
		return nil, fmt.Errorf("loading index from %s: %w\nRun `repomind index` first to build the index", cfg.IndexPath, err)
	}
	return retriever, nil
}
