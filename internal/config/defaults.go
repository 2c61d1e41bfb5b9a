package config

// defaultModels maps each provider to its default completion model.
var defaultModels = map[ProviderType]string{
	ProviderGroq:   "llama-3.3-70b-versatile",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3",
}

// defaultEmbeddingModels maps each embedding provider to its default model.
var defaultEmbeddingModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderOllama: "nomic-embed-text",
}

// DefaultExcludes are glob patterns excluded from indexing by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
	"go.sum",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults. The context budget
// is deliberately conservative so the whole prompt fits smaller-context
// completion services.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGroq,
		Model:             defaultModels[ProviderGroq],
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    defaultEmbeddingModels[ProviderOpenAI],
		EmbeddingDim:      512,
		ChunkSize:         1000,
		ChunkOverlap:      200,
		TopK:              5,
		MaxContextTokens:  10000,
		MaxResponseTokens: 1024,
		SafetyMargin:      200,
		MinContentTokens:  50,
		PreviewLength:     200,
		IndexPath:         ".repomind/index.gob",
		Include:           []string{"**"},
		Exclude:           DefaultExcludes,
		MaxFileSize:       500 * 1024,
		ServerPort:        8080,
	}
}

// DefaultModel returns the default completion model for a provider, or an
// empty string for unknown providers.
func DefaultModel(provider ProviderType) string {
	return defaultModels[provider]
}

// DefaultEmbeddingModel returns the default embedding model for a provider.
func DefaultEmbeddingModel(provider ProviderType) string {
	return defaultEmbeddingModels[provider]
}
