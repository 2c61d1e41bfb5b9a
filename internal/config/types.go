package config

// ProviderType identifies a completion or embedding provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
	ProviderTFIDF  ProviderType = "tfidf"
)

// Config is the top-level repomind configuration, corresponding to
// .repomind.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`

	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	EmbeddingDim      int          `yaml:"embedding_dim" koanf:"embedding_dim"`

	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`

	TopK              int `yaml:"top_k" koanf:"top_k"`
	MaxContextTokens  int `yaml:"max_context_tokens" koanf:"max_context_tokens"`
	MaxResponseTokens int `yaml:"max_response_tokens" koanf:"max_response_tokens"`
	SafetyMargin      int `yaml:"safety_margin" koanf:"safety_margin"`
	MinContentTokens  int `yaml:"min_content_tokens" koanf:"min_content_tokens"`
	PreviewLength     int `yaml:"preview_length" koanf:"preview_length"`

	IndexPath   string   `yaml:"index_path" koanf:"index_path"`
	Include     []string `yaml:"include" koanf:"include"`
	Exclude     []string `yaml:"exclude" koanf:"exclude"`
	MaxFileSize int64    `yaml:"max_file_size" koanf:"max_file_size"`

	ServerPort int `yaml:"server_port" koanf:"server_port"`
}
