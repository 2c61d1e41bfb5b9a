package llm

import (
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcdefgh", 2},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestNewProvider_UnsupportedType(t *testing.T) {
	if _, err := NewProvider("bedrock", "some-model"); err == nil {
		t.Error("expected error for unsupported provider type")
	}
}

func TestNewProvider_GroqRequiresKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	if _, err := NewProvider("groq", "llama-3.3-70b-versatile"); err == nil {
		t.Error("expected error when GROQ_API_KEY is unset")
	}

	t.Setenv("GROQ_API_KEY", "gsk-test")
	p, err := NewProvider("groq", "llama-3.3-70b-versatile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "groq" {
		t.Errorf("expected provider name groq, got %q", p.Name())
	}
}

func TestNewProvider_OllamaNeedsNoKey(t *testing.T) {
	p, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("expected provider name ollama, got %q", p.Name())
	}
}
