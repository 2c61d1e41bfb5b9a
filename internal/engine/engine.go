package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/akramhany/repomind/internal/index"
	"github.com/akramhany/repomind/internal/llm"
)

// completionTemperature is fixed and low: answers should stay grounded in
// the provided context rather than improvise.
const completionTemperature = 0.3

// ErrPromptOverflow signals that the assembled prompt exceeds the token
// budget even though selection said it would fit. That is a sizing fault —
// an inconsistency between the counting function and the actual render —
// not a normal runtime failure, and it is surfaced distinctly so it gets
// fixed rather than retried.
var ErrPromptOverflow = errors.New("assembled prompt exceeds token budget")

// Source is a citation: a file that contributed context to the answer.
type Source struct {
	FilePath string  `json:"filepath"`
	Score    float32 `json:"score"`
	Preview  string  `json:"preview"`
}

// Answer bundles the generated text with its provenance.
type Answer struct {
	Text            string   `json:"answer"`
	Sources         []Source `json:"sources"`
	ChunksUsed      int      `json:"chunks_used"`
	ChunksRetrieved int      `json:"chunks_retrieved"`
}

// Config holds the engine's prompt-sizing and response parameters.
type Config struct {
	Model             string
	MaxContextTokens  int
	MaxResponseTokens int
	SafetyMargin      int
	MinContentTokens  int
	PreviewLength     int
}

// Engine turns ranked retrieval results into an answer with citations. It
// selects the chunks that fit the token budget, assembles the prompt, and
// delegates generation to a completion provider.
type Engine struct {
	provider llm.Provider
	counter  TokenCounter
	budgeter *Budgeter
	cfg      Config
}

// New creates an Engine. The same counter instance drives both selection
// and the final defensive re-count, so the two can only disagree if
// counting itself is inconsistent with rendering.
func New(provider llm.Provider, counter TokenCounter, cfg Config) *Engine {
	return &Engine{
		provider: provider,
		counter:  counter,
		budgeter: NewBudgeter(counter, cfg.MaxContextTokens, cfg.SafetyMargin, cfg.MinContentTokens),
		cfg:      cfg,
	}
}

// Budgeter exposes the engine's chunk selector.
func (e *Engine) Budgeter() *Budgeter { return e.budgeter }

// Answer selects budget-fitting chunks from the retrieved candidates,
// assembles the prompt, and generates an answer. A provider failure is
// converted into a textual error payload so the caller always receives a
// renderable response; only a sizing fault is returned as an error.
func (e *Engine) Answer(ctx context.Context, query string, retrieved []index.Result) (*Answer, error) {
	sel := e.budgeter.Select(retrieved, query)
	prompt := BuildPrompt(query, sel.Results)

	// Defensive re-count of the final render against the budget.
	if tokens := e.counter.Count(prompt); tokens > e.cfg.MaxContextTokens {
		return nil, fmt.Errorf("%w: %d > %d", ErrPromptOverflow, tokens, e.cfg.MaxContextTokens)
	}

	text := e.generate(ctx, prompt)

	return &Answer{
		Text:            text,
		Sources:         e.sources(retrieved, sel.Results),
		ChunksUsed:      len(sel.Results),
		ChunksRetrieved: len(retrieved),
	}, nil
}

func (e *Engine) generate(ctx context.Context, prompt string) string {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:       e.cfg.Model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   e.cfg.MaxResponseTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return fmt.Sprintf("Error generating answer: %v", err)
	}
	return resp.Content
}

// sources builds the citation list: one entry per distinct file path present
// in the accepted set, carrying the best (lowest-distance) score any of the
// file's retrieved chunks achieved and a fixed-length preview of the most
// relevant one.
func (e *Engine) sources(retrieved, accepted []index.Result) []Source {
	acceptedPaths := make(map[string]struct{}, len(accepted))
	for _, res := range accepted {
		acceptedPaths[res.Chunk.FilePath] = struct{}{}
	}

	seen := make(map[string]struct{}, len(acceptedPaths))
	var out []Source
	for _, res := range retrieved {
		path := res.Chunk.FilePath
		if _, ok := acceptedPaths[path]; !ok {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, Source{
			FilePath: path,
			Score:    res.Distance,
			Preview:  preview(res.Chunk.Content, e.cfg.PreviewLength),
		})
	}
	return out
}

func preview(content string, length int) string {
	if length <= 0 || len(content) <= length {
		return content
	}
	return content[:length] + "..."
}
