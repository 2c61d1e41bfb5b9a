package engine

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/akramhany/repomind/internal/llm"
)

// TokenCounter measures the token cost of text for budget comparisons.
type TokenCounter interface {
	Count(text string) int
}

// NewTokenCounter returns the best available counter: a tiktoken encoding
// matching the model family when it can be constructed, otherwise the
// heuristic counter. The choice is made once, here; callers never switch
// counters mid-session.
func NewTokenCounter() TokenCounter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return HeuristicCounter{}
	}
	return &TiktokenCounter{enc: enc}
}

// TiktokenCounter counts tokens with a real BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func (c *TiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// HeuristicCounter approximates one token per four characters. It is not
// exact, but it is deterministic and monotonic in text length, which is all
// budget comparisons require.
type HeuristicCounter struct{}

func (HeuristicCounter) Count(text string) int {
	return llm.EstimateTokens(text)
}
