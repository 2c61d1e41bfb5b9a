package engine

import (
	"sort"

	"github.com/akramhany/repomind/internal/index"
)

// truncationMarker is appended to a chunk whose content was cut to fit.
const truncationMarker = "..."

// truncationCharsPerToken converts a token allowance into characters when
// truncating. Three characters per token is deliberately conservative, so
// the truncated render stays under the allowance for real tokenizers too.
const truncationCharsPerToken = 3

// Budgeter selects, under a hard token budget, the maximal useful prefix of
// ranked candidates for inclusion in a prompt.
type Budgeter struct {
	counter          TokenCounter
	budget           int // total token budget B for the prompt
	safetyMargin     int // reserve held back from the budget
	minContentTokens int // smallest truncated content worth including
}

// NewBudgeter creates a Budgeter with the given counting strategy and limits.
func NewBudgeter(counter TokenCounter, budget, safetyMargin, minContentTokens int) *Budgeter {
	return &Budgeter{
		counter:          counter,
		budget:           budget,
		safetyMargin:     safetyMargin,
		minContentTokens: minContentTokens,
	}
}

// Selection is the budgeter's output: the accepted candidates in relevance
// order, chunk content possibly truncated, plus the measured costs.
type Selection struct {
	Results       []index.Result
	BaseTokens    int // scaffold + query cost
	ContextTokens int // cumulative cost of the accepted chunk renders
	Truncated     bool
}

// Select sorts the candidates by ascending distance (stable, so ties keep
// their input order) and accepts them greedily until one no longer fits.
// Iteration stops at the first candidate that does not fit; later, cheaper
// candidates are never considered. When nothing fits whole and enough budget
// remains, the single most relevant candidate is truncated to fit so the
// prompt always carries some context when the budget allows any.
//
// Select never fails: empty input yields an empty selection. The invariant
// BaseTokens + safetyMargin + ContextTokens <= budget holds on return.
func (b *Budgeter) Select(candidates []index.Result, query string) Selection {
	base := b.counter.Count(renderScaffold(query, ""))
	sel := Selection{BaseTokens: base}

	remaining := b.budget - base - b.safetyMargin
	if remaining <= 0 || len(candidates) == 0 {
		return sel
	}

	sorted := make([]index.Result, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})

	cumulative := 0
	for _, cand := range sorted {
		cost := b.counter.Count(renderChunk(len(sel.Results)+1, cand.Chunk.FilePath, cand.Chunk.Content))
		if cumulative+cost > remaining {
			break
		}
		sel.Results = append(sel.Results, cand)
		cumulative += cost
	}

	if len(sel.Results) == 0 && remaining > b.minContentTokens {
		if res, cost, ok := b.truncateToFit(sorted[0], remaining); ok {
			sel.Results = append(sel.Results, res)
			cumulative = cost
			sel.Truncated = true
		}
	}

	sel.ContextTokens = cumulative
	return sel
}

// truncateToFit cuts the candidate's content so its rendered form, header
// and truncation marker included, costs at most remaining tokens.
func (b *Budgeter) truncateToFit(cand index.Result, remaining int) (index.Result, int, bool) {
	headerTokens := b.counter.Count(renderChunkHeader(1, cand.Chunk.FilePath))
	contentAllowance := remaining - headerTokens
	if contentAllowance <= b.minContentTokens {
		return index.Result{}, 0, false
	}

	maxChars := contentAllowance * truncationCharsPerToken
	if maxChars > len(cand.Chunk.Content) {
		maxChars = len(cand.Chunk.Content)
	}
	content := cand.Chunk.Content[:maxChars] + truncationMarker

	// The char estimate is conservative, but verify against the actual
	// counter and shave further if it still overshoots.
	cost := b.counter.Count(renderChunk(1, cand.Chunk.FilePath, content))
	for cost > remaining && maxChars > 0 {
		maxChars = maxChars * 9 / 10
		content = cand.Chunk.Content[:maxChars] + truncationMarker
		cost = b.counter.Count(renderChunk(1, cand.Chunk.FilePath, content))
	}
	if cost > remaining {
		return index.Result{}, 0, false
	}

	res := cand
	res.Chunk.Content = content
	return res, cost, true
}
