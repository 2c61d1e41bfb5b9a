package engine

import (
	"strings"
	"testing"

	"github.com/akramhany/repomind/internal/chunker"
	"github.com/akramhany/repomind/internal/index"
)

// charCounter counts one token per character, making budget arithmetic in
// tests exact.
type charCounter struct{}

func (charCounter) Count(text string) int { return len(text) }

func candidate(path, content string, distance float32) index.Result {
	return index.Result{
		Chunk:    chunker.Chunk{Content: content, FilePath: path, FileName: path},
		Distance: distance,
	}
}

const testQuery = "how does the loader work?"

// budgetFor returns a budget that admits exactly the given chunk renders on
// top of the scaffold and margin.
func budgetFor(counter TokenCounter, margin int, renders ...string) int {
	b := counter.Count(renderScaffold(testQuery, "")) + margin
	for _, r := range renders {
		b += counter.Count(r)
	}
	return b
}

func TestSelect_EmptyInput(t *testing.T) {
	b := NewBudgeter(charCounter{}, 10000, 200, 50)
	sel := b.Select(nil, testQuery)
	if len(sel.Results) != 0 {
		t.Errorf("expected empty selection, got %d results", len(sel.Results))
	}
	if sel.ContextTokens != 0 {
		t.Errorf("expected zero context tokens, got %d", sel.ContextTokens)
	}
}

func TestSelect_BudgetBelowScaffold(t *testing.T) {
	b := NewBudgeter(charCounter{}, 10, 200, 50)
	sel := b.Select([]index.Result{candidate("a.go", "content", 0.1)}, testQuery)
	if len(sel.Results) != 0 {
		t.Errorf("expected empty selection when budget is below scaffold+margin, got %d", len(sel.Results))
	}
}

func TestSelect_LargeBudgetTakesAllInRelevanceOrder(t *testing.T) {
	b := NewBudgeter(charCounter{}, 100000, 200, 50)

	// Deliberately unsorted input: the budgeter sorts by distance.
	cands := []index.Result{
		candidate("c.go", "third", 0.3),
		candidate("a.go", "first", 0.1),
		candidate("b.go", "second", 0.2),
	}
	sel := b.Select(cands, testQuery)

	if len(sel.Results) != 3 {
		t.Fatalf("expected all 3 candidates, got %d", len(sel.Results))
	}
	wantPaths := []string{"a.go", "b.go", "c.go"}
	for i, res := range sel.Results {
		if res.Chunk.FilePath != wantPaths[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantPaths[i], res.Chunk.FilePath)
		}
	}
}

func TestSelect_TiesKeepInputOrder(t *testing.T) {
	b := NewBudgeter(charCounter{}, 100000, 200, 50)
	cands := []index.Result{
		candidate("x.go", "one", 0.5),
		candidate("y.go", "two", 0.5),
		candidate("z.go", "six", 0.5),
	}
	sel := b.Select(cands, testQuery)
	if len(sel.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(sel.Results))
	}
	for i, want := range []string{"x.go", "y.go", "z.go"} {
		if sel.Results[i].Chunk.FilePath != want {
			t.Errorf("tie at position %d: expected %s, got %s", i, want, sel.Results[i].Chunk.FilePath)
		}
	}
}

func TestSelect_ExactlyTwoLowestDistances(t *testing.T) {
	counter := charCounter{}
	content := strings.Repeat("x", 100)

	cands := make([]index.Result, 5)
	distances := []float32{0.1, 0.2, 0.3, 0.4, 0.5}
	for i, d := range distances {
		cands[i] = candidate("f.go", content, d)
	}

	// Budget fits exactly the first two chunk renders.
	budget := budgetFor(counter, 200,
		renderChunk(1, "f.go", content),
		renderChunk(2, "f.go", content),
	)
	b := NewBudgeter(counter, budget, 200, 50)
	sel := b.Select(cands, testQuery)

	if len(sel.Results) != 2 {
		t.Fatalf("expected exactly 2 accepted chunks, got %d", len(sel.Results))
	}
	if sel.Results[0].Distance != 0.1 || sel.Results[1].Distance != 0.2 {
		t.Errorf("expected the two lowest distances, got %v and %v",
			sel.Results[0].Distance, sel.Results[1].Distance)
	}
}

func TestSelect_GreedyStopSkipsCheaperLaterCandidates(t *testing.T) {
	counter := charCounter{}
	small := strings.Repeat("s", 20)
	huge := strings.Repeat("h", 5000)

	cands := []index.Result{
		candidate("a.go", small, 0.1),
		candidate("b.go", huge, 0.2),
		candidate("c.go", small, 0.3), // would fit, but is never considered
	}

	// Room for the first small chunk plus a bit, not for the huge one.
	budget := budgetFor(counter, 200, renderChunk(1, "a.go", small)) + 60
	b := NewBudgeter(counter, budget, 200, 50)
	sel := b.Select(cands, testQuery)

	if len(sel.Results) != 1 {
		t.Fatalf("greedy-stop: expected exactly 1 accepted chunk, got %d", len(sel.Results))
	}
	if sel.Results[0].Chunk.FilePath != "a.go" {
		t.Errorf("expected only a.go, got %s", sel.Results[0].Chunk.FilePath)
	}
}

func TestSelect_TruncatesSingleBestWhenNothingFits(t *testing.T) {
	counter := charCounter{}
	huge := strings.Repeat("q", 5000)

	cands := []index.Result{
		candidate("big.go", huge, 0.2),
		candidate("other.go", huge, 0.4),
	}

	// Scaffold plus 400 spare: no whole chunk fits, truncation must kick in.
	budget := counter.Count(renderScaffold(testQuery, "")) + 200 + 400
	b := NewBudgeter(counter, budget, 200, 50)
	sel := b.Select(cands, testQuery)

	if len(sel.Results) != 1 {
		t.Fatalf("expected exactly one truncated chunk, got %d", len(sel.Results))
	}
	if !sel.Truncated {
		t.Error("expected selection to be marked truncated")
	}
	res := sel.Results[0]
	if res.Chunk.FilePath != "big.go" {
		t.Errorf("expected the most relevant candidate truncated, got %s", res.Chunk.FilePath)
	}
	if !strings.HasSuffix(res.Chunk.Content, truncationMarker) {
		t.Error("expected truncation marker at end of content")
	}
	if cost := counter.Count(renderChunk(1, res.Chunk.FilePath, res.Chunk.Content)); cost > 400 {
		t.Errorf("truncated render costs %d, exceeding the remaining 400", cost)
	}
}

func TestSelect_NoTruncationBelowMinimumUsefulContent(t *testing.T) {
	counter := charCounter{}
	huge := strings.Repeat("q", 5000)

	// Remaining room is under the minimum-useful-content threshold.
	budget := counter.Count(renderScaffold(testQuery, "")) + 200 + 30
	b := NewBudgeter(counter, budget, 200, 50)
	sel := b.Select([]index.Result{candidate("big.go", huge, 0.2)}, testQuery)

	if len(sel.Results) != 0 {
		t.Errorf("expected empty selection below the useful-content threshold, got %d", len(sel.Results))
	}
}

func TestSelect_BudgetInvariantHolds(t *testing.T) {
	counter := charCounter{}
	contents := []string{
		strings.Repeat("a", 300),
		strings.Repeat("b", 700),
		strings.Repeat("c", 150),
		strings.Repeat("d", 2500),
	}

	for _, budget := range []int{0, 100, 500, 900, 1500, 3000, 10000} {
		b := NewBudgeter(counter, budget, 200, 50)
		var cands []index.Result
		for i, c := range contents {
			cands = append(cands, candidate("f.go", c, float32(i)*0.1))
		}
		sel := b.Select(cands, testQuery)

		if sel.BaseTokens+200+sel.ContextTokens > budget && len(sel.Results) > 0 {
			t.Errorf("budget %d: invariant violated: base=%d context=%d",
				budget, sel.BaseTokens, sel.ContextTokens)
		}
	}
}
