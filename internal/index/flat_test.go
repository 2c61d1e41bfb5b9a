package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akramhany/repomind/internal/chunker"
)

func testChunks(n int) []chunker.Chunk {
	chunks := make([]chunker.Chunk, n)
	for i := range chunks {
		chunks[i] = chunker.Chunk{
			Content:     "content " + string(rune('a'+i)),
			FilePath:    "src/file.go",
			FileName:    "file.go",
			ChunkID:     i,
			TotalChunks: n,
		}
	}
	return chunks
}

func TestFlat_BuildRejectsMismatchedLengths(t *testing.T) {
	f := NewFlat()
	err := f.Build([][]float32{{1, 0}}, testChunks(2))
	if err == nil {
		t.Error("expected error for mismatched vector/chunk counts")
	}
}

func TestFlat_BuildRejectsMixedDimensions(t *testing.T) {
	f := NewFlat()
	err := f.Build([][]float32{{1, 0}, {1, 0, 0}}, testChunks(2))
	if err == nil {
		t.Error("expected error for vectors of different dimensions")
	}
}

func TestFlat_CountMatchesChunks(t *testing.T) {
	f := NewFlat()
	vectors := [][]float32{{1, 0}, {0, 1}, {1, 1}}
	if err := f.Build(vectors, testChunks(3)); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if f.Count() != 3 {
		t.Errorf("expected count 3, got %d", f.Count())
	}
}

func TestFlat_SearchEmptyIndex(t *testing.T) {
	f := NewFlat()
	hits, err := f.Search([]float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected empty result from empty index, got %d hits", len(hits))
	}
}

func TestFlat_SearchOrdersByAscendingDistance(t *testing.T) {
	f := NewFlat()
	vectors := [][]float32{
		{10, 0}, // far
		{1, 0},  // near
		{3, 0},  // middle
	}
	if err := f.Build(vectors, testChunks(3)); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	hits, err := f.Search([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	wantOrder := []int{1, 2, 0}
	for i, h := range hits {
		if h.Position != wantOrder[i] {
			t.Errorf("hit %d: expected position %d, got %d", i, wantOrder[i], h.Position)
		}
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Error("distances are not non-decreasing")
		}
	}
}

func TestFlat_SearchClampsK(t *testing.T) {
	f := NewFlat()
	vectors := [][]float32{{1, 0}, {0, 1}}
	if err := f.Build(vectors, testChunks(2)); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	hits, err := f.Search([]float32{0, 0}, 50)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected k clamped to 2 stored vectors, got %d hits", len(hits))
	}
}

func TestFlat_SearchTiesKeepPositionOrder(t *testing.T) {
	f := NewFlat()
	// All vectors equidistant from the origin query.
	vectors := [][]float32{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	if err := f.Build(vectors, testChunks(4)); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	hits, err := f.Search([]float32{0, 0}, 4)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for i, h := range hits {
		if h.Position != i {
			t.Errorf("tie-break: expected position %d at rank %d, got %d", i, i, h.Position)
		}
	}
}

func TestFlat_SearchRejectsWrongQueryDimension(t *testing.T) {
	f := NewFlat()
	if err := f.Build([][]float32{{1, 0}}, testChunks(1)); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := f.Search([]float32{1, 0, 0}, 1); err == nil {
		t.Error("expected error for mismatched query dimension")
	}
}

func TestFlat_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.gob")

	f := NewFlat()
	vectors := [][]float32{{1, 2}, {3, 4}, {5, 6}}
	chunks := testChunks(3)
	chunks[1].Content = "exact bytes\nwith newline\tand tab"
	if err := f.Build(vectors, chunks); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := f.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := NewFlat()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Count() != f.Count() {
		t.Fatalf("expected count %d after load, got %d", f.Count(), loaded.Count())
	}
	for i := 0; i < loaded.Count(); i++ {
		if loaded.Chunk(i) != chunks[i] {
			t.Errorf("chunk %d differs after round trip", i)
		}
	}

	// The position-to-chunk correspondence must survive: searching the
	// loaded index returns the same nearest chunk as the original.
	origHits, err := f.Search([]float32{1, 2}, 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	loadedHits, err := loaded.Search([]float32{1, 2}, 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if origHits[0].Position != loadedHits[0].Position {
		t.Error("nearest position differs after round trip")
	}
	if loaded.Chunk(loadedHits[0].Position).Content != chunks[origHits[0].Position].Content {
		t.Error("nearest chunk content differs after round trip")
	}
}

func TestFlat_LoadMissingFileFails(t *testing.T) {
	f := NewFlat()
	if err := f.Load(filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("expected error loading missing file")
	}
	if _, err := os.Stat(filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("load must not create the file")
	}
}
