package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"

	"github.com/akramhany/repomind/internal/chunker"
)

// Hit is a single nearest-neighbour match: the vector's position in the
// index and its distance from the query. Smaller distance means more
// relevant.
type Hit struct {
	Position int
	Distance float32
}

// Flat is an exact nearest-neighbour index over a parallel vector/chunk
// list. Search is a brute-force scan, which is fine at the scale of a few
// thousand chunks. Build replaces the contents wholesale; the index is not
// safe for concurrent build and search on the same instance.
type Flat struct {
	dim     int
	vectors [][]float32
	chunks  []chunker.Chunk
}

// NewFlat returns an empty index.
func NewFlat() *Flat {
	return &Flat{}
}

// Build replaces the index contents with the given parallel lists. Every
// vector position corresponds to the chunk at the same position.
func (f *Flat) Build(vectors [][]float32, chunks []chunker.Chunk) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("index: %d vectors but %d chunks", len(vectors), len(chunks))
	}
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("index: vector %d has dimension %d, expected %d", i, len(v), dim)
		}
	}
	f.dim = dim
	f.vectors = vectors
	f.chunks = chunks
	return nil
}

// Count returns the number of stored vectors, which always equals the number
// of stored chunks.
func (f *Flat) Count() int { return len(f.vectors) }

// Chunk returns the chunk stored at the given position.
func (f *Flat) Chunk(position int) chunker.Chunk { return f.chunks[position] }

// Search returns up to k hits ordered by ascending distance. k is clamped to
// the stored count; an empty index yields an empty result, not an error.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(f.vectors) == 0 {
		return nil, nil
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("index: query dimension %d, index dimension %d", len(query), f.dim)
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{Position: i, Distance: squaredL2(query, v)}
	}

	// Stable sort keeps equal-distance hits in position order.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	return hits[:k], nil
}

// squaredL2 computes the squared Euclidean distance. The square root is
// omitted: it does not change the ordering.
func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// flatBlob is the on-disk representation. Vectors and chunks are serialized
// together so a load can never break the position-to-chunk correspondence.
type flatBlob struct {
	Dim     int
	Vectors [][]float32
	Chunks  []chunker.Chunk
}

// Save writes the index and its chunk list to a single gob file.
func (f *Flat) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("index: create %s: %w", path, err)
	}
	defer file.Close()

	blob := flatBlob{Dim: f.dim, Vectors: f.vectors, Chunks: f.chunks}
	if err := gob.NewEncoder(file).Encode(blob); err != nil {
		return fmt.Errorf("index: encode %s: %w", path, err)
	}
	return nil
}

// Load restores an index previously written by Save.
func (f *Flat) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("index: open %s: %w", path, err)
	}
	defer file.Close()

	var blob flatBlob
	if err := gob.NewDecoder(file).Decode(&blob); err != nil {
		return fmt.Errorf("index: decode %s: %w", path, err)
	}
	if len(blob.Vectors) != len(blob.Chunks) {
		return fmt.Errorf("index: corrupt blob %s: %d vectors, %d chunks", path, len(blob.Vectors), len(blob.Chunks))
	}

	f.dim = blob.Dim
	f.vectors = blob.Vectors
	f.chunks = blob.Chunks
	return nil
}
