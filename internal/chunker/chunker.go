package chunker

import (
	"fmt"
	"strings"
)

// Document is a single source file handed to the pipeline by the loader.
// Documents are immutable once ingested; a reload replaces them wholesale.
type Document struct {
	Content   string
	FilePath  string
	FileName  string
	Extension string
}

// Chunk is the retrievable unit: a bounded, possibly overlapping slice of a
// document's text. ChunkID values are contiguous from 0 within the parent.
type Chunk struct {
	Content     string
	FilePath    string
	FileName    string
	ChunkID     int
	TotalChunks int
}

// Splitter splits document text into overlapping chunks.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter creates a Splitter. It rejects overlap >= size because that
// configuration would stall the sliding window.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunker: size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunker: overlap must satisfy 0 <= overlap < size, got overlap=%d size=%d", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split breaks text into overlapping windows of at most s.size characters.
// When a window does not reach the end of the text, the split point is moved
// back to the last newline inside the window, provided that newline falls
// past the window's midpoint. The final chunk always reaches the end of the
// text.
func (s *Splitter) Split(text string) []string {
	if len(text) <= s.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.size
		if end >= len(text) {
			// Last window: take everything that remains. The unclamped end
			// pushes the next start past the text, terminating the loop.
			chunks = append(chunks, text[start:])
			start = end - s.overlap
			continue
		}

		window := text[start:end]
		// Prefer a newline boundary when one exists past the midpoint.
		if nl := strings.LastIndexByte(window, '\n'); nl > s.size/2 {
			window = window[:nl]
			end = start + nl
		}

		chunks = append(chunks, window)
		start = end - s.overlap
	}
	return chunks
}

// SplitDocuments chunks every document and flattens the result, preserving
// document order and intra-document order. Each chunk is stamped with its
// ordinal and the parent's chunk count.
func (s *Splitter) SplitDocuments(docs []Document) []Chunk {
	var out []Chunk
	for _, doc := range docs {
		pieces := s.Split(doc.Content)
		for i, piece := range pieces {
			out = append(out, Chunk{
				Content:     piece,
				FilePath:    doc.FilePath,
				FileName:    doc.FileName,
				ChunkID:     i,
				TotalChunks: len(pieces),
			})
		}
	}
	return out
}
