package engine

import (
	"fmt"
	"strings"

	"github.com/akramhany/repomind/internal/index"
)

// scaffoldFormat is the fixed instructional template surrounding the query
// and the retrieved context in every prompt. The first verb takes the
// rendered chunk sequence, the second takes the query.
const scaffoldFormat = `You are a helpful code assistant. Answer the user's question based on the provided code context.

Context from the codebase:
%s

User Question: %s

Instructions:
- Answer based on the provided code context
- Be specific and reference file names when relevant
- If the context doesn't contain enough information, say so
- Provide code examples if helpful
- Be concise but thorough

Answer:`

// renderScaffold produces the prompt around an already-rendered context
// block. Rendering with an empty block measures the fixed scaffold cost.
func renderScaffold(query, contextBlock string) string {
	return fmt.Sprintf(scaffoldFormat, contextBlock, query)
}

// renderChunk produces a chunk's in-prompt form: a header naming its source
// path and position in the accepted sequence, followed by its content. The
// budgeter costs chunks in exactly this form, so prompt assembly must never
// render them differently.
func renderChunk(position int, filePath, content string) string {
	return fmt.Sprintf("\n--- Code Snippet %d from %s ---\n%s\n", position, filePath, content)
}

// renderChunkHeader is the chunk render without its content, used to reserve
// header room when truncating.
func renderChunkHeader(position int, filePath string) string {
	return renderChunk(position, filePath, "")
}

// BuildPrompt assembles the final prompt from the accepted chunks, the
// scaffold, and the query.
func BuildPrompt(query string, accepted []index.Result) string {
	var b strings.Builder
	for i, res := range accepted {
		b.WriteString(renderChunk(i+1, res.Chunk.FilePath, res.Chunk.Content))
	}
	return renderScaffold(query, b.String())
}
