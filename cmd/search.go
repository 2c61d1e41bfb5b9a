package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akramhany/repomind/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search the indexed codebase",
	Long:  `Searches the vector index using a natural language query and returns the most relevant code chunks without calling an LLM.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (overrides config top_k)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	queryText := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = cfg.TopK
	}

	retriever, err := openRetriever(cfg)
	if err != nil {
		return err
	}

	results, err := retriever.Search(ctx, queryText, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		return printSearchResultsJSON(results, cfg.PreviewLength)
	}

	printSearchResultsTable(results)
	return nil
}

type searchResultJSON struct {
	Rank     int     `json:"rank"`
	Distance float64 `json:"distance"`
	FilePath string  `json:"file_path"`
	ChunkID  int     `json:"chunk_id"`
	Preview  string  `json:"preview"`
}

func printSearchResultsJSON(results []index.Result, previewLen int) error {
	var out []searchResultJSON
	for i, r := range results {
		out = append(out, searchResultJSON{
			Rank:     i + 1,
			Distance: float64(r.Distance),
			FilePath: r.Chunk.FilePath,
			ChunkID:  r.Chunk.ChunkID,
			Preview:  truncate(r.Chunk.Content, previewLen),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printSearchResultsTable(results []index.Result) {
	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("  %d. [%.4f] %s (chunk %d/%d)\n",
			i+1, r.Distance, r.Chunk.FilePath, r.Chunk.ChunkID+1, r.Chunk.TotalChunks)
		fmt.Printf("     %s\n\n", truncate(r.Chunk.Content, 120))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
