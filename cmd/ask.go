package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed codebase",
	Long:  `Retrieves the most relevant code chunks for the question, packs them into a token-budgeted prompt, and prints the LLM's answer with source citations.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Int("top-k", 0, "number of chunks to retrieve (overrides config)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	topK, _ := cmd.Flags().GetInt("top-k")
	if topK <= 0 {
		topK = cfg.TopK
	}

	retriever, err := openRetriever(cfg)
	if err != nil {
		return err
	}

	eng, err := createEngineFromConfig(cfg)
	if err != nil {
		return err
	}

	retrieved, err := retriever.Search(ctx, question, topK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	answer, err := eng.Answer(ctx, question, retrieved)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	fmt.Println(answer.Text)

	if len(answer.Sources) > 0 {
		fmt.Printf("\nSources (%d of %d chunks used):\n", answer.ChunksUsed, answer.ChunksRetrieved)
		for _, src := range answer.Sources {
			fmt.Printf("  - %s (distance %.4f)\n", src.FilePath, src.Score)
		}
	}

	return nil
}
