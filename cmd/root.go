package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "repomind",
	Short: "Ask questions about your codebase using retrieval-augmented generation",
	Long: `Repomind indexes your repository into a local vector index and answers
natural language questions about it. Retrieved code snippets are packed
into a token-budgeted prompt and sent to an LLM, and every answer cites
the files it drew from.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// API keys are commonly kept in a local .env during development.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".repomind.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
