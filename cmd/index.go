package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/akramhany/repomind/internal/chunker"
	"github.com/akramhany/repomind/internal/index"
	"github.com/akramhany/repomind/internal/progress"
	"github.com/akramhany/repomind/internal/walker"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build the semantic index for a repository",
	Long:  `Walks the repository, splits every readable source file into overlapping chunks, embeds them, and saves the resulting index to disk.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := walker.Walk(walker.Config{
		RootDir:     root,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		MaxFileSize: cfg.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("scanning repository: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no indexable files found under %s", root)
	}
	if verbose {
		fmt.Printf("Found %d files\n", len(files))
	}

	docs, err := walker.LoadDocuments(files)
	if err != nil {
		return err
	}

	splitter, err := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("configuring splitter: %w", err)
	}
	chunks := splitter.SplitDocuments(docs)
	fmt.Printf("Split %d files into %d chunks\n", len(docs), len(chunks))

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	fmt.Printf("Embedding with %s\n", embedder.Name())

	retriever, err := index.Build(ctx, embedder, chunks, progress.NewReporter())
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if dir := filepath.Dir(cfg.IndexPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating index directory: %w", err)
		}
	}
	if err := retriever.Index().Save(cfg.IndexPath); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}

	fmt.Printf("Indexed %d chunks to %s in %s\n",
		retriever.Index().Count(), cfg.IndexPath, time.Since(start).Round(time.Millisecond))
	return nil
}
