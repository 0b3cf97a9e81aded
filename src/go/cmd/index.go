package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dillonfkhanna/multi-search/src/go/config"
	"github.com/dillonfkhanna/multi-search/src/go/embedder"
	"github.com/dillonfkhanna/multi-search/src/go/indexer"
	"github.com/dillonfkhanna/multi-search/src/go/orchestrator"
	"github.com/dillonfkhanna/multi-search/src/go/types"
	"github.com/dillonfkhanna/multi-search/src/go/watcher"
)

var (
	watchFlag  bool
	sourceType string
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a directory of documents for search",
	Long:  `Build or update the lexical and vector indexes for every file under the given path.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		orch, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		fmt.Printf("Indexing %s\n", rootPath)
		if err := indexTree(ctx, orch, rootPath); err != nil {
			return fmt.Errorf("indexing failed: %w", err)
		}

		if watchFlag {
			fmt.Println("Watching for changes...")
			return runWatcher(ctx, orch, rootPath, cfg)
		}
		return nil
	},
}

func indexTree(ctx context.Context, orch *orchestrator.Orchestrator, rootPath string) error {
	files, err := WalkFiles(rootPath)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", rootPath, err)
	}
	fmt.Printf("Found %d files\n", len(files))

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", file, err)
			continue
		}
		title, body, err := watcher.DefaultParser(file, content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse %s: %v\n", file, err)
			continue
		}

		var modified time.Time
		if info, err := os.Stat(file); err == nil {
			modified = info.ModTime()
		}

		err = orch.Index(ctx, types.RawDocument{
			Path:         file,
			Title:        title,
			Body:         body,
			SourceType:   sourceType,
			ModifiedDate: modified,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to index %s: %v\n", file, err)
		}
	}

	fmt.Println("Indexing complete.")
	return nil
}

func runWatcher(ctx context.Context, orch *orchestrator.Orchestrator, rootPath string, cfg *config.Config) error {
	w, err := watcher.New(orch, cfg.Watcher.DebounceMs, sourceType, nil)
	if err != nil {
		return err
	}
	defer w.Close()

	w.SetIgnorePatterns(cfg.Watcher.IgnoreGlobs)
	if err := w.AddPath(rootPath); err != nil {
		return err
	}

	fmt.Println("Watcher started.")
	return w.Run(ctx)
}

// buildOrchestrator wires the default, dependency-free implementations
// (in-memory lexical index, in-memory vector store, deterministic
// embedder) into an Orchestrator, whatever build tags are set.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	lex := indexer.NewMemoryLexicalIndex()
	vec := indexer.NewMemoryVectorStore(types.EmbeddingDimension)
	emb := embedder.NewDefaultEmbedder()
	fusion := orchestrator.FusionWeights{
		RRFConstant:   cfg.Fusion.RRFConstant,
		KeywordBoost:  cfg.Fusion.KeywordBoost,
		TitleBoost:    cfg.Fusion.TitleBoost,
		SummaryBoost:  cfg.Fusion.SummaryBoost,
		ChunkBoost:    cfg.Fusion.ChunkBoost,
		RecencyWeight: cfg.Fusion.RecencyWeight,
		RRFWeight:     cfg.Fusion.RRFWeight,
		ResultCap:     cfg.Fusion.ResultCap,
	}
	return orchestrator.New(lex, vec, emb, fusion), nil
}

func init() {
	indexCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes after the initial index")
	indexCmd.Flags().StringVar(&sourceType, "source-type", "document", "Source type tag applied to every indexed document")
	rootCmd.AddCommand(indexCmd)
}
