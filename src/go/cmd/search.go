package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dillonfkhanna/multi-search/src/go/config"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

var (
	searchQuery string
	jsonOutput  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search indexed documents",
	Long:  `Perform a hybrid lexical and semantic search across indexed documents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		orch, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		results, err := orch.HybridSearch(context.Background(), searchQuery)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if jsonOutput {
			return outputJSON(results)
		}
		return outputText(results)
	},
}

func outputJSON(results []types.HybridSearchResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputText(results []types.HybridSearchResult) error {
	fmt.Printf("Found %d results\n\n", len(results))
	for i, r := range results {
		fmt.Printf("%d. %s (score: %.4f, source: %s)\n", i+1, r.Path, r.FinalScore, r.SourceType)
		fmt.Printf("   %s\n", r.Title)
		if r.BestMatchingChunk != "" {
			fmt.Printf("   %s\n", r.BestMatchingChunk)
		}
		fmt.Println()
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
	}
	return nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Search query (required)")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	searchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(searchCmd)
}
