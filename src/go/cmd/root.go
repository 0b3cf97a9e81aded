package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "multi-search",
		Short: "Hybrid lexical + semantic document search engine",
		Long: `multi-search combines lexical (BM25) and semantic (embedding) search
to provide fast, ranked document retrieval. Indexing and search run entirely
offline, with no network dependency beyond the one-time embedding model
download.`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: first found of ./multi-search.yaml, ./.multi-search.yaml, $HOME/.config/multi-search/config.yaml, $HOME/.multi-search/config.yaml)")
}
