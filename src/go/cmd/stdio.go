package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dillonfkhanna/multi-search/src/go/config"
	"github.com/dillonfkhanna/multi-search/src/go/mcp"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Run in MCP stdio mode",
	Long:  `Start the engine in MCP (Model Context Protocol) stdio mode for LLM agent integration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		orch, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		mcpServer := mcp.NewServer(orch)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return mcpServer.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
