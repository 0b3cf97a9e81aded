package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dillonfkhanna/multi-search/src/go/api"
	"github.com/dillonfkhanna/multi-search/src/go/config"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start the HTTP API server exposing /v1/search, /v1/indexStatus, and /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		orch, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		apiServer := api.NewServer(orch, servePort)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("\nShutting down server...")
			cancel()
			apiServer.Stop(context.Background())
		}()

		fmt.Printf("Starting API server on port %s\n", strconv.Itoa(servePort))
		return apiServer.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
