package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vine/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the vine engine as an MCP Server over stdio.
This allows AI agents to walk quizzes and fetch recommendations as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := buildApp(cmd.Context(), cmd)
		if err != nil {
			log.Fatalf("Error initializing vine: %v", err)
		}
		defer a.Close()

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		srv := mcp.NewServer(a.quiz, a.catalog)

		a.logger.Info("starting vine MCP server (stdio)")
		if err := srv.ServeStdio(); err != nil {
			a.logger.Error("MCP server execution failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
