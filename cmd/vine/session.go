package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored quiz sessions",
	Long:  `List, inspect, and remove quiz sessions held in the configured session store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := buildApp(cmd.Context(), cmd)
		if err != nil {
			fmt.Printf("Error initializing vine: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		sessions, err := a.store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No active sessions found.")
			return
		}

		fmt.Println("Active Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <quiz-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		quizID := args[0]
		a, err := buildApp(cmd.Context(), cmd)
		if err != nil {
			fmt.Printf("Error initializing vine: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		session, err := a.store.Load(cmd.Context(), quizID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", quizID, err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling session: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <quiz-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := buildApp(cmd.Context(), cmd)
		if err != nil {
			fmt.Printf("Error initializing vine: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		hasError := false
		for _, quizID := range args {
			if err := a.store.Delete(cmd.Context(), quizID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", quizID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", quizID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
