package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vine/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the question graph for consistency",
	Long:  `Crawls the question graph from the start question and reports missing rules, dangling targets, and unreachable questions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	a, err := buildApp(cmd.Context(), cmd)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}
	defer a.Close()

	start, err := a.quiz.StartQuestion(cmd.Context())
	if err != nil {
		return err
	}

	return validator.ValidateGraph(cmd.Context(), a.catalog, a.rules, start)
}
