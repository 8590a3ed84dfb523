package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vine/internal/presentation/graph"
	"github.com/aretw0/vine/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the question graph visualization",
	Long:  `Inspects the catalog and outputs a Mermaid diagram (graph TD) of questions, answers, and recommendations.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := buildApp(cmd.Context(), cmd)
		if err != nil {
			fmt.Printf("Error initializing vine: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		var overlay *graph.Overlay
		if quizID, _ := cmd.Flags().GetString("session"); quizID != "" {
			session, err := a.store.Load(cmd.Context(), quizID)
			if err != nil {
				fmt.Printf("Error loading session '%s': %v\n", quizID, err)
				os.Exit(1)
			}
			overlay = &graph.Overlay{
				AnsweredQuestions: answeredQuestions(session),
				CurrentQuestion:   session.CurrentQuestionID,
			}
		}

		output, err := graph.GenerateMermaid(cmd.Context(), a.catalog, a.rules, a.restrictions, overlay)
		if err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(output)
	},
}

func answeredQuestions(s *domain.Session) []string {
	ids := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		ids = append(ids, step.QuestionID)
	}
	return ids
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Quiz session id to highlight on the graph")
}
