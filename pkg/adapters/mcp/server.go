package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/vine"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/aretw0/vine/pkg/ports"
)

// QuizView is the structured tool output shared by every quiz tool.
type QuizView struct {
	CurrentQuestion *domain.Question      `json:"current_question,omitempty" jsonschema_description:"The question the session is positioned at, absent once terminated"`
	Recommendations []domain.Product      `json:"recommended_products,omitempty" jsonschema_description:"Products recommended at termination"`
	AnswersGiven    []domain.AnsweredStep `json:"answers_given" jsonschema_description:"Replay log of answered steps in order"`
	Terminal        bool                  `json:"terminal" jsonschema_description:"True once the session has reached a recommendation"`
}

// Quiz is the slice of the engine facade the MCP tools need.
type Quiz interface {
	CurrentQuestion(ctx context.Context, quizID string) (*vine.View, error)
	Answer(ctx context.Context, quizID, answerID string) (*vine.View, error)
	Rewind(ctx context.Context, quizID, questionID string) (*vine.View, error)
}

// Server exposes a Quiz as an MCP server over stdio.
type Server struct {
	quiz      Quiz
	catalog   ports.Catalog
	mcpServer *server.MCPServer
}

// NewServer builds the MCP server and registers the quiz tools.
func NewServer(quiz Quiz, catalog ports.Catalog) *Server {
	s := &Server{
		quiz:      quiz,
		catalog:   catalog,
		mcpServer: server.NewMCPServer("vine-mcp", strings.TrimSpace(vine.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	currentTool := mcp.NewTool("quiz_current_question",
		mcp.WithDescription("Get the current question of a quiz session. An unknown quiz id starts a fresh session at the first question."),
		mcp.WithString("quiz_id", mcp.Required(), mcp.Description("Identifier of the quiz session")),
		mcp.WithOutputSchema[QuizView](),
	)
	s.mcpServer.AddTool(currentTool, mcp.NewStructuredToolHandler(s.handleCurrentQuestion))

	answerTool := mcp.NewTool("quiz_answer",
		mcp.WithDescription("Answer the current question of a quiz session. Moves to the next question or terminates with product recommendations."),
		mcp.WithString("quiz_id", mcp.Required(), mcp.Description("Identifier of the quiz session")),
		mcp.WithString("answer_id", mcp.Required(), mcp.Description("Identifier of the chosen answer, must belong to the current question")),
		mcp.WithOutputSchema[QuizView](),
	)
	s.mcpServer.AddTool(answerTool, mcp.NewStructuredToolHandler(s.handleAnswer))

	rewindTool := mcp.NewTool("quiz_rewind",
		mcp.WithDescription("Rewind a quiz session to a previously answered question, discarding that answer and everything after it."),
		mcp.WithString("quiz_id", mcp.Required(), mcp.Description("Identifier of the quiz session")),
		mcp.WithString("question_id", mcp.Required(), mcp.Description("Identifier of the answered question to rewind to")),
		mcp.WithOutputSchema[QuizView](),
	)
	s.mcpServer.AddTool(rewindTool, mcp.NewStructuredToolHandler(s.handleRewind))
}

func (s *Server) handleCurrentQuestion(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (QuizView, error) {
	quizID, _ := args["quiz_id"].(string)
	if quizID == "" {
		return QuizView{}, fmt.Errorf("quiz_id is required")
	}
	view, err := s.quiz.CurrentQuestion(ctx, quizID)
	if err != nil {
		return QuizView{}, fmt.Errorf("current question failed: %w", err)
	}
	return toQuizView(view), nil
}

func (s *Server) handleAnswer(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (QuizView, error) {
	quizID, _ := args["quiz_id"].(string)
	answerID, _ := args["answer_id"].(string)
	if quizID == "" || answerID == "" {
		return QuizView{}, fmt.Errorf("quiz_id and answer_id are required")
	}
	view, err := s.quiz.Answer(ctx, quizID, answerID)
	if err != nil {
		return QuizView{}, fmt.Errorf("answer failed: %w", err)
	}
	return toQuizView(view), nil
}

func (s *Server) handleRewind(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (QuizView, error) {
	quizID, _ := args["quiz_id"].(string)
	questionID, _ := args["question_id"].(string)
	if quizID == "" || questionID == "" {
		return QuizView{}, fmt.Errorf("quiz_id and question_id are required")
	}
	view, err := s.quiz.Rewind(ctx, quizID, questionID)
	if err != nil {
		return QuizView{}, fmt.Errorf("rewind failed: %w", err)
	}
	return toQuizView(view), nil
}

func (s *Server) registerResources() {
	// EXPOSE: vine://questions
	s.mcpServer.AddResource(mcp.NewResource("vine://questions", "Published Question Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		questions, err := s.catalog.Questions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list questions: %w", err)
		}
		published := make([]domain.Question, 0, len(questions))
		for _, q := range questions {
			if q.Published() {
				published = append(published, q)
			}
		}
		jsonBytes, _ := json.Marshal(published)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "vine://questions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func toQuizView(v *vine.View) QuizView {
	return QuizView{
		CurrentQuestion: v.Question,
		Recommendations: v.Recommendations,
		AnswersGiven:    v.AnswersGiven,
		Terminal:        v.Terminal,
	}
}
