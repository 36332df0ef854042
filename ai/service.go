// Package ai turns natural-language questions into SQL using the Anthropic
// Messages API. The flow is a single prompt-and-execute round trip: no
// retries, no caching.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mohitpandey15/esg-chatbot/logger"
)

// Service generates SQL queries from chat messages.
type Service struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// New creates the service. The API key is required; the model name falls
// back to a current Haiku when empty.
func New(apiKey, model string, maxTokens int) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	if model == "" {
		// Literal because anthropic-sdk-go v1.9.0 predates the
		// ModelClaudeHaiku4_5_20251001 constant; value matches it.
		model = "claude-haiku-4-5-20251001"
	}
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Service{
		client:    &client,
		model:     anthropic.Model(model),
		maxTokens: int64(maxTokens),
	}, nil
}

// GenerateSQL asks the model for a single SQLite SELECT answering the
// question, given the schema context. The response is stripped of code
// fences and surrounding whitespace.
func (s *Service) GenerateSQL(ctx context.Context, question, schemaContext string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt(schemaContext)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	}

	message, err := s.client.Messages.New(ctx, params)
	if err != nil {
		logger.Error("SQL generation failed", map[string]any{
			"error":    err.Error(),
			"question": question,
		})
		return "", fmt.Errorf("sql generation: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}

	sql := CleanSQL(text.String())
	if sql == "" {
		return "", fmt.Errorf("could not generate a SQL query from the message")
	}

	logger.Info("Generated SQL query", map[string]any{
		"question": question,
		"sql":      sql,
	})
	return sql, nil
}

// CleanSQL strips markdown code fences and whitespace from a model
// response, leaving the bare statement.
func CleanSQL(response string) string {
	sql := strings.TrimSpace(response)
	sql = strings.TrimPrefix(sql, "```sql")
	sql = strings.TrimPrefix(sql, "```")
	sql = strings.TrimSuffix(strings.TrimSpace(sql), "```")
	return strings.TrimSpace(sql)
}

// Suggestions returns starter questions shown in an empty chat.
func Suggestions() []string {
	return []string{
		"Show me steel production data for the last 6 months",
		"What are the total CO2 emissions?",
		"Show water consumption trends",
		"What was the highest monthly steel output?",
		"Show me renewable energy usage",
		"What types of waste were generated?",
		"Show power consumption data",
		"What are the emission trends by month?",
	}
}
