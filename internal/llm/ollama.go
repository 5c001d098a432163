package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

// contentGenerator is the slice of llms.Model the adapter relies on.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// OllamaModel talks to a local Ollama server through langchaingo.
type OllamaModel struct {
	client      contentGenerator
	temperature float64
}

func NewOllamaModel(serverURL, modelName string, temperature float64) (*OllamaModel, error) {
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	client, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaModel{client: client, temperature: temperature}, nil
}

func (m *OllamaModel) Generate(ctx context.Context, messages []models.Message) (string, error) {
	resp, err := m.client.GenerateContent(ctx, toMessageContent(messages), llms.WithTemperature(m.temperature))
	if err != nil {
		return "", classify(ctx, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", models.NewModelUnavailableError(fmt.Errorf("ollama returned no choices"))
	}
	return cleanResponse(resp.Choices[0].Content), nil
}

func toMessageContent(messages []models.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		out = append(out, llms.TextParts(chatMessageType(msg.Role), msg.Content))
	}
	return out
}

func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
