package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

type GeminiModel struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiModel(ctx context.Context, apiKey, modelName string, temperature float32) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiModel{client: client, modelName: modelName, temperature: temperature}, nil
}

func (g *GeminiModel) Close() {
	g.client.Close()
}

func (g *GeminiModel) Generate(ctx context.Context, messages []models.Message) (string, error) {
	// A fresh GenerativeModel per call keeps SystemInstruction request-scoped.
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SetTopP(0.95)

	system, turns := splitSystem(messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if len(turns) == 0 {
		return "", models.NewModelUnavailableError(fmt.Errorf("no user message to send"))
	}

	cs := model.StartChat()
	for _, t := range turns[:len(turns)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  geminiRole(t.Role),
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return "", classify(ctx, err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", models.NewModelUnavailableError(fmt.Errorf("Gemini returned empty text"))
	}
	return text, nil
}

func splitSystem(messages []models.Message) (string, []models.Message) {
	var system []string
	var turns []models.Message
	for _, m := range messages {
		if m.Role == models.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	return strings.Join(system, "\n\n"), turns
}

func geminiRole(role string) string {
	if role == models.RoleAssistant {
		return "model"
	}
	return "user"
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
