package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/llm"
	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/parser"
	"github.com/sirine707/ensuite-study-buddy/internal/prompts"
)

const DefaultOvergenerationMargin = 1

// Generator asks the model for a few more quiz items than the caller wants
// and cuts the parsed list back to the requested count. A short list is
// returned as is; there is no second round trip.
type Generator struct {
	model  llm.Model
	margin int
	log    *zap.Logger
}

func NewGenerator(model llm.Model, margin int, log *zap.Logger) *Generator {
	if margin < 0 {
		margin = 0
	}
	return &Generator{model: model, margin: margin, log: log}
}

// Generate produces at most count items of the given kind about topic.
func (g *Generator) Generate(ctx context.Context, kind parser.OutputKind, topic string, count int) (parser.Result, error) {
	role, template := prompts.MultipleChoiceContext, prompts.MultipleChoiceTemplate
	if kind == parser.KindFlashcard {
		role, template = prompts.FlashcardContext, prompts.FlashcardTemplate
	}

	requested := count + g.margin
	spec, err := prompts.ComposeGeneration(role, template, topic, requested)
	if err != nil {
		return parser.Result{}, err
	}

	raw, err := g.model.Generate(ctx, spec.Messages())
	if err != nil {
		return parser.Result{}, err
	}

	result := parser.Parse(raw, count, kind)

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.Int("wanted", count),
		zap.Int("requested", requested),
		zap.Int("obtained", result.Len()),
		zap.Int("dropped", result.Dropped),
	}
	if result.Len() < count {
		g.log.Warn("Model returned fewer quiz items than requested", fields...)
	} else {
		g.log.Debug("Quiz items generated", fields...)
	}

	return result, nil
}

// GenerateForMode is Generate keyed by the public quiz mode.
func (g *Generator) GenerateForMode(ctx context.Context, mode models.QuizMode, topic string, count int) (parser.Result, error) {
	return g.Generate(ctx, parser.KindForMode(mode), topic, count)
}
