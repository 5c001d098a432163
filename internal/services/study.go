package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/llm"
	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/parser"
	"github.com/sirine707/ensuite-study-buddy/internal/prompts"
)

// StudyResult is a model reply together with the text it was produced from.
type StudyResult struct {
	Reply         string
	ExtractedText string
}

// StudyService runs the study operations: each one extracts the request's
// sources, builds a prompt and makes exactly one model call.
type StudyService struct {
	extractor *Extractor
	model     llm.Model
	generator *Generator
	log       *zap.Logger
}

func NewStudyService(extractor *Extractor, model llm.Model, generator *Generator, log *zap.Logger) *StudyService {
	return &StudyService{
		extractor: extractor,
		model:     model,
		generator: generator,
		log:       log,
	}
}

// Chat prepends the system persona for chatContext to the caller's history.
func (s *StudyService) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	messages := make([]models.Message, 0, len(req.History)+1)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: prompts.ContextFor(req.Context)})
	messages = append(messages, req.History...)

	return s.model.Generate(ctx, messages)
}

func (s *StudyService) Paraphrase(ctx context.Context, sources models.Sources, tone string) (*StudyResult, error) {
	return s.respond(ctx, sources, prompts.ParaphraseContext, prompts.ParaphraseTemplate(tone))
}

func (s *StudyService) Summarize(ctx context.Context, sources models.Sources, summaryType string) (*StudyResult, error) {
	return s.respond(ctx, sources, prompts.SummarizeContext, prompts.SummaryTemplate(summaryType))
}

func (s *StudyService) Notes(ctx context.Context, sources models.Sources, level string) (*StudyResult, error) {
	return s.respond(ctx, sources, prompts.StudyNotesContext, prompts.NoteTemplate(level))
}

// Quiz uses the extracted text as the bare topic of a generation prompt.
func (s *StudyService) Quiz(ctx context.Context, sources models.Sources, mode models.QuizMode, count int) (parser.Result, error) {
	if err := models.ValidateQuestionCount(count); err != nil {
		return parser.Result{}, err
	}

	topic, err := s.extractor.Extract(ctx, sources)
	if err != nil {
		return parser.Result{}, err
	}

	return s.generator.GenerateForMode(ctx, mode, topic, count)
}

func (s *StudyService) respond(ctx context.Context, sources models.Sources, role, template string) (*StudyResult, error) {
	text, err := s.extractor.Extract(ctx, sources)
	if err != nil {
		return nil, err
	}

	spec := prompts.Compose(role, template, text)
	reply, err := s.model.Generate(ctx, spec.Messages())
	if err != nil {
		return nil, err
	}

	return &StudyResult{Reply: reply, ExtractedText: text}, nil
}
