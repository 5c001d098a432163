package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/prompts"
)

func newTestStudyService(model *recordingModel, transcripts TranscriptSource) *StudyService {
	log := zap.NewNop()
	return NewStudyService(newTestExtractor(transcripts), model, NewGenerator(model, 1, log), log)
}

func TestStudyService_Chat(t *testing.T) {
	model := &recordingModel{reply: "Hi there"}
	svc := newTestStudyService(model, &stubTranscripts{})

	history := []models.Message{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hey"},
		{Role: models.RoleUser, Content: "explain mitosis"},
	}
	reply, err := svc.Chat(context.Background(), models.ChatRequest{History: history, Context: prompts.ContextStudyNotes})

	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)
	msgs := model.calls[0]
	require.Len(t, msgs, 4)
	assert.Equal(t, models.Message{Role: models.RoleSystem, Content: prompts.StudyNotesContext}, msgs[0])
	assert.Equal(t, history, msgs[1:])
}

func TestStudyService_ChatUnknownContextFallsBack(t *testing.T) {
	model := &recordingModel{reply: "ok"}
	svc := newTestStudyService(model, &stubTranscripts{})

	_, err := svc.Chat(context.Background(), models.ChatRequest{Context: "pirate"})

	require.NoError(t, err)
	assert.Equal(t, prompts.StudyBuddyContext, model.calls[0][0].Content)
}

func TestStudyService_ContentOperations(t *testing.T) {
	sources := models.Sources{
		models.TextSource{Text: " and text"},
		models.FileSource{Data: []byte("file body"), Extension: "txt"},
	}

	tests := []struct {
		name     string
		run      func(*StudyService) (*StudyResult, error)
		role     string
		template string
	}{
		{
			name: "paraphrase",
			run: func(s *StudyService) (*StudyResult, error) {
				return s.Paraphrase(context.Background(), sources, prompts.ToneFormal)
			},
			role:     prompts.ParaphraseContext,
			template: prompts.ParaphraseTemplate(prompts.ToneFormal),
		},
		{
			name: "summarize",
			run: func(s *StudyService) (*StudyResult, error) {
				return s.Summarize(context.Background(), sources, prompts.SummaryBrief)
			},
			role:     prompts.SummarizeContext,
			template: prompts.SummaryTemplate(prompts.SummaryBrief),
		},
		{
			name: "notes",
			run: func(s *StudyService) (*StudyResult, error) {
				return s.Notes(context.Background(), sources, prompts.NoteLevelKeyConcepts)
			},
			role:     prompts.StudyNotesContext,
			template: prompts.NoteTemplate(prompts.NoteLevelKeyConcepts),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := &recordingModel{reply: "model output"}
			svc := newTestStudyService(model, &stubTranscripts{})

			res, err := tc.run(svc)

			require.NoError(t, err)
			assert.Equal(t, "model output", res.Reply)
			assert.Equal(t, "file body and text", res.ExtractedText)
			require.Len(t, model.calls, 1)
			assert.Equal(t, []models.Message{
				{Role: models.RoleSystem, Content: tc.role},
				{Role: models.RoleUser, Content: tc.template + "\nfile body and text"},
			}, model.calls[0])
		})
	}
}

func TestStudyService_ExtractionErrorSkipsModel(t *testing.T) {
	model := &recordingModel{reply: "unused"}
	svc := newTestStudyService(model, &stubTranscripts{err: errors.New("no captions")})

	_, err := svc.Summarize(context.Background(), models.Sources{models.VideoSource{URL: "https://youtu.be/aaaaaaaaaaa"}}, prompts.SummaryNeutral)

	assert.Equal(t, models.CodeTranscriptUnavailable, models.CodeOf(err))
	assert.Empty(t, model.calls)
}

func TestStudyService_Quiz(t *testing.T) {
	model := &recordingModel{reply: multipleChoiceReply(4)}
	svc := newTestStudyService(model, &stubTranscripts{})

	result, err := svc.Quiz(context.Background(), models.Sources{models.TextSource{Text: "World War II"}}, models.QuizModeMultipleChoice, 3)

	require.NoError(t, err)
	require.Len(t, result.Questions, 3)
	assert.Contains(t, model.calls[0][1].Content, "'World War II'")
	assert.Contains(t, model.calls[0][1].Content, "Create 4 well-structured")
}

func TestStudyService_QuizRejectsBadCount(t *testing.T) {
	model := &recordingModel{}
	svc := newTestStudyService(model, &stubTranscripts{})

	for _, n := range []int{0, -1, 101} {
		_, err := svc.Quiz(context.Background(), models.Sources{models.TextSource{Text: "x"}}, models.QuizModeFlashCards, n)
		assert.Equal(t, models.CodeValidation, models.CodeOf(err))
	}
	assert.Empty(t, model.calls)
}
