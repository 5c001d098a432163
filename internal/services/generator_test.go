package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sirine707/ensuite-study-buddy/internal/llm"
	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/parser"
	"github.com/sirine707/ensuite-study-buddy/internal/prompts"
)

// recordingModel returns reply and keeps every message list it receives.
type recordingModel struct {
	reply string
	err   error
	calls [][]models.Message
}

func (m *recordingModel) Generate(ctx context.Context, messages []models.Message) (string, error) {
	m.calls = append(m.calls, messages)
	return m.reply, m.err
}

var _ llm.Model = (*recordingModel)(nil)

func multipleChoiceReply(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Question: Q%d?\n1. a\n2. b\n3. c\n4. d\nAnswer: 2\n\n", i)
	}
	return b.String()
}

func flashcardReply(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Question: Q%d?\nAnswer: A%d\n\n", i, i)
	}
	return b.String()
}

func TestGenerator_AsksForCountPlusMargin(t *testing.T) {
	for _, count := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("count %d", count), func(t *testing.T) {
			model := &recordingModel{reply: multipleChoiceReply(count + 1)}
			gen := NewGenerator(model, DefaultOvergenerationMargin, zap.NewNop())

			result, err := gen.Generate(context.Background(), parser.KindMultipleChoice, "photosynthesis", count)
			require.NoError(t, err)

			require.Len(t, model.calls, 1)
			msgs := model.calls[0]
			require.Len(t, msgs, 2)
			assert.Equal(t, models.RoleSystem, msgs[0].Role)
			assert.Equal(t, prompts.MultipleChoiceContext, msgs[0].Content)
			assert.Contains(t, msgs[1].Content, fmt.Sprintf("Create %d well-structured", count+1))
			assert.Contains(t, msgs[1].Content, fmt.Sprintf("exactly %d questions", count+1))
			assert.Contains(t, msgs[1].Content, "'photosynthesis'")
			assert.NotContains(t, msgs[1].Content, "{")

			assert.Equal(t, count, result.Len())
		})
	}
}

func TestGenerator_FlashcardsUseFlashcardPrompt(t *testing.T) {
	model := &recordingModel{reply: flashcardReply(4)}
	gen := NewGenerator(model, 1, zap.NewNop())

	result, err := gen.GenerateForMode(context.Background(), models.QuizModeFlashCards, "cells", 3)
	require.NoError(t, err)

	msgs := model.calls[0]
	assert.Equal(t, prompts.FlashcardContext, msgs[0].Content)
	assert.True(t, strings.HasPrefix(msgs[1].Content, "Generate 4 question about cells."))
	assert.Equal(t, parser.KindFlashcard, result.Kind)
	require.Len(t, result.Flashcards, 3)
	assert.Equal(t, models.Flashcard{Question: "Q1?", Answer: "A1"}, result.Flashcards[0])
}

func TestGenerator_ShortListIsSuccessAndLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	model := &recordingModel{reply: multipleChoiceReply(2)}
	gen := NewGenerator(model, 1, zap.New(core))

	result, err := gen.Generate(context.Background(), parser.KindMultipleChoice, "topic", 5)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Len())
	assert.Len(t, model.calls, 1)

	entries := logs.FilterMessage("Model returned fewer quiz items than requested").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 5, fields["wanted"])
	assert.EqualValues(t, 2, fields["obtained"])
}

func TestGenerator_ZeroMargin(t *testing.T) {
	model := &recordingModel{reply: multipleChoiceReply(3)}
	gen := NewGenerator(model, 0, zap.NewNop())

	_, err := gen.Generate(context.Background(), parser.KindMultipleChoice, "t", 3)

	require.NoError(t, err)
	assert.Contains(t, model.calls[0][1].Content, "Create 3 well-structured")
}

func TestGenerator_ModelErrorPropagates(t *testing.T) {
	model := &recordingModel{err: models.NewModelUnavailableError(errors.New("refused"))}
	gen := NewGenerator(model, 1, zap.NewNop())

	_, err := gen.Generate(context.Background(), parser.KindFlashcard, "t", 3)

	assert.Equal(t, models.CodeModelUnavailable, models.CodeOf(err))
}
