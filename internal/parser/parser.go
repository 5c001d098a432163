// Package parser recovers typed quiz records from free-form model output.
//
// Parsing never fails: malformed groups are dropped and the result is cut
// to the requested count, so a short list is a normal outcome.
package parser

import "github.com/sirine707/ensuite-study-buddy/internal/models"

type OutputKind string

const (
	KindMultipleChoice OutputKind = "multiple_choice"
	KindFlashcard      OutputKind = "flashcard"
)

// KindForMode maps a quiz mode onto the layout the model is asked to produce.
func KindForMode(mode models.QuizMode) OutputKind {
	if mode == models.QuizModeFlashCards {
		return KindFlashcard
	}
	return KindMultipleChoice
}

// Result holds the records for one kind. Dropped counts the groups that
// were found but could not be parsed; it never includes truncated surplus.
type Result struct {
	Kind       OutputKind
	Questions  []models.MultipleChoiceQuestion
	Flashcards []models.Flashcard
	Dropped    int
}

// Len is the number of records for the result's kind.
func (r Result) Len() int {
	if r.Kind == KindFlashcard {
		return len(r.Flashcards)
	}
	return len(r.Questions)
}

// Items returns the records as a value suitable for a JSON response.
func (r Result) Items() interface{} {
	if r.Kind == KindFlashcard {
		return r.Flashcards
	}
	return r.Questions
}

// Parse dispatches raw to the parser for kind and truncates to count.
func Parse(raw string, count int, kind OutputKind) Result {
	if kind == KindFlashcard {
		cards, dropped := parseFlashcards(raw)
		return Result{Kind: kind, Flashcards: truncate(cards, count), Dropped: dropped}
	}
	questions, dropped := parseMultipleChoice(raw)
	return Result{Kind: KindMultipleChoice, Questions: truncate(questions, count), Dropped: dropped}
}

// MultipleChoice parses the "Question: / 1. .. 4. / Answer:" layout.
func MultipleChoice(raw string, count int) []models.MultipleChoiceQuestion {
	return Parse(raw, count, KindMultipleChoice).Questions
}

// Flashcards parses the "Question: / Answer:" pair layout.
func Flashcards(raw string, count int) []models.Flashcard {
	return Parse(raw, count, KindFlashcard).Flashcards
}

func truncate[T any](items []T, count int) []T {
	if count <= 0 {
		return []T{}
	}
	if len(items) > count {
		return items[:count]
	}
	return items
}
