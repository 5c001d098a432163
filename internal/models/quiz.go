package models

import "fmt"

const (
	MinQuestionCount = 1
	MaxQuestionCount = 100
)

type QuizMode string

const (
	QuizModeMultipleChoice QuizMode = "multiple_choice"
	QuizModeFlashCards     QuizMode = "flash_cards"
)

func (m QuizMode) Valid() bool {
	return m == QuizModeMultipleChoice || m == QuizModeFlashCards
}

// MultipleChoiceQuestion is one parsed quiz item. Options maps the option
// label ("1".."4") to its text. CorrectAnswer is nil when the model omitted
// the answer line; it is not checked against Options.
type MultipleChoiceQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer *string           `json:"correct_answer"`
}

// ValidateQuestionCount enforces the accepted range for a requested count.
func ValidateQuestionCount(n int) error {
	if n < MinQuestionCount || n > MaxQuestionCount {
		return NewValidationError("question_count", fmt.Sprintf("must be between %d and %d", MinQuestionCount, MaxQuestionCount))
	}
	return nil
}
