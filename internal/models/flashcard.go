package models

// Flashcard is one parsed question/answer pair. Both fields are trimmed and
// non-empty. The capitalised JSON keys are the wire format clients consume.
type Flashcard struct {
	Question string `json:"Question"`
	Answer   string `json:"Answer"`
}
