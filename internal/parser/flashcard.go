package parser

import (
	"strings"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

const (
	flashQuestionMarker = "Question: "
	flashAnswerMarker   = "\nAnswer: "
	pairTerminator      = "\n\n"
)

// parseFlashcards scans for non-overlapping "Question: q\nAnswer: a" pairs.
// The question runs to the first answer marker after it and the answer runs
// to the next blank line or the end of input; both may span lines.
func parseFlashcards(raw string) ([]models.Flashcard, int) {
	cards := []models.Flashcard{}
	dropped := 0

	pos := 0
	for pos < len(raw) {
		qStart := strings.Index(raw[pos:], flashQuestionMarker)
		if qStart < 0 {
			break
		}
		qStart += pos + len(flashQuestionMarker)

		aMarker := strings.Index(raw[qStart:], flashAnswerMarker)
		if aMarker < 0 {
			// No answer marker follows, so no later question can pair up either.
			break
		}
		aMarker += qStart
		aStart := aMarker + len(flashAnswerMarker)

		aEnd := len(raw)
		if idx := strings.Index(raw[aStart:], pairTerminator); idx >= 0 {
			aEnd = aStart + idx
		}

		question := strings.TrimSpace(raw[qStart:aMarker])
		answer := strings.TrimSpace(raw[aStart:aEnd])
		if question == "" || answer == "" {
			dropped++
		} else {
			cards = append(cards, models.Flashcard{Question: question, Answer: answer})
		}

		// The terminator is not consumed, matching a lookahead.
		pos = aEnd
	}

	return cards, dropped
}
