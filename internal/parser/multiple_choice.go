package parser

import (
	"regexp"
	"strings"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

const questionMarker = "Question:"

var (
	questionTextPattern = regexp.MustCompile(`(?s)(.+?)\n1\.`)
	optionPattern       = regexp.MustCompile(`(\d)\.\s(.+)`)
	answerPattern       = regexp.MustCompile(`Answer:\s*(\d)`)
)

func parseMultipleChoice(raw string) ([]models.MultipleChoiceQuestion, int) {
	questions := []models.MultipleChoiceQuestion{}
	dropped := 0

	chunks := strings.Split(strings.TrimSpace(raw), questionMarker)
	// Anything before the first marker is preamble.
	for _, chunk := range chunks[1:] {
		q, ok := parseQuestionChunk(chunk)
		if !ok {
			dropped++
			continue
		}
		questions = append(questions, q)
	}

	return questions, dropped
}

func parseQuestionChunk(chunk string) (models.MultipleChoiceQuestion, bool) {
	m := questionTextPattern.FindStringSubmatch(chunk)
	if m == nil {
		return models.MultipleChoiceQuestion{}, false
	}

	options := make(map[string]string)
	for _, opt := range optionPattern.FindAllStringSubmatch(chunk, -1) {
		options[opt[1]] = opt[2]
	}

	q := models.MultipleChoiceQuestion{
		Question: strings.TrimSpace(m[1]),
		Options:  options,
	}
	if a := answerPattern.FindStringSubmatch(chunk); a != nil {
		answer := strings.TrimSpace(a[1])
		q.CorrectAnswer = &answer
	}

	return q, true
}
