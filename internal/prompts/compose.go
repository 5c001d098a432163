// Package prompts holds the instruction templates and builds the message
// pair sent to the model.
package prompts

import (
	"regexp"
	"strconv"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

const (
	ParamTopic         = "topic"
	ParamQuestionCount = "question_count"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Compose builds a prompt whose user message is template, a newline, then payload.
func Compose(roleInstruction, taskTemplate, payload string) models.PromptSpec {
	return models.PromptSpec{
		RoleInstruction: roleInstruction,
		TaskTemplate:    taskTemplate,
		Payload:         payload,
	}
}

// Render substitutes every {name} placeholder in template from params.
// A placeholder without a value is a caller error.
func Render(template string, params map[string]string) (string, error) {
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := params[m[1]]; !ok {
			return "", models.NewMissingPlaceholderError(m[1])
		}
	}

	return placeholderPattern.ReplaceAllStringFunc(template, func(ph string) string {
		return params[ph[1:len(ph)-1]]
	}), nil
}

// ComposeGeneration renders a topic/count template into a standalone prompt.
// count is placed into the template as given; callers pass the inflated ask.
func ComposeGeneration(roleInstruction, template, topic string, count int) (models.PromptSpec, error) {
	rendered, err := Render(template, map[string]string{
		ParamTopic:         topic,
		ParamQuestionCount: strconv.Itoa(count),
	})
	if err != nil {
		return models.PromptSpec{}, err
	}

	return models.PromptSpec{
		RoleInstruction: roleInstruction,
		TaskTemplate:    rendered,
		Standalone:      true,
	}, nil
}
