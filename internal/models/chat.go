package models

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the conversation sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PromptSpec is the input to a single model call.
type PromptSpec struct {
	RoleInstruction string
	TaskTemplate    string
	Payload         string

	// Standalone marks a rendered generation template that is sent as the
	// whole user message, without the payload separator.
	Standalone bool
}

// UserMessage is the task template followed by a newline and the payload.
func (p PromptSpec) UserMessage() string {
	if p.Standalone {
		return p.TaskTemplate
	}
	return p.TaskTemplate + "\n" + p.Payload
}

// Messages returns the ordered (system, user) pair.
func (p PromptSpec) Messages() []Message {
	return []Message{
		{Role: RoleSystem, Content: p.RoleInstruction},
		{Role: RoleUser, Content: p.UserMessage()},
	}
}

type ChatRequest struct {
	History []Message `json:"history"`
	Context string    `json:"context"`
}

type DataResponse struct {
	Data          interface{} `json:"data"`
	ExtractedText *string     `json:"extracted_text,omitempty"`
}
