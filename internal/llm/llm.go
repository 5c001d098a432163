// Package llm is the boundary to the language model. The rest of the
// service only sees Model: messages in, text out.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

type Model interface {
	Generate(ctx context.Context, messages []models.Message) (string, error)
}

// ModelFunc adapts a plain function to Model.
type ModelFunc func(ctx context.Context, messages []models.Message) (string, error)

func (f ModelFunc) Generate(ctx context.Context, messages []models.Message) (string, error) {
	return f(ctx, messages)
}

// classify wraps a provider error as MODEL_TIMEOUT or MODEL_UNAVAILABLE.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.NewModelTimeoutError(err)
	}
	return models.NewModelUnavailableError(err)
}

// Limited caps the number of in-flight calls to the wrapped model.
type Limited struct {
	next     Model
	rateChan chan struct{} // token bucket
	wait     time.Duration
}

func NewLimited(next Model, concurrentReqs int) *Limited {
	if concurrentReqs < 1 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}
	return &Limited{next: next, rateChan: rateChan, wait: 5 * time.Minute}
}

func (l *Limited) Generate(ctx context.Context, messages []models.Message) (string, error) {
	select {
	case <-l.rateChan:
	case <-ctx.Done():
		return "", classify(ctx, ctx.Err())
	case <-time.After(l.wait):
		return "", models.NewModelUnavailableError(fmt.Errorf("timeout waiting for model rate slot"))
	}
	defer func() { l.rateChan <- struct{}{} }()

	return l.next.Generate(ctx, messages)
}

// Timed bounds every call with its own deadline.
type Timed struct {
	next    Model
	timeout time.Duration
}

func NewTimed(next Model, timeout time.Duration) *Timed {
	return &Timed{next: next, timeout: timeout}
}

func (t *Timed) Generate(ctx context.Context, messages []models.Message) (string, error) {
	if t.timeout <= 0 {
		return t.next.Generate(ctx, messages)
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.next.Generate(ctx, messages)
	if err != nil && models.CodeOf(err) == models.CodeInternal {
		return "", classify(ctx, err)
	}
	return out, err
}

// Logged records each call's size and duration.
type Logged struct {
	next Model
	name string
	log  *zap.Logger
}

func NewLogged(next Model, name string, log *zap.Logger) *Logged {
	return &Logged{next: next, name: name, log: log}
}

func (l *Logged) Generate(ctx context.Context, messages []models.Message) (string, error) {
	start := time.Now()
	out, err := l.next.Generate(ctx, messages)
	fields := []zap.Field{
		zap.String("model", l.name),
		zap.Int("messages", len(messages)),
		zap.Int("prompt_chars", promptChars(messages)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		l.log.Error("Model call failed", append(fields, zap.Error(err))...)
		return "", err
	}
	l.log.Debug("Model call completed", append(fields, zap.Int("response_chars", len(out)))...)
	return out, nil
}

func promptChars(messages []models.Message) int {
	n := 0
	for _, m := range messages {
		n += len(m.Content)
	}
	return n
}

// cleanResponse strips reasoning blocks some local models emit before the answer.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "<think>"); start != -1 {
		if end := strings.Index(s, "</think>"); end > start {
			s = s[:start] + s[end+len("</think>"):]
		}
	}
	return strings.TrimSpace(s)
}
