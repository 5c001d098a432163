package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

// TranscriptSource resolves a video URL to its transcript.
type TranscriptSource interface {
	Get(ctx context.Context, url string) (string, error)
}

// Extractor turns the sources of one request into a single text blob.
type Extractor struct {
	files       *FileExtractService
	transcripts TranscriptSource
	log         *zap.Logger
}

func NewExtractor(files *FileExtractService, transcripts TranscriptSource, log *zap.Logger) *Extractor {
	return &Extractor{files: files, transcripts: transcripts, log: log}
}

// Extract concatenates the text of every source in file, video, text order
// with no separators. No sources yields an empty string.
func (e *Extractor) Extract(ctx context.Context, sources models.Sources) (string, error) {
	var b strings.Builder

	for _, src := range sources.Ordered() {
		var (
			text string
			err  error
		)

		switch s := src.(type) {
		case models.FileSource:
			text, err = e.files.ExtractText(s.Data, s.Extension)
		case models.VideoSource:
			text, err = e.transcript(ctx, s.URL)
		case models.TextSource:
			text = s.Text
		default:
			err = fmt.Errorf("unknown content source %T", src)
		}
		if err != nil {
			e.log.Info("Content extraction failed", zap.Stringer("source", models.KindOf(src)), zap.Error(err))
			return "", err
		}

		b.WriteString(text)
	}

	return b.String(), nil
}

func (e *Extractor) transcript(ctx context.Context, url string) (string, error) {
	text, err := e.transcripts.Get(ctx, url)
	if err == nil {
		return text, nil
	}
	if models.CodeOf(err) == models.CodeInvalidVideoReference {
		return "", err
	}
	return "", models.NewTranscriptUnavailableError(err)
}
