package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

// Nested form XObjects are followed at most this deep when looking for images.
const maxXObjectDepth = 8

type FileExtractService struct {
	log *zap.Logger
}

func NewFileExtractService(log *zap.Logger) *FileExtractService {
	return &FileExtractService{log: log}
}

// ExtractText returns the text of an uploaded txt or pdf file.
func (s *FileExtractService) ExtractText(data []byte, extension string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))

	switch ext {
	case "txt":
		return s.extractTXT(data)
	case "pdf":
		return s.extractPDF(data)
	default:
		return "", models.NewUnsupportedFormatError(ext)
	}
}

func (s *FileExtractService) extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", models.NewDecodingError("Text file is not valid UTF-8", nil)
	}
	return string(data), nil
}

// extractPDF walks pages in order and rejects the document at the first page
// that carries an image.
func (s *FileExtractService) extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = models.NewDecodingError("Failed to read PDF", fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", models.NewDecodingError("Failed to open PDF", err)
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		if hasImage(page.Resources(), 0) {
			s.log.Info("Rejecting PDF with embedded image", zap.Int("page", pageIndex), zap.Int("pages", totalPage))
			return "", models.NewUnextractableContentError(pageIndex)
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", models.NewDecodingError(fmt.Sprintf("Failed to read text on PDF page %d", pageIndex), err)
		}
		b.WriteString(content)
	}

	return b.String(), nil
}

func hasImage(resources pdf.Value, depth int) bool {
	if depth > maxXObjectDepth || resources.IsNull() {
		return false
	}

	xobjects := resources.Key("XObject")
	for _, name := range xobjects.Keys() {
		xobj := xobjects.Key(name)
		switch xobj.Key("Subtype").Name() {
		case "Image":
			return true
		case "Form":
			if hasImage(xobj.Key("Resources"), depth+1) {
				return true
			}
		}
	}
	return false
}
