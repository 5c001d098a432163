package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

const (
	fieldFile       = "file"
	fieldYouTubeURL = "youtube_url"
	fieldText       = "text"
)

// readSources parses the form body and collects the optional file,
// youtube_url and text sources. On failure it writes the response and
// returns false.
func readSources(w http.ResponseWriter, r *http.Request, maxBytes int64) (models.Sources, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "Request body exceeds the upload limit", r))
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResp(string(models.CodeValidation), "Invalid form body", r))
		return nil, false
	}

	var sources models.Sources

	if r.MultipartForm != nil {
		file, header, err := r.FormFile(fieldFile)
		switch {
		case err == nil:
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResp(string(models.CodeValidation), "Failed to read uploaded file", r))
				return nil, false
			}
			sources = append(sources, models.FileSource{Data: data, Extension: models.FileExtension(header.Filename)})
		case !errors.Is(err, http.ErrMissingFile):
			writeJSON(w, http.StatusBadRequest, errorResp(string(models.CodeValidation), "Invalid file upload", r))
			return nil, false
		}
	}

	if url := strings.TrimSpace(r.PostFormValue(fieldYouTubeURL)); url != "" {
		sources = append(sources, models.VideoSource{URL: url})
	}
	if text := r.PostFormValue(fieldText); text != "" {
		sources = append(sources, models.TextSource{Text: text})
	}

	return sources, true
}
