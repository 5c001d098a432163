package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/services"
)

// VideoMetadataSource looks up display metadata for a YouTube URL.
type VideoMetadataSource interface {
	GetVideoMetadata(ctx context.Context, url string) (*models.YouTubeMetadata, error)
}

type ContentHandler struct {
	videos      VideoMetadataSource
	maxUploadMB int
	log         *zap.Logger
}

func NewContentHandler(videos VideoMetadataSource, maxUploadMB int, log *zap.Logger) *ContentHandler {
	return &ContentHandler{videos: videos, maxUploadMB: maxUploadMB, log: log}
}

func (h *ContentHandler) ValidateYouTube(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateYouTubeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(string(models.CodeValidation), "Invalid request body", r))
		return
	}

	videoID, err := services.ResolveVideoID(req.URL)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	metadata, err := h.videos.GetVideoMetadata(r.Context(), req.URL)
	if err != nil {
		// The id is valid; only the display details are missing.
		h.log.Warn("YouTube metadata lookup failed", zap.String("video_id", videoID), zap.Error(err))
		metadata = &models.YouTubeMetadata{
			VideoID:      videoID,
			Title:        "YouTube Video",
			ChannelName:  "YouTube Channel",
			ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"video_id": videoID,
		"metadata": metadata,
		"valid":    true,
	})
}

func (h *ContentHandler) SupportedFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats":       models.SupportedFormats,
		"max_upload_mb": h.maxUploadMB,
	})
}
