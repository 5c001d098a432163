package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

var (
	videoIDPattern = regexp.MustCompile(`(?:https?:\/\/)?(?:www\.)?(?:youtu\.be\/|(?:www\.)?youtube\.com\/(?:(?:v|e(?:mbed)?)\/|(?:.*[?&]v=)|(?:.*[?&]list=.*[?&]v=)|(?:.*[?&]v=)|(?:.*[?&]vi=)))([a-zA-Z0-9_-]{11})`)

	captionTracksPattern   = regexp.MustCompile(`"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	captionRendererPattern = regexp.MustCompile(`"playerCaptionsTracklistRenderer"\s*:\s*\{(?:.*?,)?\s*"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	captionBaseURLPattern  = regexp.MustCompile(`"baseUrl"\s*:\s*"(.*?)"`)
)

var defaultTranscriptLanguages = []string{"en", "en-US", "en-GB"}

// ResolveVideoID returns the 11-character id embedded in a YouTube URL.
func ResolveVideoID(url string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", models.NewInvalidVideoReferenceError(url)
	}
	return m[1], nil
}

// TranscriptFetcher returns the plain transcript of a video.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

// captionSource is the subset of the transcript API the service calls.
type captionSource interface {
	GetTranscript(videoID string, languages []string) (*ytapi.Transcript, error)
}

type YouTubeService struct {
	httpClient    *http.Client
	transcriptAPI captionSource
	ytClient      *yt.Client
	languages     []string
	timeout       time.Duration
	log           *zap.Logger
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// NewYouTubeService bounds every transcript fetch and metadata lookup by timeout.
func NewYouTubeService(languages []string, timeout time.Duration, log *zap.Logger) *YouTubeService {
	if len(languages) == 0 {
		languages = defaultTranscriptLanguages
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YouTubeService{
		httpClient:    &http.Client{Timeout: timeout},
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
		languages:     languages,
		timeout:       timeout,
		log:           log,
	}
}

// FetchTranscript joins the caption segments of a video with single spaces.
// It tries the preferred languages, then any language, then the timedtext
// track advertised on the watch page.
func (s *YouTubeService) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	transcript, err := s.getTranscript(ctx, videoID, s.languages)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		s.log.Debug("Preferred transcript languages unavailable", zap.String("video_id", videoID), zap.Error(err))
		transcript, err = s.getTranscript(ctx, videoID, nil)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			legacyTranscript, legacyErr := s.getTranscriptViaTimedText(ctx, videoID)
			if legacyErr == nil {
				return legacyTranscript, nil
			}
			return "", fmt.Errorf("no subtitles available via transcript API (%v) and timedtext fallback failed (%w)", err, legacyErr)
		}
	}

	// A track with no entries yields an empty transcript, not an error.
	texts := make([]string, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		texts = append(texts, entry.Text)
	}
	return strings.Join(texts, " "), nil
}

type transcriptResult struct {
	transcript *ytapi.Transcript
	err        error
}

// getTranscript bounds a transcript API call by ctx. The API takes no context
// and its HTTP client has no timeout, so an abandoned call finishes in the
// background and its result is discarded.
func (s *YouTubeService) getTranscript(ctx context.Context, videoID string, languages []string) (*ytapi.Transcript, error) {
	done := make(chan transcriptResult, 1)
	go func() {
		t, err := s.transcriptAPI.GetTranscript(videoID, languages)
		done <- transcriptResult{transcript: t, err: err}
	}()

	select {
	case res := <-done:
		return res.transcript, res.err
	case <-ctx.Done():
		s.log.Warn("Transcript fetch abandoned", zap.String("video_id", videoID), zap.Error(ctx.Err()))
		return nil, ctx.Err()
	}
}

func (s *YouTubeService) getTranscriptViaTimedText(ctx context.Context, videoID string) (string, error) {
	pageURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	body, err := s.get(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch YouTube page: %w", err)
	}
	s.log.Debug("TimedText fallback: fetched watch page", zap.String("video_id", videoID), zap.Int("bytes", len(body)))

	captionURL, err := extractCaptionURL(string(body))
	if err != nil {
		return "", err
	}

	captionReq, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return "", err
	}
	captionBody, err := s.get(captionReq)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}

	transcript, err := parseCaptionsXML(captionBody)
	if err != nil {
		return "", fmt.Errorf("failed to parse captions XML: %w", err)
	}
	return transcript, nil
}

func (s *YouTubeService) get(req *http.Request) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func extractCaptionURL(pageHTML string) (string, error) {
	matches := captionTracksPattern.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		matches = captionRendererPattern.FindStringSubmatch(pageHTML)
		if len(matches) < 2 {
			return "", fmt.Errorf("no captions available for this video")
		}
	}

	urlMatches := captionBaseURLPattern.FindStringSubmatch(matches[1])
	if len(urlMatches) < 2 {
		return "", fmt.Errorf("caption track found but baseUrl missing")
	}

	u := urlMatches[1]
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")
	return u, nil
}

func parseCaptionsXML(data []byte) (string, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Text))
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("captions XML empty")
	}
	return strings.Join(parts, " "), nil
}

// GetVideoMetadata looks up title, channel, thumbnail and duration for a URL.
func (s *YouTubeService) GetVideoMetadata(ctx context.Context, url string) (*models.YouTubeMetadata, error) {
	videoID, err := ResolveVideoID(url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, models.NewError(models.CodeTranscriptUnavailable, "Failed to fetch YouTube video metadata", err)
	}

	meta := &models.YouTubeMetadata{
		VideoID:         videoID,
		Title:           video.Title,
		ChannelName:     video.Author,
		ThumbnailURL:    fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
		DurationSeconds: int(video.Duration.Seconds()),
	}

	var widest uint
	for _, thumb := range video.Thumbnails {
		if thumb.Width > widest {
			widest = thumb.Width
			meta.ThumbnailURL = thumb.URL
		}
	}
	return meta, nil
}
