package models

import "strings"

// ContentSource is one input the extractor knows how to turn into text.
// The set of implementations is closed: FileSource, VideoSource and TextSource.
type ContentSource interface {
	sourceKind() SourceKind
}

type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceVideo
	SourceText
)

func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceVideo:
		return "video"
	case SourceText:
		return "text"
	default:
		return "unknown"
	}
}

type FileSource struct {
	Data      []byte
	Extension string // "txt" or "pdf"; a leading dot is tolerated
}

type VideoSource struct {
	URL string
}

type TextSource struct {
	Text string
}

func (FileSource) sourceKind() SourceKind  { return SourceFile }
func (VideoSource) sourceKind() SourceKind { return SourceVideo }
func (TextSource) sourceKind() SourceKind  { return SourceText }

// KindOf reports which variant src is.
func KindOf(src ContentSource) SourceKind {
	return src.sourceKind()
}

// Sources is the content a caller supplied for one request.
type Sources []ContentSource

// Ordered returns the non-empty sources in extraction order: file, video,
// text. Sources of the same kind keep their relative order.
func (s Sources) Ordered() []ContentSource {
	out := make([]ContentSource, 0, len(s))
	for _, kind := range []SourceKind{SourceFile, SourceVideo, SourceText} {
		for _, src := range s {
			if src != nil && src.sourceKind() == kind && !isBlank(src) {
				out = append(out, src)
			}
		}
	}
	return out
}

func (s Sources) Empty() bool {
	return len(s.Ordered()) == 0
}

func isBlank(src ContentSource) bool {
	switch v := src.(type) {
	case FileSource:
		return len(v.Data) == 0
	case VideoSource:
		return strings.TrimSpace(v.URL) == ""
	case TextSource:
		return v.Text == ""
	}
	return true
}

// FileExtension returns the lower-cased extension after the last dot of name.
func FileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

type ValidateYouTubeRequest struct {
	URL string `json:"url"`
}

type YouTubeMetadata struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	ChannelName     string `json:"channel_name"`
	ThumbnailURL    string `json:"thumbnail_url"`
	DurationSeconds int    `json:"duration_seconds"`
}

type SupportedFormat struct {
	Extension   string `json:"extension"`
	MimeType    string `json:"mime_type"`
	Description string `json:"description"`
}

var SupportedFormats = []SupportedFormat{
	{Extension: ".pdf", MimeType: "application/pdf", Description: "PDF Document (text only, no images)"},
	{Extension: ".txt", MimeType: "text/plain", Description: "Plain Text (UTF-8)"},
}
