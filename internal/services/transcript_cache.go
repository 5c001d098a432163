package services

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTranscriptCacheSize = 128

// TranscriptCache memoizes transcripts by the exact URL the caller supplied.
// Only successful fetches are stored; concurrent misses for one URL share a
// single fetch.
type TranscriptCache struct {
	fetcher TranscriptFetcher
	entries *lru.Cache[string, string]
	group   singleflight.Group
	log     *zap.Logger
}

func NewTranscriptCache(fetcher TranscriptFetcher, size int, log *zap.Logger) (*TranscriptCache, error) {
	if size <= 0 {
		size = DefaultTranscriptCacheSize
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript cache: %w", err)
	}
	return &TranscriptCache{
		fetcher: fetcher,
		entries: entries,
		log:     log,
	}, nil
}

// Get returns the transcript for url, fetching it on a miss.
// The shared fetch does not inherit the caller's cancellation, so one caller
// giving up does not fail the others waiting on the same URL. Each caller
// still returns as soon as its own ctx is done.
func (c *TranscriptCache) Get(ctx context.Context, url string) (string, error) {
	if transcript, ok := c.entries.Get(url); ok {
		c.log.Debug("Transcript cache hit", zap.String("url", url))
		return transcript, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(url, func() (interface{}, error) {
		if transcript, ok := c.entries.Get(url); ok {
			return transcript, nil
		}

		videoID, err := ResolveVideoID(url)
		if err != nil {
			return "", err
		}

		transcript, err := c.fetcher.FetchTranscript(fetchCtx, videoID)
		if err != nil {
			return "", err
		}

		c.entries.Add(url, transcript)
		return transcript, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			c.log.Warn("Transcript fetch failed", zap.String("url", url), zap.Bool("shared", res.Shared), zap.Error(res.Err))
			return "", res.Err
		}
		c.log.Debug("Transcript cache miss", zap.String("url", url), zap.Bool("shared", res.Shared))
		return res.Val.(string), nil
	case <-ctx.Done():
		c.log.Debug("Transcript wait abandoned", zap.String("url", url), zap.Error(ctx.Err()))
		return "", ctx.Err()
	}
}

func (c *TranscriptCache) Len() int {
	return c.entries.Len()
}

func (c *TranscriptCache) Purge() {
	c.entries.Purge()
}
