package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// YouTubeBackend fetches and transfers streams with github.com/kkdai/youtube/v2.
type YouTubeBackend struct {
	timeout time.Duration
	log     zerolog.Logger

	mu     sync.Mutex
	videos map[string]*youtube.Video
}

// NewYouTubeBackend creates a backend whose catalog requests are bounded by timeout.
func NewYouTubeBackend(timeout time.Duration, log zerolog.Logger) *YouTubeBackend {
	return &YouTubeBackend{
		timeout: timeout,
		log:     log.With().Str("backend", BackendYouTube).Logger(),
		videos:  make(map[string]*youtube.Video),
	}
}

func (b *YouTubeBackend) client(timeout time.Duration) *youtube.Client {
	return &youtube.Client{HTTPClient: newHTTPClient(timeout)}
}

// Fetch implements Fetcher.
func (b *YouTubeBackend) Fetch(ctx context.Context, url string) (*model.Video, error) {
	b.log.Debug().Str("url", url).Msg("fetching video catalog")
	v, err := b.client(b.timeout).GetVideoContext(ctx, url)
	if err != nil {
		return nil, classifyYouTubeError(err)
	}

	b.mu.Lock()
	b.videos[v.ID] = v
	b.mu.Unlock()

	video := &model.Video{
		ID:       v.ID,
		URL:      url,
		Title:    v.Title,
		Author:   v.Author,
		Duration: int(v.Duration / time.Second),
		Streams:  make([]model.Stream, 0, len(v.Formats)),
	}
	for _, f := range v.Formats {
		video.Streams = append(video.Streams, toStream(rawFormat{
			Itag:         f.ItagNo,
			MimeType:     f.MimeType,
			QualityLabel: f.QualityLabel,
			Height:       f.Height,
			FPS:          f.FPS,
			Bitrate:      f.Bitrate,
			Size:         f.ContentLength,
			HasAudio:     f.AudioChannels > 0 || mimeHasAudioCodec(f.MimeType),
		}))
	}
	b.log.Debug().Str("id", video.ID).Int("streams", len(video.Streams)).Msg("catalog fetched")
	return video, nil
}

// Transfer implements Transferer.
func (b *YouTubeBackend) Transfer(ctx context.Context, req TransferRequest) (string, error) {
	if req.Video == nil {
		return "", errors.New("transfer: video is required")
	}
	client := b.client(req.Timeout)

	b.mu.Lock()
	v, ok := b.videos[req.Video.ID]
	b.mu.Unlock()
	if !ok {
		var err error
		if v, err = client.GetVideoContext(ctx, req.Video.URL); err != nil {
			return "", classifyYouTubeError(err)
		}
	}

	var format *youtube.Format
	for i := range v.Formats {
		if v.Formats[i].ItagNo == req.Stream.Itag {
			format = &v.Formats[i]
			break
		}
	}
	if format == nil {
		return "", fmt.Errorf("%w: itag %d", ErrStreamNotFound, req.Stream.Itag)
	}

	stream, size, err := client.GetStreamContext(ctx, v, format)
	if err != nil {
		return "", fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := platform.CreateDirectoryIfNotExists(req.Directory); err != nil {
		return "", err
	}
	out := filepath.Join(req.Directory, req.Filename)
	file, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, platform.DefaultFilePermissions)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}

	b.log.Debug().Int("itag", format.ItagNo).Int64("size", size).Str("path", out).Msg("transfer started")
	pw := &progressWriter{total: size, fn: req.Progress}
	if _, err := copyWithContext(ctx, file, teeReader{r: stream, w: pw}); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", out, err)
	}
	return out, nil
}

func classifyYouTubeError(err error) error {
	switch {
	case errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var statusErr *youtube.ErrPlayabiltyStatus
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("fetch video: %w", err)
}
