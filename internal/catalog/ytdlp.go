package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/ytdlp/v2/errs"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// YTDLPBackend fetches and transfers streams with github.com/ytget/ytdlp/v2.
type YTDLPBackend struct {
	timeout time.Duration
	log     zerolog.Logger
}

// NewYTDLPBackend creates a backend whose catalog requests are bounded by timeout.
func NewYTDLPBackend(timeout time.Duration, log zerolog.Logger) *YTDLPBackend {
	return &YTDLPBackend{
		timeout: timeout,
		log:     log.With().Str("backend", BackendYTDLP).Logger(),
	}
}

// Fetch implements Fetcher.
//
// The library only exposes the catalog through ResolveURL, so the URL of the
// best format is resolved as well and a failure there fails the fetch. The
// returned video carries no author or duration.
func (b *YTDLPBackend) Fetch(ctx context.Context, url string) (*model.Video, error) {
	b.log.Debug().Str("url", url).Msg("fetching video catalog")
	_, info, err := ytdlp.New().
		WithHTTPClient(newHTTPClient(b.timeout)).
		WithFormat("best", "").
		ResolveURL(ctx, url)
	if err != nil {
		return nil, classifyYTDLPError(err)
	}
	video := videoFromInfo(url, info)
	b.log.Debug().Str("id", video.ID).Int("streams", len(video.Streams)).Msg("catalog fetched")
	return video, nil
}

// Transfer implements Transferer.
func (b *YTDLPBackend) Transfer(ctx context.Context, req TransferRequest) (string, error) {
	if req.Video == nil {
		return "", fmt.Errorf("transfer: video is required")
	}
	if err := platform.CreateDirectoryIfNotExists(req.Directory); err != nil {
		return "", err
	}
	out := filepath.Join(req.Directory, req.Filename)

	d := ytdlp.New().
		WithHTTPClient(newHTTPClient(req.Timeout)).
		WithFormat(fmt.Sprintf("itag=%d", req.Stream.Itag), "").
		WithOutputPath(out)
	if req.Progress != nil {
		d = d.WithProgress(func(p ytdlp.Progress) {
			req.Progress(p.DownloadedSize, p.TotalSize)
		})
	}

	b.log.Debug().Int("itag", req.Stream.Itag).Str("path", out).Msg("transfer started")
	if _, err := d.Download(ctx, req.Video.URL); err != nil {
		return "", classifyYTDLPError(err)
	}
	return out, nil
}

func videoFromInfo(url string, info *ytdlp.VideoInfo) *model.Video {
	video := &model.Video{
		ID:       info.ID,
		URL:      url,
		Title:    info.Title,
		Author:   info.Author,
		Duration: info.Duration,
		Streams:  make([]model.Stream, 0, len(info.Formats)),
	}
	for _, f := range info.Formats {
		video.Streams = append(video.Streams, streamFromYTDLP(f))
	}
	return video
}

func streamFromYTDLP(f ytdlp.Format) model.Stream {
	return toStream(rawFormat{
		Itag:         f.Itag,
		MimeType:     f.MimeType,
		QualityLabel: f.Quality,
		Bitrate:      f.Bitrate,
		Size:         f.Size,
		HasAudio:     mimeHasAudioCodec(f.MimeType),
	})
}

// classifyYTDLPError maps the library's unavailability sentinels onto ErrUnavailable.
func classifyYTDLPError(err error) error {
	for _, target := range []error{errs.ErrVideoUnavailable, errs.ErrPrivate, errs.ErrAgeRestricted, errs.ErrGeoBlocked} {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	return fmt.Errorf("ytdlp: %w", err)
}
