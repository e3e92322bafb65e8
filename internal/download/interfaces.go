package download

import (
	"context"
	"time"

	"github.com/ytget/ytfetch/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	Download(ctx context.Context, video *model.Video, stream model.Stream, cfg *model.Config, timeout time.Duration) (string, error)
}
