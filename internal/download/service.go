package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/ytfetch/internal/catalog"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// TimestampLayout renders YYYY_MM_DD_HH_MM_SS.
const TimestampLayout = "2006_01_02_15_04_05"

// TaskIDPrefix prefixes download task identifiers.
const TaskIDPrefix = "download-"

// Service handles download operations
type Service struct {
	transferer catalog.Transferer
	log        zerolog.Logger
	now        func() time.Time

	tasksMutex sync.Mutex
	onUpdate   func(*model.DownloadTask) // callback for progress output
}

var _ Downloader = (*Service)(nil)

// NewService creates a new download service
func NewService(transferer catalog.Transferer, log zerolog.Logger) *Service {
	return &Service{
		transferer: transferer,
		log:        log,
		now:        time.Now,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// BuildFilename inserts the timestamp between the stem and the extension of
// defaultFilename: "clip.mp4" becomes "clip_2024_03_05_07_08_09.mp4".
func BuildFilename(defaultFilename string, at time.Time) string {
	stem, ext := platform.SplitExtension(defaultFilename)
	name := stem + "_" + at.Format(TimestampLayout)
	if ext == "" {
		return name
	}
	return name + platform.ExtSeparator + ext
}

// Download transfers stream into cfg.OutputDirPath and returns the path the
// backend wrote. Errors are returned without retrying.
func (s *Service) Download(ctx context.Context, video *model.Video, stream model.Stream, cfg *model.Config, timeout time.Duration) (string, error) {
	if video == nil {
		return "", errors.New("download: video is required")
	}
	if cfg == nil || cfg.OutputDirPath == "" {
		return "", errors.New("download: output directory is not configured")
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       video.URL,
		Stream:    stream,
		Directory: cfg.OutputDirPath,
		Filename:  BuildFilename(video.DefaultFilename(stream), s.now()),
		Timeout:   timeout,
		Status:    model.TaskStatusStarting,
		ETASec:    -1,
		StartedAt: s.now(),
		Title:     video.Title,
		FileSize:  stream.Size,
	}

	s.notifyUpdate(task)

	s.setStatus(task, model.TaskStatusDownloading)
	s.log.Debug().
		Str("task", task.ID).
		Str("stream", stream.Describe()).
		Str("destination", task.Destination()).
		Dur("timeout", timeout).
		Msg("download started")

	out, err := s.transferer.Transfer(ctx, catalog.TransferRequest{
		Video:     video,
		Stream:    stream,
		Directory: task.Directory,
		Filename:  task.Filename,
		Timeout:   timeout,
		Progress: func(downloaded, total int64) {
			s.updateTaskProgress(task, downloaded, total)
		},
	})

	s.tasksMutex.Lock()
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			task.Status = model.TaskStatusStopped
		} else {
			task.Status = model.TaskStatusError
		}
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		task.OutputPath = out
	}
	task.FinishedAt = s.now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	if err != nil {
		s.log.Debug().Str("task", task.ID).Err(err).Msg("download failed")
		return "", fmt.Errorf("download %s: %w", task.Filename, err)
	}
	s.log.Debug().Str("task", task.ID).Str("path", out).Msg("download completed")
	return out, nil
}

func (s *Service) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// updateTaskProgress updates task progress from the backend's byte counters
func (s *Service) updateTaskProgress(task *model.DownloadTask, downloaded, total int64) {
	s.tasksMutex.Lock()
	task.Downloaded = downloaded
	if total > 0 {
		task.FileSize = total
		percent := float64(downloaded) / float64(total) * 100
		task.Percent = int(percent)
		task.Progress = percent / 100.0

		if elapsed := s.now().Sub(task.StartedAt).Seconds(); elapsed > 0 && downloaded > 0 {
			rate := float64(downloaded) / elapsed
			task.ETASec = int(float64(total-downloaded) / rate)
		}
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%s%d", TaskIDPrefix, time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
