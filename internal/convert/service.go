package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// FFmpeg constants for mp3 transcoding
const (
	AudioCodec   = "libmp3lame"
	AudioQuality = "2" // VBR ~190kbps

	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "convert-"
	OutputExtension     = "mp3"
)

// ErrSameFile is returned when input and output resolve to the same path.
var ErrSameFile = errors.New("input and output are the same file")

// Service handles audio conversion operations
type Service struct {
	runner Runner
	log    zerolog.Logger

	tasksMutex sync.Mutex
	onUpdate   func(*model.ConversionTask)
}

var _ Converter = (*Service)(nil)

// NewService creates a conversion service. A nil runner uses ExecRunner.
func NewService(runner Runner, log zerolog.Logger) *Service {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Service{
		runner: runner,
		log:    log,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// OutputPath derives the default mp3 path for inputPath.
func OutputPath(inputPath string) string {
	stem, _ := platform.SplitExtension(inputPath)
	return stem + platform.ExtSeparator + OutputExtension
}

// Convert transcodes inputPath into an mp3 at outputPath (derived from the
// input when empty) and removes inputPath once the output is complete. On
// failure the input and any partial output are left in place.
func (s *Service) Convert(ctx context.Context, inputPath, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = OutputPath(inputPath)
	}
	if !platform.IsRegularFile(inputPath) {
		return "", fmt.Errorf("input file does not exist: %s", inputPath)
	}
	if same, err := samePath(inputPath, outputPath); err != nil {
		return "", err
	} else if same {
		return "", fmt.Errorf("%w: %s", ErrSameFile, inputPath)
	}

	task := &model.ConversionTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		Status:     model.TaskStatusStarting,
		StartedAt:  time.Now(),
	}
	s.notifyUpdate(task)

	duration, err := s.probeDuration(ctx, inputPath)
	if err != nil {
		s.log.Debug().Err(err).Str("input", inputPath).Msg("duration unknown, progress disabled")
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusConverting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	parser := &progressParser{
		duration: duration,
		onUpdate: func(progress float64) {
			s.tasksMutex.Lock()
			task.Progress = progress
			task.Percent = int(progress * 100)
			s.tasksMutex.Unlock()
			s.notifyUpdate(task)
		},
	}

	s.log.Debug().Str("task", task.ID).Str("input", inputPath).Str("output", outputPath).Msg("conversion started")
	err = s.runner.Run(ctx, parser, FFmpegCommand, BuildFFmpegArgs(inputPath, outputPath)...)

	s.tasksMutex.Lock()
	switch {
	case err != nil && errors.Is(ctx.Err(), context.Canceled):
		task.Status = model.TaskStatusStopped
		task.LastError = ctx.Err().Error()
	case err != nil:
		task.Status = model.TaskStatusError
		if tail := parser.Tail(); tail != "" {
			err = fmt.Errorf("%w: %s", err, tail)
		}
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return "", fmt.Errorf("transcode %s: %w", inputPath, err)
	}

	if err := os.Remove(inputPath); err != nil {
		s.log.Warn().Err(err).Str("input", inputPath).Msg("failed to remove source after conversion")
	}
	s.log.Debug().Str("task", task.ID).Str("output", outputPath).Msg("conversion completed")
	return outputPath, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",                            // Overwrite output file
		"-i", inputPath,                 // Input file
		"-vn",                           // Drop video
		"-acodec", AudioCodec,           // Audio codec
		"-q:a", AudioQuality,            // VBR quality
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats",
		outputPath,
	}
}

// probeDuration gets the duration of a media file in seconds using ffprobe
func (s *Service) probeDuration(ctx context.Context, filePath string) (float64, error) {
	output, err := s.runner.Output(ctx, FFprobeCommand,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

func samePath(a, b string) (bool, error) {
	absA, err := platform.AbsPath(a)
	if err != nil {
		return false, err
	}
	absB, err := platform.AbsPath(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

// generateTaskID generates a time-ordered unique task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%s%d", TaskIDPrefix, time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
