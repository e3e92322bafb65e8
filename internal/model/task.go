package model

import (
	"fmt"
	"path/filepath"
	"time"
)

// DownloadTask represents a single download
type DownloadTask struct {
	ID         string
	URL        string
	Stream     Stream
	Directory  string        // destination directory
	Filename   string        // destination filename inside Directory
	Timeout    time.Duration // transport timeout passed to the backend
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	ETASec     int     // ETA in seconds, -1 if unknown
	LastError  string  // last error message if any
	OutputPath string  // path reported by the backend
	StartedAt  time.Time
	FinishedAt time.Time
	Title      string // video title
	FileSize   int64  // total size in bytes, 0 if unknown
	Downloaded int64  // bytes written so far
}

// ConversionTask represents a single audio conversion
type ConversionTask struct {
	ID         string
	InputPath  string
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Destination returns the path the task is asked to write to.
func (dt *DownloadTask) Destination() string {
	return filepath.Join(dt.Directory, dt.Filename)
}
