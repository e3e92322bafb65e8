package platform

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// Filename constants
const (
	MaxFilenameLength = 120
	DefaultExt        = "mp4"
	DefaultName       = "video"
	ExtSeparator      = "."
)

var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// SplitExtension splits path on its last "." into stem and extension.
// A path without "." yields the whole path as stem and an empty extension.
func SplitExtension(path string) (string, string) {
	idx := strings.LastIndex(path, ExtSeparator)
	if idx < 0 {
		return path, ""
	}
	return path[:idx], path[idx+1:]
}

// FormatDuration formats seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// SafeFilename builds a cross-platform safe filename from title and extension (without dot in ext).
func SafeFilename(title, ext string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = DefaultName
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)
	if len(name) > MaxFilenameLength {
		name = name[:MaxFilenameLength]
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ExtSeparator)
	if ext == "" {
		ext = DefaultExt
	}
	return filepath.Clean(name + ExtSeparator + ext)
}

// ContainerFromMime returns the mime subtype ("video/mp4; codecs=..." -> "mp4").
func ContainerFromMime(mime string) string {
	base := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(base, ";"); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	parts := strings.Split(base, "/")
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}

// IsAudioMime reports whether mime describes an audio-only stream.
func IsAudioMime(mime string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "audio/")
}
