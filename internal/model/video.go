package model

import "github.com/ytget/ytfetch/internal/platform"

// Video is a fetched video with its ordered stream catalog.
type Video struct {
	ID       string
	URL      string
	Title    string
	Author   string
	Duration int // seconds
	Streams  []Stream
}

// DefaultFilename returns the filename a stream is saved under before any
// timestamp is added: the sanitized title plus the stream container.
func (v *Video) DefaultFilename(s Stream) string {
	return platform.SafeFilename(v.Title, s.Container)
}

// Length returns the duration formatted as HH:MM:SS.
func (v *Video) Length() string {
	return platform.FormatDuration(v.Duration)
}
