package model

import (
	"strconv"
	"strings"
)

// Stream describes one downloadable rendition of a video.
//
// Resolution and AudioBitrate keep the labels the catalog reports ("720p",
// "128kbps") because selection compares them verbatim.
type Stream struct {
	Itag         int
	MimeType     string
	Container    string // mime subtype, e.g. "mp4" or "webm"
	Resolution   string // e.g. "720p", empty for audio-only streams
	FPS          int
	AudioBitrate string // e.g. "128kbps", empty when the stream carries no audio
	AudioOnly    bool
	Bitrate      int   // bits per second
	Size         int64 // bytes, 0 if unknown
}

// Preference holds per-invocation selection options.
type Preference struct {
	DataSaver bool
}

// Height returns the numeric part of Resolution, or 0 if it has none.
func (s Stream) Height() int {
	return leadingInt(s.Resolution)
}

// AudioKbps returns the numeric part of AudioBitrate, or 0 if it has none.
func (s Stream) AudioKbps() int {
	return leadingInt(s.AudioBitrate)
}

// IsVideo reports whether the stream carries a video track.
func (s Stream) IsVideo() bool {
	return !s.AudioOnly && s.Height() > 0
}

func leadingInt(label string) int {
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(label[:end])
	if err != nil {
		return 0
	}
	return v
}

// Describe returns a short human readable summary of the stream.
func (s Stream) Describe() string {
	var b strings.Builder
	b.WriteString("itag=")
	b.WriteString(strconv.Itoa(s.Itag))
	b.WriteString(" ")
	b.WriteString(s.Container)
	if s.AudioOnly {
		b.WriteString(" audio")
	} else if s.Resolution != "" {
		b.WriteString(" ")
		b.WriteString(s.Resolution)
		if s.FPS > 0 {
			b.WriteString("@")
			b.WriteString(strconv.Itoa(s.FPS))
		}
	}
	if s.AudioBitrate != "" {
		b.WriteString(" ")
		b.WriteString(s.AudioBitrate)
	}
	return b.String()
}
