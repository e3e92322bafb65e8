// Package selection picks one video and one audio stream from a catalog.
package selection

import (
	"github.com/ytget/ytfetch/internal/model"
)

// Predicate reports whether a stream satisfies one constraint.
type Predicate func(model.Stream) bool

// Container matches the container extension exactly, e.g. "mp4".
func Container(ext string) Predicate {
	return func(s model.Stream) bool {
		return s.Container == ext
	}
}

// Resolution matches a resolution label such as "720p".
func Resolution(label string) Predicate {
	return func(s model.Stream) bool {
		return s.Resolution == label
	}
}

// FPS matches the frame rate.
func FPS(fps int) Predicate {
	return func(s model.Stream) bool {
		return s.FPS == fps
	}
}

// AudioBitrate matches an audio bitrate label such as "128kbps".
func AudioBitrate(label string) Predicate {
	return func(s model.Stream) bool {
		return s.AudioBitrate == label
	}
}

// AudioOnly matches streams without a video track.
func AudioOnly() Predicate {
	return func(s model.Stream) bool {
		return s.AudioOnly
	}
}

// Filter returns the streams satisfying every predicate, in catalog order.
func Filter(streams []model.Stream, preds ...Predicate) []model.Stream {
	var out []model.Stream
	for _, s := range streams {
		if matchesAll(s, preds) {
			out = append(out, s)
		}
	}
	return out
}

// First returns the first stream satisfying every predicate.
func First(streams []model.Stream, preds ...Predicate) (model.Stream, bool) {
	for _, s := range streams {
		if matchesAll(s, preds) {
			return s, true
		}
	}
	return model.Stream{}, false
}

func matchesAll(s model.Stream, preds []Predicate) bool {
	for _, p := range preds {
		if !p(s) {
			return false
		}
	}
	return true
}
