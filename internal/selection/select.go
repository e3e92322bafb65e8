package selection

import (
	"errors"

	"github.com/ytget/ytfetch/internal/model"
)

// Data saver constraints
const (
	SaverContainer    = "mp4"
	SaverResolution   = "720p"
	SaverFPS          = 60
	SaverAudioBitrate = "128kbps"
)

// ErrNoStream is returned by callers when no stream satisfies the preference.
var ErrNoStream = errors.New("no matching stream")

// Tier is one rule of the data saver cascade.
type Tier []Predicate

// VideoTiers lists the data saver video rules, most specific first.
func VideoTiers() []Tier {
	return []Tier{
		{Container(SaverContainer), Resolution(SaverResolution), FPS(SaverFPS), AudioBitrate(SaverAudioBitrate)},
		{Container(SaverContainer), Resolution(SaverResolution), AudioBitrate(SaverAudioBitrate)},
		{Container(SaverContainer), Resolution(SaverResolution)},
		{Container(SaverContainer), AudioBitrate(SaverAudioBitrate)},
		{Container(SaverContainer)},
	}
}

// AudioTiers lists the data saver audio rules, most specific first.
func AudioTiers() []Tier {
	return []Tier{
		{AudioOnly(), AudioBitrate(SaverAudioBitrate)},
		{AudioOnly()},
	}
}

// SelectVideo picks the video stream for pref. Without data saver it is the
// highest resolution video stream; ties keep the earlier stream.
func SelectVideo(streams []model.Stream, pref model.Preference) (model.Stream, bool) {
	if pref.DataSaver {
		return firstOfTiers(streams, VideoTiers())
	}
	return highest(streams, model.Stream.IsVideo, model.Stream.Height)
}

// SelectAudio picks the audio-only stream for pref. Without data saver it is
// the one with the highest audio bitrate; ties keep the earlier stream.
func SelectAudio(streams []model.Stream, pref model.Preference) (model.Stream, bool) {
	if pref.DataSaver {
		return firstOfTiers(streams, AudioTiers())
	}
	return highest(streams, AudioOnly(), model.Stream.AudioKbps)
}

func firstOfTiers(streams []model.Stream, tiers []Tier) (model.Stream, bool) {
	for _, tier := range tiers {
		if s, ok := First(streams, tier...); ok {
			return s, true
		}
	}
	return model.Stream{}, false
}

func highest(streams []model.Stream, eligible func(model.Stream) bool, score func(model.Stream) int) (model.Stream, bool) {
	var best model.Stream
	found := false
	for _, s := range streams {
		if !eligible(s) {
			continue
		}
		if !found || score(s) > score(best) {
			best = s
			found = true
		}
	}
	return best, found
}
