package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// DefaultVideoFPS is assumed for video streams whose label carries no rate.
const DefaultVideoFPS = 30

// audioBitrateByItag holds the nominal audio bitrate of well-known itags.
// Reported bitrates fluctuate around these values, so labels come from here
// whenever the itag is known.
var audioBitrateByItag = map[int]string{
	// progressive
	5: "64kbps", 6: "64kbps", 17: "24kbps", 18: "96kbps", 22: "192kbps",
	34: "128kbps", 35: "128kbps", 37: "192kbps", 38: "192kbps",
	43: "128kbps", 44: "128kbps", 45: "192kbps", 46: "192kbps",
	82: "128kbps", 83: "128kbps", 84: "192kbps", 85: "192kbps",
	91: "48kbps", 92: "48kbps", 93: "128kbps", 94: "128kbps", 95: "256kbps", 96: "256kbps",
	100: "128kbps", 101: "192kbps", 102: "192kbps", 132: "48kbps", 151: "24kbps",
	300: "128kbps", 301: "128kbps",
	// adaptive audio
	139: "48kbps", 140: "128kbps", 141: "256kbps", 171: "128kbps", 172: "256kbps",
	249: "50kbps", 250: "70kbps", 251: "160kbps", 256: "192kbps", 258: "384kbps",
}

var (
	qualityLabelRe = regexp.MustCompile(`^(\d{3,4})p(\d{2,3})?`)
	audioCodecs    = []string{"mp4a", "opus", "vorbis", "ac-3", "ec-3"}
)

// rawFormat is the subset of a library format needed to build a Stream.
type rawFormat struct {
	Itag         int
	MimeType     string
	QualityLabel string
	Height       int
	FPS          int
	Bitrate      int
	Size         int64
	HasAudio     bool
}

// toStream converts a library format into a model.Stream.
func toStream(f rawFormat) model.Stream {
	s := model.Stream{
		Itag:      f.Itag,
		MimeType:  f.MimeType,
		Container: platform.ContainerFromMime(f.MimeType),
		AudioOnly: platform.IsAudioMime(f.MimeType),
		Bitrate:   f.Bitrate,
		Size:      f.Size,
	}

	if !s.AudioOnly {
		height, fps := parseQualityLabel(f.QualityLabel)
		if height == 0 {
			height = f.Height
		}
		if height > 0 {
			s.Resolution = strconv.Itoa(height) + "p"
			s.FPS = f.FPS
			if s.FPS == 0 {
				s.FPS = fps
			}
			if s.FPS == 0 {
				s.FPS = DefaultVideoFPS
			}
		}
	}

	if s.AudioOnly || f.HasAudio {
		s.AudioBitrate = audioBitrateLabel(f.Itag, f.Bitrate)
	}
	return s
}

// parseQualityLabel splits labels like "720p60" into height and frame rate.
func parseQualityLabel(label string) (int, int) {
	m := qualityLabelRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, 0
	}
	height, _ := strconv.Atoi(m[1])
	fps := 0
	if m[2] != "" {
		fps, _ = strconv.Atoi(m[2])
	}
	return height, fps
}

func audioBitrateLabel(itag, bitrate int) string {
	if label, ok := audioBitrateByItag[itag]; ok {
		return label
	}
	if bitrate <= 0 {
		return ""
	}
	return fmt.Sprintf("%dkbps", (bitrate+500)/1000)
}

// mimeHasAudioCodec reports whether a mime codecs list names an audio codec.
func mimeHasAudioCodec(mime string) bool {
	lower := strings.ToLower(mime)
	if platform.IsAudioMime(lower) {
		return true
	}
	i := strings.Index(lower, "codecs=")
	if i < 0 {
		return false
	}
	codecs := lower[i:]
	for _, c := range audioCodecs {
		if strings.Contains(codecs, c) {
			return true
		}
	}
	return false
}
