package platform

import "testing"

func TestSplitExtension(t *testing.T) {
	tests := []struct {
		path string
		stem string
		ext  string
	}{
		{"movie.final.mp4", "movie.final", "mp4"},
		{"clip.mp4", "clip", "mp4"},
		{"/out/dir.v2/clip.webm", "/out/dir.v2/clip", "webm"},
		{"archive.tar.gz", "archive.tar", "gz"},
		{"noext", "noext", ""},
		{"trailing.", "trailing", ""},
		{".hidden", "", "hidden"},
	}

	for _, test := range tests {
		stem, ext := SplitExtension(test.path)
		if stem != test.stem || ext != test.ext {
			t.Errorf("SplitExtension(%q) = (%q, %q), expected (%q, %q)", test.path, stem, ext, test.stem, test.ext)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{90000, "25:00:00"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}

	for _, test := range tests {
		result := FormatDuration(test.seconds)
		if result != test.expected {
			t.Errorf("FormatDuration(%d) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		title    string
		ext      string
		expected string
	}{
		{"Simple Title", "mp4", "Simple Title.mp4"},
		{"AC/DC: Live?", "webm", "AC_DC_ Live_.webm"},
		{"   ", "mp4", "video.mp4"},
		{"Song", "", "Song.mp4"},
		{"Song", ".MP4", "Song.mp4"},
	}

	for _, test := range tests {
		result := SafeFilename(test.title, test.ext)
		if result != test.expected {
			t.Errorf("SafeFilename(%q, %q) = %q, expected %q", test.title, test.ext, result, test.expected)
		}
	}
}

func TestContainerFromMime(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{`video/mp4; codecs="avc1.64001F, mp4a.40.2"`, "mp4"},
		{`audio/webm; codecs="opus"`, "webm"},
		{"audio/mp4", "mp4"},
		{"", ""},
		{"garbage", ""},
	}

	for _, test := range tests {
		if got := ContainerFromMime(test.mime); got != test.expected {
			t.Errorf("ContainerFromMime(%q) = %q, expected %q", test.mime, got, test.expected)
		}
	}
}

func TestIsAudioMime(t *testing.T) {
	if !IsAudioMime(`audio/mp4; codecs="mp4a.40.2"`) {
		t.Error("Expected audio mime to be detected")
	}
	if IsAudioMime("video/mp4") {
		t.Error("Video mime should not be audio")
	}
}
