package model

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDownloadTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		task := &DownloadTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestDownloadTask_Destination(t *testing.T) {
	task := &DownloadTask{Directory: "/data/out", Filename: "clip.mp4", Timeout: 5 * time.Second}
	expected := filepath.Join("/data/out", "clip.mp4")
	if task.Destination() != expected {
		t.Errorf("Expected destination %s, got %s", expected, task.Destination())
	}
}
