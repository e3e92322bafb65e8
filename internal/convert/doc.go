// Package convert transcodes downloaded media into audio-only mp3 files with
// ffmpeg, reporting progress parsed from ffmpeg's -progress output.
package convert
