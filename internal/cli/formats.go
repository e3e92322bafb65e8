package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/selection"
)

// formatsCmd lists a video's stream catalog and what each preference selects
func (a *App) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats <url>",
		Short: "List the streams of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := a.logger()
			backend, err := a.backend(log)
			if err != nil {
				return err
			}
			video, err := backend.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printVideo(video)
			fmt.Fprintln(a.Out)
			a.printStreams(video.Streams)
			fmt.Fprintln(a.Out)
			a.printSelections(video.Streams)
			return nil
		},
	}
}

func (a *App) printStreams(streams []model.Stream) {
	fmt.Fprintf(a.Out, "%d streams, %d audio only\n", len(streams), len(selection.Filter(streams, selection.AudioOnly())))
	w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITAG\tEXT\tRESOLUTION\tFPS\tAUDIO\tSIZE")
	for _, s := range streams {
		res, fps := "audio only", "-"
		if !s.AudioOnly {
			res = orDash(s.Resolution)
			if s.FPS > 0 {
				fps = fmt.Sprint(s.FPS)
			}
		}
		size := "-"
		if s.Size > 0 {
			size = humanize.Bytes(uint64(s.Size))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", s.Itag, orDash(s.Container), res, fps, orDash(s.AudioBitrate), size)
	}
	_ = w.Flush()
}

func (a *App) printSelections(streams []model.Stream) {
	rows := []struct {
		label  string
		choose func([]model.Stream, model.Preference) (model.Stream, bool)
		pref   model.Preference
	}{
		{"video", selection.SelectVideo, model.Preference{}},
		{"video (data saver)", selection.SelectVideo, model.Preference{DataSaver: true}},
		{"audio", selection.SelectAudio, model.Preference{}},
		{"audio (data saver)", selection.SelectAudio, model.Preference{DataSaver: true}},
	}
	for _, row := range rows {
		if s, ok := row.choose(streams, row.pref); ok {
			fmt.Fprintf(a.Out, "%-20s %s\n", row.label+":", s.Describe())
		} else {
			fmt.Fprintf(a.Out, "%-20s none\n", row.label+":")
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
