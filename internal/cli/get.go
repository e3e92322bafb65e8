package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/convert"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
	"github.com/ytget/ytfetch/internal/selection"
)

// getCmd downloads one stream of a video and optionally converts it to mp3
func (a *App) getCmd() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get <url>",
		Short: "Download a video, or its audio with --audio",
		Long:  "Get loads the config (creating it interactively on first run), selects a stream, downloads it with a timestamped filename and, with --audio, converts it to mp3.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd, args[0])
		},
	}

	flags := getCmd.Flags()
	flags.Bool(config.KeyAudio, false, "download the audio stream and convert it to mp3")
	flags.Bool(config.KeyDataSaver, false, "prefer constrained streams (720p, 128kbps) over the best quality")
	flags.StringP(config.KeyOutput, "o", "", "mp3 output path (with --audio; default: next to the download)")
	flags.Bool(config.KeyReveal, false, "reveal the finished file in the file manager")
	for _, key := range []string{config.KeyAudio, config.KeyDataSaver, config.KeyOutput, config.KeyReveal} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}
	return getCmd
}

func (a *App) runGet(cmd *cobra.Command, url string) error {
	ctx := cmd.Context()
	log := a.logger()

	store, err := a.store(log)
	if err != nil {
		return err
	}
	cfg, err := store.Load(ctx)
	if err != nil {
		return err
	}

	backend, err := a.backend(log)
	if err != nil {
		return err
	}
	video, err := backend.Fetch(ctx, url)
	if err != nil {
		return err
	}
	a.printVideo(video)

	audio := a.settings.IsAudio()
	stream, err := pickStream(video, audio, model.Preference{DataSaver: a.settings.IsDataSaver()})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Selected: %s\n", stream.Describe())

	progress := newProgressPrinter(a.Out)
	downloads := download.NewService(backend, log)
	downloads.SetUpdateCallback(progress.download)

	fmt.Fprintln(a.Out, "Download starting!")
	path, err := downloads.Download(ctx, video, stream, cfg, a.settings.GetTimeout())
	progress.finish()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Saved: %s\n", path)

	if audio {
		if path, err = a.convert(cmd, path, a.settings.GetOutput(), progress); err != nil {
			return err
		}
	}

	if a.settings.GetRevealOnComplete() {
		if err := platform.OpenFileInManager(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to reveal file")
		}
	}
	fmt.Fprintln(a.Out, progress.done("Done"))
	return nil
}

// pickStream applies the selection rules for the requested kind.
func pickStream(video *model.Video, audio bool, pref model.Preference) (model.Stream, error) {
	kind := "video"
	selectFn := selection.SelectVideo
	if audio {
		kind = "audio"
		selectFn = selection.SelectAudio
	}
	stream, ok := selectFn(video.Streams, pref)
	if !ok {
		return model.Stream{}, fmt.Errorf("%w: no %s stream for %s (data saver: %t)", selection.ErrNoStream, kind, video.URL, pref.DataSaver)
	}
	return stream, nil
}

func (a *App) convert(cmd *cobra.Command, input, output string, progress *progressPrinter) (string, error) {
	converter := convert.NewService(a.Runner, a.logger())
	converter.SetUpdateCallback(progress.conversion)

	fmt.Fprintln(a.Out, "Converting to mp3...")
	out, err := converter.Convert(cmd.Context(), input, output)
	progress.finish()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(a.Out, "Saved: %s\n", out)
	return out, nil
}

func (a *App) printVideo(video *model.Video) {
	fmt.Fprintf(a.Out, "Title: %s\n", video.Title)
	if video.Author != "" {
		fmt.Fprintf(a.Out, "Author: %s\n", video.Author)
	}
	if video.Duration > 0 {
		fmt.Fprintf(a.Out, "Length: %s\n", video.Length())
	}
}
