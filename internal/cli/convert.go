package cli

import (
	"github.com/spf13/cobra"
)

// convertCmd converts a local media file to mp3
func (a *App) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <file> [output]",
		Short: "Convert a media file to mp3",
		Long:  "Convert transcodes a local file to mp3 with ffmpeg and removes the source once the mp3 is written.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			progress := newProgressPrinter(a.Out)
			_, err := a.convert(cmd, args[0], output, progress)
			return err
		},
	}
}
