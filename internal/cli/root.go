package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/catalog"
	"github.com/ytget/ytfetch/internal/config"
)

func (a *App) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           config.DefaultName,
		Short:         "Download YouTube videos or their audio",
		Long:          "ytfetch fetches a video's streams, picks one by quality preference, saves it into the configured output directory and can convert it to mp3.",
		Version:       a.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyRoot, "", "directory holding the config file (default: directory of the binary)")
	flags.String(config.KeyName, config.DefaultName, "config name, stored as <root>/<name>.json")
	flags.String(config.KeyBackend, config.DefaultBackend, "catalog backend: "+strings.Join(catalog.Names(), ", "))
	flags.Duration(config.KeyTimeout, config.DefaultTimeout, "connection timeout for transfers")
	flags.Bool(config.KeyDebug, false, "enable debug logging")
	for _, key := range []string{config.KeyRoot, config.KeyName, config.KeyBackend, config.KeyTimeout, config.KeyDebug} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(a.getCmd())
	rootCmd.AddCommand(a.formatsCmd())
	rootCmd.AddCommand(a.convertCmd())
	rootCmd.AddCommand(a.configCmd())

	return rootCmd
}
