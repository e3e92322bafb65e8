package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd groups the config file subcommands
func (a *App) configCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Config commands",
		Long:  "Show, locate or re-create the config file holding the output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(a.logger())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Out, store.Path())
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the config, creating it first if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(a.logger())
			if err != nil {
				return err
			}
			cfg, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "path: %s\napp: %s\nversion: %s\noutput_dir_path: %s\n",
				store.Path(), cfg.App, cfg.Version, cfg.OutputDirPath)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Re-create the config interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(a.logger())
			if err != nil {
				return err
			}
			cfg, err := store.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "output_dir_path: %s\n", cfg.OutputDirPath)
			return nil
		},
	})

	return configCmd
}
