// Package cli wires the ytfetch commands: it binds flags and environment into
// viper, builds the services and reports results on standard output.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ytget/ytfetch/internal/catalog"
	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/convert"
	"github.com/ytget/ytfetch/internal/logger"
	"github.com/ytget/ytfetch/internal/prompt"
)

// ExitMessage is printed when the user interrupts the program.
const ExitMessage = "Exiting..."

// BackendFactory builds a catalog backend by name.
type BackendFactory func(name string, log zerolog.Logger) (catalog.Backend, error)

// App holds the process-wide dependencies of one invocation.
type App struct {
	In      io.Reader
	Out     io.Writer
	Version string

	NewBackend BackendFactory
	Runner     convert.Runner

	v        *viper.Viper
	settings *config.Settings
}

// NewApp creates an App reading prompts from in and writing all output to out.
func NewApp(in io.Reader, out io.Writer, version string) *App {
	v := viper.New()
	return &App{
		In:         in,
		Out:        out,
		Version:    version,
		NewBackend: catalog.New,
		v:          v,
		settings:   config.NewSettings(v),
	}
}

// Execute runs the ytfetch CLI against the process's arguments and streams.
func Execute(ctx context.Context, version string) error {
	return NewApp(os.Stdin, os.Stdout, version).Execute(ctx, os.Args[1:])
}

// Execute runs the command line args. An interrupt prints ExitMessage and
// is not reported as an error.
func (a *App) Execute(ctx context.Context, args []string) error {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(a.In)
	cmd.SetOut(a.Out)
	cmd.SetErr(a.Out)

	err := cmd.ExecuteContext(ctx)
	if isInterrupt(err) {
		fmt.Fprintln(a.Out)
		fmt.Fprintln(a.Out, ExitMessage)
		return nil
	}
	return err
}

func isInterrupt(err error) bool {
	return errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, context.Canceled)
}

func (a *App) logger() zerolog.Logger {
	return logger.New(a.Out, a.settings.IsDebug())
}

func (a *App) console() *prompt.Console {
	return prompt.NewConsole(a.In, a.Out)
}

func (a *App) store(log zerolog.Logger) (*config.Store, error) {
	root, err := a.settings.GetRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve config root: %w", err)
	}
	return config.NewStore(root, a.settings.GetName(), a.console(), log), nil
}

func (a *App) backend(log zerolog.Logger) (catalog.Backend, error) {
	return a.NewBackend(a.settings.GetBackend(), log)
}
