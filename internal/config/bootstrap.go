package config

import (
	"context"
	"os"

	"github.com/ytget/ytfetch/internal/platform"
)

type bootstrapState int

const (
	stateAwaitingPathInput bootstrapState = iota
	stateAwaitingCreateConfirm
	stateAwaitingUseConfirm
	stateDone
)

// chooseOutputDir asks for the output directory until the user confirms one.
//
//	AwaitingPathInput -> AwaitingCreateConfirm (path is not a directory)
//	AwaitingPathInput -> AwaitingUseConfirm    (path is a directory)
//	AwaitingCreateConfirm -> Done | AwaitingPathInput
//	AwaitingUseConfirm    -> Done | AwaitingPathInput
func (s *Store) chooseOutputDir(ctx context.Context) (string, error) {
	var dir string
	state := stateAwaitingPathInput

	for state != stateDone {
		switch state {
		case stateAwaitingPathInput:
			s.console.Printf("\nEnter the output directory path (e.g. %s)\n", s.DefaultOutputDir())
			s.console.Printf("Default: '%s'\n", s.DefaultOutputDir())
			answer, err := s.console.AskDefault(ctx, ": ", s.DefaultOutputDir())
			if err != nil {
				return "", err
			}
			if dir, err = platform.AbsPath(answer); err != nil {
				return "", err
			}
			if platform.IsDirectory(dir) {
				s.console.Printf("\n%s is a directory\n", dir)
				state = stateAwaitingUseConfirm
			} else {
				s.console.Printf("%s is not a directory\n", dir)
				state = stateAwaitingCreateConfirm
			}

		case stateAwaitingCreateConfirm:
			ok, err := s.console.Confirm(ctx, "Create directory")
			if err != nil {
				return "", err
			}
			if !ok {
				state = stateAwaitingPathInput
				continue
			}
			if err := os.MkdirAll(dir, platform.DefaultDirPermissions); err != nil {
				s.log.Error().Err(err).Str("dir", dir).Msg("failed to create directory")
				state = stateAwaitingPathInput
				continue
			}
			s.console.Printf("%s is created\n", dir)
			state = stateDone

		case stateAwaitingUseConfirm:
			ok, err := s.console.Confirm(ctx, "Is this the right path")
			if err != nil {
				return "", err
			}
			if !ok {
				state = stateAwaitingPathInput
				continue
			}
			state = stateDone
		}
	}
	return dir, nil
}
