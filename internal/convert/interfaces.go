package convert

import (
	"context"
	"io"

	"github.com/ytget/ytfetch/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	Convert(ctx context.Context, inputPath, outputPath string) (string, error)
}

// Runner executes external tools.
type Runner interface {
	// Output runs name and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs name to completion, streaming its standard error into stderr.
	Run(ctx context.Context, stderr io.Writer, name string, args ...string) error
}
