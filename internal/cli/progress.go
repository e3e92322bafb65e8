package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/ytget/ytfetch/internal/model"
)

// progressPrinter renders task updates on a single, rewritten line.
type progressPrinter struct {
	out     io.Writer
	ok      *color.Color
	last    string
	printed bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out, ok: color.New(color.FgGreen, color.Bold)}
}

func (p *progressPrinter) download(task *model.DownloadTask) {
	if task.Status.IsFinished() {
		p.finish()
		return
	}
	if task.Status != model.TaskStatusDownloading {
		return
	}
	var line string
	if task.FileSize > 0 {
		line = fmt.Sprintf("%3d%%  %s / %s  ETA %s", task.Percent,
			humanize.Bytes(uint64(task.Downloaded)), humanize.Bytes(uint64(task.FileSize)), task.GetETAString())
	} else {
		line = humanize.Bytes(uint64(task.Downloaded))
	}
	p.render(line)
}

func (p *progressPrinter) conversion(task *model.ConversionTask) {
	if task.Status.IsFinished() {
		p.finish()
		return
	}
	if !task.Status.IsActive() || task.Percent == 0 {
		return
	}
	p.render(fmt.Sprintf("%3d%%", task.Percent))
}

func (p *progressPrinter) render(line string) {
	if line == p.last {
		return
	}
	p.last = line
	p.printed = true
	fmt.Fprintf(p.out, "\r  %-40s", line)
}

// finish ends the progress line, if one was drawn.
func (p *progressPrinter) finish() {
	if p.printed {
		fmt.Fprintln(p.out)
	}
	p.last = ""
	p.printed = false
}

func (p *progressPrinter) done(msg string) string {
	return p.ok.Sprint(msg)
}
