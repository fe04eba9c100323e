package main

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/9seconds/geobatch/batchlib"
)

const progressThrottle = 100 * time.Millisecond

// progress shows a spinner with a number of resolved addresses. Total
// is unknown upfront because the source is read lazily.
type progress struct {
	bar *progressbar.ProgressBar
}

func (p *progress) Add(_ batchlib.ResultEntry) {
	if p.bar != nil {
		p.bar.Add(1) // nolint: errcheck
	}
}

func (p *progress) Finish() {
	if p.bar != nil {
		p.bar.Finish() // nolint: errcheck
	}
}

func newProgress(enabled bool) *progress {
	if !enabled || !isatty.IsTerminal(os.Stderr.Fd()) {
		return &progress{}
	}

	return &progress{
		bar: progressbar.NewOptions64(-1,
			progressbar.OptionSetDescription("Resolving"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetItsString("addr"),
			progressbar.OptionShowIts(),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(progressThrottle),
			progressbar.OptionClearOnFinish(),
		),
	}
}
