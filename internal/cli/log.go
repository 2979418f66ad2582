// Package cli implements the pagefit command-line interface.
//
// The CLI converts design JSON files into print templates, renders page
// previews and design-tree diagrams, and serves the same pipeline over
// HTTP. It is built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - convert: Convert a design file and write the requested artifacts
//   - stats: Print conversion statistics
//   - inspect: Browse the mapping report interactively
//   - tree: Draw the design node tree with Graphviz
//   - rules: Print or validate anchor rule files
//   - papers: List supported paper sizes
//   - reports: List and show archived mapping reports
//   - serve: Run the HTTP API
//   - cache: Manage the local conversion cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const logTimeFormat = "15:04:05.00"

// newLogger returns a logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress logs the duration of a pipeline step when it finishes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and keyvals.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"took", elapsed}, keyvals...)...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or the
// package default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && l != nil {
		return l
	}
	return log.Default()
}
