// Package cli implements the ductnet command-line interface.
//
// # Commands
//
//   - route: sweep heuristic weights for a request and write the cheapest network as JSON
//   - graph: print statistics of the graph a request describes
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; every route run logs under its own run id.
package cli

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/ductnet/sweep"
)

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Swept 27 combinations (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger on ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// progressObserver logs sweep progress at every tenth of the grid.
type progressObserver struct {
	logger *log.Logger
	best   float64
	next   int
}

func newProgressObserver(l *log.Logger) *progressObserver {
	return &progressObserver{logger: l, best: math.Inf(1)}
}

// OnEvaluated implements sweep.Observer.
func (p *progressObserver) OnEvaluated(ev sweep.Evaluation, done, total int) {
	if ev.Viable && ev.Cost < p.best {
		p.best = ev.Cost
	}
	if done*10 < p.next*total && done != total {
		return
	}
	p.next = done*10/total + 1
	p.logger.Info("sweep progress", "done", done, "total", total, "best", p.best)
}
