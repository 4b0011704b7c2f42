package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pontaoski/coral/source"
	"go.uber.org/zap"
)

// Console prints each diagnostic as it arrives and keeps counting.
type Console struct {
	Counter
	w      io.Writer
	color  bool
	strict bool
}

// NewDefault prints diagnostics to w and continues.
func NewDefault(w io.Writer) *Console {
	return &Console{w: w, color: isTerminal(w)}
}

// NewStrict is NewDefault with warnings promoted to errors.
func NewStrict(w io.Writer) *Console {
	c := NewDefault(w)
	c.strict = true
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var colors = map[Severity]string{
	Warning:  "\x1b[33m",
	Error:    "\x1b[31m",
	Critical: "\x1b[1;31m",
}

func (c *Console) Report(loc source.Location, msg string, sev Severity) {
	if c.strict && sev == Warning {
		sev = Error
	}
	c.Counter.Report(loc, msg, sev)

	if c.color {
		fmt.Fprintf(c.w, "%s: %s%s\x1b[0m: %s\n", loc, colors[sev], sev, msg)
		return
	}
	fmt.Fprintf(c.w, "%s: %s: %s\n", loc, sev, msg)
}

// Quiet only counts.
type Quiet struct {
	Counter
}

func NewQuiet() *Quiet {
	return &Quiet{}
}

func (q *Quiet) Report(_ source.Location, _ string, sev Severity) {
	q.count(sev)
}

// Logged writes every diagnostic through a zap logger.
type Logged struct {
	Counter
	log *zap.Logger
}

func NewLogged(log *zap.Logger) *Logged {
	return &Logged{log: log}
}

func (l *Logged) Report(loc source.Location, msg string, sev Severity) {
	l.Counter.Report(loc, msg, sev)

	fields := []zap.Field{
		zap.Stringer("location", loc),
		zap.Stringer("severity", sev),
	}
	switch sev {
	case Warning:
		l.log.Warn(msg, fields...)
	default:
		l.log.Error(msg, fields...)
	}
}
