// Package diag carries compiler diagnostics from the scanning and inference
// code to whichever handler the caller installed.
package diag

import (
	"fmt"

	"github.com/pontaoski/coral/source"
	"go.uber.org/multierr"
)

type Severity int

const (
	Warning Severity = iota
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

type Diagnostic struct {
	Location source.Location
	Message  string
	Severity Severity
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
}

// Handler receives every diagnostic. Implementations decide whether to print,
// promote or drop them; all of them keep counts.
type Handler interface {
	Report(loc source.Location, msg string, sev Severity)
	Counts() *Counter
}

// Sink is a Handler bound to a single location, handed to directive
// functions that have no location of their own.
type Sink func(msg string, sev Severity)

func Bind(h Handler, loc source.Location) Sink {
	return func(msg string, sev Severity) {
		h.Report(loc, msg, sev)
	}
}

// Counter is the simplest Handler: it keeps every diagnostic and prints
// nothing.
type Counter struct {
	Warnings    int
	Errors      int
	Critical    bool
	Diagnostics []Diagnostic
}

func (c *Counter) count(sev Severity) {
	switch sev {
	case Warning:
		c.Warnings++
	case Error:
		c.Errors++
	case Critical:
		c.Errors++
		c.Critical = true
	}
}

func (c *Counter) Report(loc source.Location, msg string, sev Severity) {
	c.count(sev)
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Location: loc, Message: msg, Severity: sev})
}

func (c *Counter) Counts() *Counter {
	return c
}

// Failed reports whether any error or critical diagnostic was seen.
func (c *Counter) Failed() bool {
	return c.Errors > 0 || c.Critical
}

// Err folds the retained error and critical diagnostics into one error. It
// returns nil when nothing failed. Handlers that do not retain diagnostics
// report only the counts.
func (c *Counter) Err() error {
	if !c.Failed() {
		return nil
	}

	var err error
	for _, d := range c.Diagnostics {
		if d.Severity >= Error {
			err = multierr.Append(err, d)
		}
	}
	if err == nil {
		err = fmt.Errorf("%d errors, %d warnings", c.Errors, c.Warnings)
	}
	return err
}

func (c *Counter) Reset() {
	*c = Counter{}
}
