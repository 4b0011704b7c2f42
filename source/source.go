package source

import (
	"fmt"

	"github.com/pontaoski/coral/intern"
)

// Location is attached to every token and syntax node. It is only ever used
// for diagnostics.
type Location struct {
	File   intern.Str
	Line   int
	Column int
}

// Start returns the location of the first scalar of file.
func Start(file intern.Str) Location {
	return Location{File: file, Line: 1, Column: 1}
}

func (l Location) String() string {
	file := l.File.String()
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// Advance returns the location following the scalar r.
func (l Location) Advance(r rune) Location {
	if r == '\n' {
		l.Line++
		l.Column = 1
		return l
	}
	l.Column++
	return l
}
