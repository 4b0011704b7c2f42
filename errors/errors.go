// Package errors holds the messages the parser and the declaration pass
// report.
package errors

import (
	"fmt"
	"strings"
)

type ExpectedOneOf struct {
	Expected []string
	Got      string
}

func (e ExpectedOneOf) Error() string {
	quoted := make([]string, len(e.Expected))
	for i, x := range e.Expected {
		quoted[i] = "'" + x + "'"
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("expected %s, got %s", quoted[0], e.Got)
	}
	return fmt.Sprintf("expected one of %s, got %s", strings.Join(quoted, ", "), e.Got)
}

// Expected describes a missing syntactic category rather than a token.
type Expected struct {
	What string
	Got  string
}

func (e Expected) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.What, e.Got)
}

type Unsupported struct {
	Construct string
}

func (e Unsupported) Error() string {
	return fmt.Sprintf("unsupported top-level construct %s", e.Construct)
}

type Unterminated struct {
	What string
}

func (e Unterminated) Error() string {
	return fmt.Sprintf("unterminated %s", e.What)
}

type DuplicateName struct {
	Name string
	// Existing describes what the name is already bound to.
	Existing string
}

func (e DuplicateName) Error() string {
	return fmt.Sprintf("%s is already declared as a %s", e.Name, e.Existing)
}

type Unresolved struct {
	Path string
	What string
}

func (e Unresolved) Error() string {
	return fmt.Sprintf("cannot resolve %s %s", e.What, e.Path)
}

type Mismatch struct {
	Name string
	Want string
	Got  string
}

func (e Mismatch) Error() string {
	return fmt.Sprintf("cannot initialize %s of type %s with a value of type %s", e.Name, e.Want, e.Got)
}
