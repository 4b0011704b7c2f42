package source

import (
	"testing"

	"github.com/pontaoski/coral/intern"
	"github.com/stretchr/testify/assert"
)

func TestLocation_String(t *testing.T) {
	p := intern.NewPool()

	assert.Equal(t, "main.co:3:7", Location{File: p.Intern("main.co"), Line: 3, Column: 7}.String())
	assert.Equal(t, "<unknown>:1:1", Start(intern.Str{}).String())
}

func TestLocation_Advance(t *testing.T) {
	l := Start(intern.Str{})

	l = l.Advance('a')
	assert.Equal(t, Location{Line: 1, Column: 2}, l)
	l = l.Advance('\n')
	assert.Equal(t, Location{Line: 2, Column: 1}, l)
}
