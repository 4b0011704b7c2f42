package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntern_Idempotent(t *testing.T) {
	p := NewPool()

	a := p.Intern("module")
	b := p.Intern("module")
	require.Equal(t, a, b)
	require.True(t, a == b)
	require.Equal(t, "module", a.String())
	require.Equal(t, 1, p.Len())
}

func TestIntern_DistinctContents(t *testing.T) {
	p := NewPool()

	a := p.Intern("x")
	b := p.Intern("y")
	require.False(t, a == b)
	require.Equal(t, 2, p.Len())
}

func TestIntern_BytesShareHandles(t *testing.T) {
	p := NewPool()

	buf := []byte("name")
	a := p.InternBytes(buf)
	buf[0] = 'g'
	require.Equal(t, "name", a.String())
	require.True(t, a == p.Intern("name"))
}

func TestIntern_SeparatePools(t *testing.T) {
	a := NewPool().Intern("x")
	b := NewPool().Intern("x")
	require.False(t, a == b)
	require.Equal(t, a.String(), b.String())
}

func TestIntern_Lookup(t *testing.T) {
	p := NewPool()

	_, ok := p.Lookup("missing")
	require.False(t, ok)

	s := p.Intern("present")
	got, ok := p.Lookup("present")
	require.True(t, ok)
	require.True(t, s == got)
	require.True(t, Str{}.IsZero())
	require.Equal(t, "", Str{}.String())
}
