package lexer

import (
	"strings"
	"testing"

	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/source"
	"github.com/stretchr/testify/require"
)

func (f *fixture) register(name string, fn Directive) {
	f.dirs.Register(f.pool, name, fn)
}

func TestMacro_Passthrough(t *testing.T) {
	f := newFixture()
	toks := f.lex("@unknown(x)")

	require.Equal(t, []string{"@unknown(x)"}, payloads(toks))
	require.Equal(t, Macro, toks[0].Kind())
	require.Empty(t, f.diags.Diagnostics)

	f = newFixture()
	toks = f.lex("a @bare b")
	require.Equal(t, []string{"a", "@bare", "b"}, payloads(toks))
	require.Empty(t, f.diags.Diagnostics)
}

func TestMacro_NestedExpansion(t *testing.T) {
	f := newFixture()
	f.register("double", func(args string, _ diag.Sink) string {
		return args + args
	})

	toks := f.lex("x\n  @double(@double(a ))\ny")
	require.Equal(t, []string{"x", "a", "a", "a", "a", "y"}, payloads(toks))

	at := source.Location{File: f.pool.Intern("test.co"), Line: 2, Column: 3}
	for _, tok := range toks[1:5] {
		require.Equal(t, at, tok.Location)
		require.Equal(t, Ident, tok.Kind())
	}
	require.Equal(t, 3, toks[5].Location.Line)
	require.Equal(t, 1, toks[5].Location.Column)
	require.Empty(t, f.diags.Diagnostics)
}

func TestMacro_UnknownInsideKnown(t *testing.T) {
	f := newFixture()
	var got string
	f.register("id", func(args string, _ diag.Sink) string {
		got = args
		return ""
	})

	toks := f.lex("@id(@other(@id(q)) z)")
	require.Empty(t, toks)
	require.Equal(t, "@other() z", got)
}

func TestMacro_MultilineReplacementKeepsLocation(t *testing.T) {
	f := newFixture()
	f.register("lines", func(string, diag.Sink) string {
		return "p\nq\n\nr"
	})

	toks := f.lex("@lines next")
	require.Equal(t, []string{"p", "q", "r", "next"}, payloads(toks))
	for _, tok := range toks[:3] {
		require.Equal(t, 1, tok.Location.Line)
		require.Equal(t, 1, tok.Location.Column)
	}
	require.Equal(t, 1, toks[3].Location.Line)
	require.Equal(t, 8, toks[3].Location.Column)
}

func TestMacro_QuotedArguments(t *testing.T) {
	f := newFixture()
	f.register("id", func(args string, _ diag.Sink) string {
		return args
	})

	toks := f.lex(`@id("@x)" ')')`)
	require.Equal(t, []string{"\"@x)", "')"}, payloads(toks))
	require.Equal(t, String, toks[0].Kind())
	require.Empty(t, f.diags.Diagnostics)
}

func TestMacro_Define(t *testing.T) {
	f := newFixture()
	toks := f.lex("a @define(x, y) b")

	require.Equal(t, []string{"a"}, payloads(toks))
	require.True(t, f.diags.Critical)
}

func TestMacro_SinkIsBound(t *testing.T) {
	f := newFixture()
	f.register("fail", func(args string, sink diag.Sink) string {
		sink("cannot "+args, diag.Error)
		return "fallback"
	})

	toks := f.lex("\n @fail(work)")
	require.Equal(t, []string{"fallback"}, payloads(toks))
	require.Len(t, f.diags.Diagnostics, 1)
	require.Equal(t, "cannot work", f.diags.Diagnostics[0].Message)
	require.Equal(t, "test.co:2:2", f.diags.Diagnostics[0].Location.String())
}

func TestMacro_RunawayExpansion(t *testing.T) {
	f := newFixture()
	f.register("loop", func(string, diag.Sink) string {
		return "x @loop"
	})

	toks := f.lex("@loop")
	require.True(t, f.diags.Critical)
	require.LessOrEqual(t, len(toks), maxExpansionDepth+1)
}

func TestMacro_Unterminated(t *testing.T) {
	f := newFixture()
	toks := f.lex("a @x(b")

	require.Equal(t, []string{"a"}, payloads(toks))
	require.Equal(t, 1, f.diags.Errors)
	require.False(t, f.diags.Critical)
}

func TestMacro_MissingName(t *testing.T) {
	f := newFixture()
	toks := f.lex("a @ b")

	require.Equal(t, []string{"a", "b"}, payloads(toks))
	require.Equal(t, 1, f.diags.Errors)
}

func TestMacro_ReplacementRunsThroughScanner(t *testing.T) {
	f := newFixture()
	f.register("num", func(args string, _ diag.Sink) string {
		return strings.Repeat("1", len(args)) + " += 'c'"
	})

	toks := f.lex("@num(abc)")
	require.Len(t, toks, 3)
	require.Equal(t, "111", decodeInt(t, toks[0]).String())
	require.Equal(t, "+=", toks[1].Payload)
	require.Equal(t, Char, toks[2].Kind())
}
