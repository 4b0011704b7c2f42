// Package directives provides the built-in @directives every compilation
// starts with.
package directives

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/lexer"
	"go.uber.org/zap"
)

type Options struct {
	// Dir is the directory @file and @import paths are relative to.
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
	Version string
	Log     *zap.Logger
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
}

// Builtins returns a fresh table holding every built-in directive.
func Builtins(pool *intern.Pool, opts Options) lexer.Directives {
	opts.defaults()
	b := &builtins{opts: opts}

	dirs := lexer.Directives{}
	add := func(name string, fn lexer.Directive) {
		dirs.Register(pool, name, fn)
	}

	add("file", b.file)
	add("import", b.importFile)
	add("str", str)
	for name, cmp := range comparisons {
		add(name, compare(cmp))
	}
	add("region", empty)
	add("endregion", empty)
	add("version", b.version)
	add("print", b.print(b.opts.Stdout, ""))
	add("println", b.print(b.opts.Stdout, "\n"))
	add("eprint", b.print(b.opts.Stderr, ""))
	add("eprintln", b.print(b.opts.Stderr, "\n"))
	return dirs
}

type builtins struct {
	opts Options
}

func (b *builtins) read(args string, sink diag.Sink) (string, bool) {
	name := strings.TrimSpace(args)
	if name == "" {
		sink("expected a file name", diag.Error)
		return "", false
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(b.opts.Dir, name)
	}

	data, err := ioutil.ReadFile(name)
	if err != nil {
		sink(fmt.Sprintf("cannot read %s: %s", name, err), diag.Error)
		return "", false
	}
	b.opts.Log.Debug("read directive file", zap.String("path", name), zap.Int("bytes", len(data)))
	return string(data), true
}

// file embeds the contents of a file as a string literal.
func (b *builtins) file(args string, sink diag.Sink) string {
	data, ok := b.read(args, sink)
	if !ok {
		return ""
	}
	return lexer.Quote(data, lexer.MarkString)
}

// importFile splices the raw text of a file.
func (b *builtins) importFile(args string, sink diag.Sink) string {
	data, _ := b.read(args, sink)
	return data
}

// version expands to the compiler version as a string literal.
func (b *builtins) version(args string, sink diag.Sink) string {
	if strings.TrimSpace(args) != "" {
		sink("@version takes no arguments", diag.Warning)
	}
	return lexer.Quote(b.opts.Version, lexer.MarkString)
}

func (b *builtins) print(w io.Writer, suffix string) lexer.Directive {
	return func(args string, sink diag.Sink) string {
		if _, err := io.WriteString(w, args+suffix); err != nil {
			sink(fmt.Sprintf("cannot print: %s", err), diag.Warning)
		}
		return ""
	}
}

func str(args string, _ diag.Sink) string {
	return lexer.Quote(args, lexer.MarkString)
}

func empty(string, diag.Sink) string {
	return ""
}

var comparisons = map[string]func(a, b string) bool{
	"lex_lt": func(a, b string) bool { return a < b },
	"lex_gt": func(a, b string) bool { return a > b },
	"lex_le": func(a, b string) bool { return a <= b },
	"lex_ge": func(a, b string) bool { return a >= b },
	"lex_eq": func(a, b string) bool { return a == b },
	"lex_ne": func(a, b string) bool { return a != b },
}

// compare splits its argument on ';' and compares the two trimmed operands
// byte by byte.
func compare(fn func(a, b string) bool) lexer.Directive {
	return func(args string, sink diag.Sink) string {
		ops := strings.Split(args, ";")
		if len(ops) != 2 {
			sink(fmt.Sprintf("expected two operands separated by ';', got %d", len(ops)), diag.Error)
			return "0"
		}
		if fn(strings.TrimSpace(ops[0]), strings.TrimSpace(ops[1])) {
			return "1"
		}
		return "0"
	}
}
