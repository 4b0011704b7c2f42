package main

import (
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/ztrue/tracerr"
	"go.uber.org/zap"

	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/directives"
	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/lexer"
	"github.com/pontaoski/coral/parser"
	"github.com/pontaoski/coral/source"
	"github.com/pontaoski/coral/types"
)

// session is one compilation: every file in it shares the interner, the
// type universe and the diagnostic handler.
type session struct {
	pool     *intern.Pool
	universe *types.Universe
	handler  diag.Handler
	flags    lexer.Flags
	log      *zap.Logger

	stdout, stderr io.Writer
}

func newSession(h diag.Handler, flags lexer.Flags, log *zap.Logger, stdout, stderr io.Writer) *session {
	return &session{
		pool:     intern.NewPool(),
		universe: types.NewUniverse(),
		handler:  h,
		flags:    flags,
		log:      log,
		stdout:   stdout,
		stderr:   stderr,
	}
}

func (s *session) tokenize(path string) ([]lexer.Token, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	dirs := directives.Builtins(s.pool, directives.Options{
		Dir:     filepath.Dir(path),
		Stdout:  s.stdout,
		Stderr:  s.stderr,
		Version: version,
		Log:     s.log,
	})
	l := lexer.NewLexer(s.pool, dirs, s.handler, s.flags)
	toks := l.Tokenize(string(data), source.Start(s.pool.Intern(path)))
	s.log.Debug("tokenized", zap.String("file", path), zap.Int("tokens", len(toks)))
	return toks, nil
}

func (s *session) parse(path string) ([]ast.TopLevel, error) {
	toks, err := s.tokenize(path)
	if err != nil {
		return nil, err
	}
	if s.handler.Counts().Critical {
		return nil, s.handler.Counts().Err()
	}

	tls := parser.Parse(toks, s.handler)
	s.log.Debug("parsed", zap.String("file", path), zap.Int("toplevels", len(tls)))
	return tls, nil
}

// check parses every file and runs the declaration pass over all of them
// in one root scope.
func (s *session) check(paths []string) (*ast.Context, []ast.TopLevel, error) {
	var all []ast.TopLevel
	for _, path := range paths {
		tls, err := s.parse(path)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, tls...)
	}

	ctx := ast.NewContext(s.pool, s.universe, s.handler)
	ctx.Log = s.log
	ctx.Declare(all)

	counts := s.handler.Counts()
	s.log.Debug("checked",
		zap.Int("files", len(paths)),
		zap.Int("errors", counts.Errors),
		zap.Int("warnings", counts.Warnings),
	)
	return ctx, all, counts.Err()
}
