package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/codegen"
	"github.com/pontaoski/coral/config"
	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/lexer"
	"github.com/pontaoski/coral/logger"
	"github.com/pontaoski/coral/reader"
)

const version = "0.1.0"

// manifest loads coral.yaml from the working directory, falling back to
// defaults when there is none.
func manifest() (config.Manifest, error) {
	m, err := config.Load(config.FileName)
	if os.IsNotExist(tracerr.Unwrap(err)) {
		return config.Default(filepath.Base(mustGetwd())), nil
	}
	return m, err
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "main"
	}
	return wd
}

// boolFlag is the value of a flag given on the command line, or fallback.
func boolFlag(c *cli.Context, name string, fallback bool) bool {
	if c.IsSet(name) {
		return c.Bool(name)
	}
	return fallback
}

func handlerFor(c *cli.Context, m config.Manifest, log *zap.Logger) diag.Handler {
	switch {
	case c.Bool("verbose"):
		return diag.NewLogged(log)
	case boolFlag(c, "quiet", m.Diagnostics.Quiet):
		return diag.NewQuiet()
	case boolFlag(c, "strict", m.Diagnostics.Strict):
		return diag.NewStrict(c.App.ErrWriter)
	}
	return diag.NewDefault(c.App.ErrWriter)
}

// setup builds the session every compiling command runs in.
func setup(c *cli.Context) (*session, config.Manifest, error) {
	m, err := manifest()
	if err != nil {
		return nil, m, err
	}

	logConfig := m.Log
	if c.IsSet("log-level") {
		if err := logConfig.Level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
			return nil, m, tracerr.Wrap(err)
		}
	}
	if c.Bool("verbose") && logConfig.Level > zapcore.InfoLevel {
		logConfig.Level = zapcore.InfoLevel
	}
	log, err := logger.New(c.App.ErrWriter, logConfig)
	if err != nil {
		return nil, m, tracerr.Wrap(err)
	}
	c.Context = logger.NewContextWithLogger(c.Context, log)

	var flags lexer.Flags
	if boolFlag(c, "warn-whitespace", m.Diagnostics.WarnWhitespace) {
		flags |= lexer.WarnWhitespace
	}

	return newSession(handlerFor(c, m, log), flags, log, c.App.Writer, c.App.ErrWriter), m, nil
}

// sources is the files named on the command line, or the manifest's.
func sources(c *cli.Context, m config.Manifest) ([]string, error) {
	if c.NArg() > 0 {
		return c.Args().Slice(), nil
	}
	files, err := m.Files(".")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, tracerr.Errorf("no source files match %s", strings.Join(m.Sources, ", "))
	}
	return files, nil
}

func initCommand(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return tracerr.New("no module name provided")
	}
	if _, err := os.Stat(config.FileName); err == nil {
		return tracerr.Errorf("%s already exists", config.FileName)
	}
	return config.Write(config.FileName, config.Default(name))
}

func tokensCommand(c *cli.Context) error {
	s, _, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return tracerr.New("expected exactly one source file")
	}

	toks, err := s.tokenize(c.Args().First())
	if err != nil {
		return err
	}
	if c.Bool("raw") {
		repr.New(c.App.Writer).Println(toks)
	} else {
		for _, tok := range toks {
			fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", tok.Location, tok.Kind(), tok)
		}
	}
	return s.handler.Counts().Err()
}

func parseCommand(c *cli.Context) error {
	s, m, err := setup(c)
	if err != nil {
		return err
	}
	files, err := sources(c, m)
	if err != nil {
		return err
	}

	for _, file := range files {
		tls, err := s.parse(file)
		if err != nil {
			return err
		}
		if c.Bool("raw") {
			repr.New(c.App.Writer).Println(tls)
			continue
		}
		if err := ast.Print(c.App.Writer, tls); err != nil {
			return tracerr.Wrap(err)
		}
	}
	return s.handler.Counts().Err()
}

func checkCommand(c *cli.Context) error {
	s, m, err := setup(c)
	if err != nil {
		return err
	}
	files, err := sources(c, m)
	if err != nil {
		return err
	}

	_, _, err = s.check(files)
	counts := s.handler.Counts()
	fmt.Fprintf(c.App.ErrWriter, "%d errors, %d warnings\n", counts.Errors, counts.Warnings)
	return err
}

func buildCommand(c *cli.Context) error {
	s, m, err := setup(c)
	if err != nil {
		return err
	}
	files, err := sources(c, m)
	if err != nil {
		return err
	}

	ctx, tls, err := s.check(files)
	if err != nil {
		return err
	}
	module := codegen.Emit(ctx, tls).String()
	log := logger.FromContext(c.Context)

	if c.Bool("dump") {
		_, err := io.WriteString(c.App.Writer, module)
		return tracerr.Wrap(err)
	}

	out := c.String("output")
	if out == "" {
		out = m.Package
	}
	if !c.Bool("library") {
		if filepath.Ext(out) != ".ll" {
			out += ".ll"
		}
		log.Info("writing module", zap.String("path", out))
		return tracerr.Wrap(ioutil.WriteFile(out, []byte(module), 0644))
	}

	fi, err := ioutil.TempFile("", "*.ll")
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer os.Remove(fi.Name())
	defer fi.Close()
	if _, err := io.WriteString(fi, module); err != nil {
		return tracerr.Wrap(err)
	}

	cmd := exec.Command("clang", "-shared", "-o", out, fi.Name())
	cmd.Stdout = c.App.Writer
	cmd.Stderr = c.App.ErrWriter
	log.Info("linking library", zap.String("path", out), zap.Strings("args", cmd.Args))
	return tracerr.Wrap(cmd.Run())
}

func typeinfoCommand(c *cli.Context) error {
	s, _, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return tracerr.New("expected exactly one library")
	}

	info, err := reader.Load(c.Args().First())
	if err != nil {
		return err
	}
	if c.Bool("raw") {
		repr.New(c.App.Writer).Println(info)
		return nil
	}
	printTypeInfo(c.App.Writer, info, s)
	return nil
}

func printTypeInfo(w io.Writer, info codegen.TypeInfo, s *session) {
	resolved := info.Resolve(s.universe)
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if t := resolved[name]; t != nil {
			fmt.Fprintf(w, "%s: %s\n", name, t)
		} else {
			fmt.Fprintf(w, "%s: unknown type %q\n", name, info.Values[name])
		}
	}
}

func newApp() *cli.App {
	raw := &cli.BoolFlag{Name: "raw", Usage: "dump the internal representation"}

	return &cli.App{
		Name:    "coralc",
		Usage:   "coral compiler",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict", Usage: "treat warnings as errors"},
			&cli.BoolFlag{Name: "quiet", Usage: "only count diagnostics"},
			&cli.BoolFlag{Name: "verbose", Usage: "report diagnostics through the log"},
			&cli.BoolFlag{Name: "warn-whitespace", Usage: "warn about non-ASCII whitespace"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			tracerr.PrintSourceColor(err)
			cli.OsExiter(1)
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "init a directory",
				Action: initCommand,
			},
			{
				Name:   "tokens",
				Usage:  "print the tokens of a file",
				Flags:  []cli.Flag{raw},
				Action: tokensCommand,
			},
			{
				Name:   "parse",
				Usage:  "print the syntax tree of files",
				Flags:  []cli.Flag{raw},
				Action: parseCommand,
			},
			{
				Name:   "check",
				Usage:  "parse files and check their declarations",
				Action: checkCommand,
			},
			{
				Name:  "build",
				Usage: "build a module",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output"},
					&cli.BoolFlag{Name: "dump"},
					&cli.BoolFlag{Name: "library"},
				},
				Action: buildCommand,
			},
			{
				Name:   "typeinfo",
				Usage:  "dump typeinfo from a compiled module",
				Flags:  []cli.Flag{raw},
				Action: typeinfoCommand,
			},
		},
	}
}

func main() {
	newApp().Run(os.Args)
}
