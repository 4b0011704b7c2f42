// Package config reads and writes coral.yaml, the manifest at the root of
// every module.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/coral/logger"
)

// FileName is the manifest file name looked up in the module directory.
const FileName = "coral.yaml"

type Diagnostics struct {
	Strict         bool `yaml:"strict"`
	Quiet          bool `yaml:"quiet"`
	WarnWhitespace bool `yaml:"warn-whitespace"`
}

type Manifest struct {
	Package     string        `yaml:"package"`
	Sources     []string      `yaml:"sources"`
	Log         logger.Config `yaml:"log"`
	Diagnostics Diagnostics   `yaml:"diagnostics"`
}

func Default(pkg string) Manifest {
	return Manifest{
		Package: pkg,
		Sources: []string{"*.co"},
		Log:     logger.NewConfig(),
	}
}

// Load reads the manifest at path. Settings missing from the file keep
// their defaults.
func Load(path string) (Manifest, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Manifest{}, tracerr.Wrap(err)
	}

	m := Default("")
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return Manifest{}, tracerr.Errorf("%s: %w", path, err)
	}
	if m.Package == "" {
		return Manifest{}, tracerr.Errorf("%s: package is not set", path)
	}
	return m, nil
}

func Write(path string, m Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return tracerr.Wrap(ioutil.WriteFile(path, out, 0644))
}

// Files expands the source globs relative to dir. Each file is listed once,
// in lexical order.
func (m Manifest) Files(dir string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range m.Sources {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		for _, match := range matches {
			if fi, err := os.Stat(match); err != nil || fi.IsDir() || seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	sort.Strings(files)
	return files, nil
}
