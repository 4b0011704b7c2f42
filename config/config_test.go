package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pontaoski/coral/logger"
)

func TestWriteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	m := Default("hello")
	m.Diagnostics.Strict = true

	require.NoError(t, Write(path, m))
	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Fatalf("manifest changed (-want +got):\n%s", diff)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, ioutil.WriteFile(path, []byte("package: app\nlog:\n  level: debug\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Manifest{
		Package: "app",
		Sources: []string{"*.co"},
		Log:     logger.Config{Format: "auto", Level: zapcore.DebugLevel},
	}, got)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(dir, FileName)
	require.NoError(t, ioutil.WriteFile(path, []byte("sources: [a.co]\n"), 0644))
	_, err = Load(path)
	require.EqualError(t, err, path+": package is not set")

	require.NoError(t, ioutil.WriteFile(path, []byte("package: x\ncolour: red\n"), 0644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.co", "a.co", "notes.txt", "gen.co"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	m := Default("x")
	m.Sources = []string{"*.co", "gen.co"}
	files, err := m.Files(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.co"),
		filepath.Join(dir, "b.co"),
		filepath.Join(dir, "gen.co"),
	}, files)
}
