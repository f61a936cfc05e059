package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	opts, err := loadOptions("", nil)
	require.NoError(t, err)
	assert.Equal(t, Options{
		ProjectDir: ".",
		DocsDir:    "docs",
		Format:     "mts",
		Generator:  "npx vitepress",
		LogLevel:   "info",
	}, opts)
	assert.Equal(t, "docs", opts.Docs())
}

func TestLoadOptionsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "qfe.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("projectDir: site\nformat: yaml\n"), 0644))
	t.Setenv("QFE_DOCSDIR", "notes")

	opts, err := loadOptions(cfgFile, nil)
	require.NoError(t, err)
	assert.Equal(t, "site", opts.ProjectDir)
	assert.Equal(t, "yaml", opts.Format)
	assert.Equal(t, filepath.Join("site", "notes"), opts.Docs())
}

func TestLoadOptionsMissingExplicitFile(t *testing.T) {
	_, err := loadOptions(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadOptionsBadFormat(t *testing.T) {
	t.Setenv("QFE_FORMAT", "toml")
	chdir(t, t.TempDir())

	_, err := loadOptions("", nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestGeneratorCommand(t *testing.T) {
	name, args, err := generatorCommand(Options{Generator: "npx vitepress", DocsDir: "docs"}, "build")
	require.NoError(t, err)
	assert.Equal(t, "npx", name)
	assert.Equal(t, []interface{}{"vitepress", "build", "docs"}, args)

	_, _, err = generatorCommand(Options{Generator: "  "}, "build")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(os.Stderr, "debug")
	assert.NoError(t, err)
	_, err = newLogger(os.Stderr, "loud")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
