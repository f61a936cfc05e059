package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, docsDir, rel, content string) {
	t.Helper()
	path := filepath.Join(docsDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestPageFile(t *testing.T) {
	for link, want := range map[string]string{
		"/":                         filepath.Join("docs", "index.md"),
		"/algos/":                   filepath.Join("docs", "algos", "index.md"),
		"/prob-stats/distributions": filepath.Join("docs", "prob-stats", "distributions.md"),
		"/markdown-examples.html":   filepath.Join("docs", "markdown-examples.md"),
	} {
		got, ok := pageFile("docs", link)
		assert.True(t, ok, link)
		assert.Equal(t, want, got, link)
	}
}

func TestPageFileOutsideDocs(t *testing.T) {
	for _, link := range []string{"/../../etc/passwd", "/..", "/algos/../../secret"} {
		_, ok := pageFile("docs", link)
		assert.False(t, ok, link)
	}
}

func TestPageTitleOutsideDocs(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	writePage(t, root, "secret.md", "---\ntitle: Secret\n---\n")
	require.NoError(t, os.MkdirAll(docs, 0755))

	title, ok, err := PageTitle(docs, "/../secret")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, title)
}

func TestPageTitle(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "prob-stats/distributions.md", "---\ntitle: Probability Distributions\n---\n\n# Distributions\n")

	title, ok, err := PageTitle(docs, "/prob-stats/distributions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Probability Distributions", title)

	_, ok, err = PageTitle(docs, "/algos/arrays")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = PageTitle(docs, "https://github.com/ajagekarakshay")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageTitleWithoutTitleField(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "---\nlayout: home\n---\n")

	title, ok, err := PageTitle(docs, "/")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, title)
}

func TestPageIndex(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "---\ntitle: Home\n---\n")
	writePage(t, docs, "algos/arrays.md", "---\ntitle: Arrays\n---\n")

	entries, err := PageIndex(Site(), docs)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, PageEntry{Section: "nav", NavItem: NavItem{Text: "Home", Link: "/"}, Title: "Home", Found: true}, entries[0])
	assert.False(t, entries[1].Found)
	assert.Equal(t, "Probability & Statistics", entries[2].Section)
	assert.False(t, entries[2].Found)
	assert.Equal(t, "Arrays", entries[3].Title)
}
