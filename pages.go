package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/gohugoio/hugo/parser"
	"github.com/spf13/cast"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// PageEntry is one navigation entry paired with the title of the Markdown
// page it points at.
type PageEntry struct {
	Section string
	NavItem
	Title string
	Found bool
}

func isAbsoluteURL(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// pageFile maps a route to the Markdown source the generator builds it
// from. Routes resolving outside docsDir report ok=false.
func pageFile(docsDir, link string) (string, bool) {
	route := strings.TrimSuffix(strings.TrimPrefix(link, "/"), ".html")
	if route == "" || strings.HasSuffix(route, "/") {
		route += "index"
	}
	file := filepath.Join(docsDir, filepath.FromSlash(route)+".md")
	rel, err := filepath.Rel(docsDir, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return file, true
}

// PageTitle reads the front matter title of the page behind link. Absolute
// URLs and missing pages are reported with ok=false and no error.
func PageTitle(docsDir, link string) (string, bool, error) {
	if isAbsoluteURL(link) {
		return "", false, nil
	}

	file, ok := pageFile(docsDir, link)
	if !ok {
		return "", false, nil
	}
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	page, err := parser.ReadFrom(bytes.NewBuffer(data))
	if err != nil {
		return "", false, err
	}
	metadata, err := page.Metadata()
	if err != nil {
		return "", false, err
	}
	if metadata == nil {
		return "", true, nil
	}

	title, ok, err := unstructured.NestedFieldNoCopy(metadata, "title")
	if err != nil || !ok {
		return "", true, err
	}
	return cast.ToString(title), true, nil
}

// PageIndex lists nav and sidebar entries of cfg with their page titles.
func PageIndex(cfg SiteConfig, docsDir string) ([]PageEntry, error) {
	var entries []PageEntry
	add := func(section string, item NavItem) error {
		title, found, err := PageTitle(docsDir, item.Link)
		if err != nil {
			return err
		}
		entries = append(entries, PageEntry{Section: section, NavItem: item, Title: title, Found: found})
		return nil
	}

	for _, item := range cfg.Theme.Nav {
		if err := add("nav", item); err != nil {
			return nil, err
		}
	}
	for _, group := range cfg.Theme.Sidebar {
		for _, item := range group.Items {
			if err := add(group.Text, item); err != nil {
				return nil, err
			}
		}
	}
	return entries, nil
}
