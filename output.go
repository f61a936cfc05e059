package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatModule Format = "mts"
)

var (
	ErrUnknownFormat = errors.New("unknown config format")
	ErrDrift         = errors.New("config file is out of date")
)

const (
	configDir    = ".vitepress"
	modulePrefix = "import { defineConfig } from 'vitepress'\n\nexport default defineConfig("
	moduleSuffix = ")\n"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatJSON, FormatYAML, FormatModule:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

func Encode(cfg SiteConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encodeJSON(cfg)
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatModule:
		data, err := encodeJSON(cfg)
		if err != nil {
			return nil, err
		}
		return []byte(modulePrefix + strings.TrimSuffix(string(data), "\n") + moduleSuffix), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func encodeJSON(cfg SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConfigPath is where the generator expects its config inside projectDir.
func ConfigPath(projectDir string, format Format) string {
	return filepath.Join(projectDir, configDir, "config."+string(format))
}

// WriteConfig writes Site() into projectDir and returns the file path.
func WriteConfig(projectDir string, format Format) (string, error) {
	data, err := Encode(Site(), format)
	if err != nil {
		return "", err
	}

	path := ConfigPath(projectDir, format)
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return "", err
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}
	return path, nil
}

func DecodeFile(path string) (SiteConfig, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return SiteConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, err
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return cfg, nil
}

func Decode(data []byte, format Format) (SiteConfig, error) {
	obj, err := decodeRaw(data, format)
	if err != nil {
		return SiteConfig{}, err
	}
	return fromUnstructured(obj)
}

func decodeRaw(data []byte, format Format) (map[string]interface{}, error) {
	switch format {
	case FormatJSON:
		obj := map[string]interface{}{}
		err := json.Unmarshal(data, &obj)
		return obj, err
	case FormatModule:
		s := string(data)
		start := strings.Index(s, "defineConfig(")
		end := strings.LastIndex(s, ")")
		if start < 0 || end < start {
			return nil, errors.New("no defineConfig(...) call found")
		}
		return decodeRaw([]byte(s[start+len("defineConfig("):end]), FormatJSON)
	case FormatYAML:
		var v interface{}
		err := yaml.Unmarshal(data, &v)
		if err != nil {
			return nil, err
		}
		n, err := normalize(v)
		if err != nil {
			return nil, err
		}
		obj, ok := n.(map[string]interface{})
		if !ok {
			return nil, errors.New("top level of config is not a mapping")
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// normalize turns yaml.v2 output into JSON-compatible values so the
// unstructured helpers can deep copy them.
func normalize(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		return normalize(cast.ToStringMap(t))
	case map[string]interface{}:
		for k, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			t[k] = n
		}
		return t, nil
	case []interface{}:
		for i := range t {
			n, err := normalize(t[i])
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			t[i] = n
		}
		return t, nil
	case nil, string, bool, int64, float64:
		return t, nil
	case int, int8, int16, int32:
		return cast.ToInt64(t), nil
	case uint, uint8, uint16, uint32, uint64:
		u := cast.ToUint64(t)
		if u > math.MaxInt64 {
			return float64(u), nil
		}
		return int64(u), nil
	case float32:
		return float64(t), nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", t)
	}
}

func fromUnstructured(obj map[string]interface{}) (SiteConfig, error) {
	var cfg SiteConfig
	var err error

	if cfg.Title, _, err = unstructured.NestedString(obj, "title"); err != nil {
		return cfg, err
	}
	if cfg.Description, _, err = unstructured.NestedString(obj, "description"); err != nil {
		return cfg, err
	}
	if cfg.MarkdownOptions.Math, _, err = unstructured.NestedBool(obj, "markdown", "math"); err != nil {
		return cfg, err
	}

	if cfg.Theme.Nav, err = navItems(obj, "themeConfig", "nav"); err != nil {
		return cfg, err
	}

	groups, _, err := unstructured.NestedSlice(obj, "themeConfig", "sidebar")
	if err != nil {
		return cfg, err
	}
	for i, g := range groups {
		m, err := cast.ToStringMapE(g)
		if err != nil {
			return cfg, fmt.Errorf("sidebar[%d]: %w", i, err)
		}
		var group SidebarGroup
		if group.Text, _, err = unstructured.NestedString(m, "text"); err != nil {
			return cfg, fmt.Errorf("sidebar[%d]: %w", i, err)
		}
		if group.Items, err = navItems(m, "items"); err != nil {
			return cfg, fmt.Errorf("sidebar[%d]: %w", i, err)
		}
		cfg.Theme.Sidebar = append(cfg.Theme.Sidebar, group)
	}

	links, _, err := unstructured.NestedSlice(obj, "themeConfig", "socialLinks")
	if err != nil {
		return cfg, err
	}
	for i, l := range links {
		m, err := cast.ToStringMapE(l)
		if err != nil {
			return cfg, fmt.Errorf("socialLinks[%d]: %w", i, err)
		}
		var link SocialLink
		if link.Icon, _, err = unstructured.NestedString(m, "icon"); err != nil {
			return cfg, fmt.Errorf("socialLinks[%d]: %w", i, err)
		}
		if link.Link, _, err = unstructured.NestedString(m, "link"); err != nil {
			return cfg, fmt.Errorf("socialLinks[%d]: %w", i, err)
		}
		cfg.Theme.SocialLinks = append(cfg.Theme.SocialLinks, link)
	}

	return cfg, nil
}

func navItems(obj map[string]interface{}, fields ...string) ([]NavItem, error) {
	raw, _, err := unstructured.NestedSlice(obj, fields...)
	if err != nil {
		return nil, err
	}
	var items []NavItem
	for i, r := range raw {
		m, err := cast.ToStringMapE(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", strings.Join(fields, "."), i, err)
		}
		var item NavItem
		if item.Text, _, err = unstructured.NestedString(m, "text"); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", strings.Join(fields, "."), i, err)
		}
		if item.Link, _, err = unstructured.NestedString(m, "link"); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", strings.Join(fields, "."), i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Diff reports how got differs from want; empty when they match.
func Diff(want, got SiteConfig) string {
	return cmp.Diff(want, got)
}
