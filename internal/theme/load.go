package theme

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultThemeYAML []byte

// extendKey holds namespaces that merge into the base theme instead of
// replacing it.
const extendKey = "extend"

var (
	defaultOnce  sync.Once
	defaultTheme *Theme
)

// Default returns a copy of the built-in theme.
func Default() *Theme {
	defaultOnce.Do(func() {
		doc, err := Decode(defaultThemeYAML, FormatYAML)
		if err != nil {
			panic(fmt.Sprintf("theme: built-in theme does not parse: %v", err))
		}
		t, err := FromDocument(doc, New(), "default.yaml")
		if err != nil {
			panic(fmt.Sprintf("theme: built-in theme is invalid: %v", err))
		}
		defaultTheme = t
	})
	return defaultTheme.Clone()
}

// Format is a theme file syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// FormatFor returns the format for a file path by extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, NewInvalidThemeError(path, "unsupported file type "+filepath.Ext(path))
}

// Decode parses a theme document into a generic map. JSON may contain
// comments and trailing commas.
func Decode(data []byte, format Format) (map[string]any, error) {
	var doc map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// Load reads a theme file and applies it over base. A nil base means the
// built-in theme.
func Load(path string, base *Theme) (*Theme, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, path, err)
	}
	if base == nil {
		base = Default()
	}
	return FromDocument(doc, base, path)
}

// FromDocument builds a theme from a decoded document over a copy of base.
// Top-level namespaces replace the base namespace; namespaces under
// "extend" are merged key by key. References are resolved last, so they may
// point at base values.
func FromDocument(doc map[string]any, base *Theme, filePath string) (*Theme, error) {
	t := base.Clone()

	for _, name := range slices.Sorted(maps.Keys(doc)) {
		if name == extendKey {
			continue
		}
		values, err := flattenNamespace(doc[name], name, filePath)
		if err != nil {
			return nil, err
		}
		t.replaceNamespace(name, values)
	}

	if raw, ok := doc[extendKey]; ok {
		ext, ok := asMap(raw)
		if !ok {
			return nil, NewInvalidThemeError(filePath, "extend must be a map of namespaces")
		}
		for _, name := range slices.Sorted(maps.Keys(ext)) {
			values, err := flattenNamespace(ext[name], name, filePath)
			if err != nil {
				return nil, err
			}
			for _, key := range slices.Sorted(maps.Keys(values)) {
				t.set(name, key, values[key])
			}
		}
	}

	if err := ResolveAliases(t, filePath); err != nil {
		return nil, err
	}
	return t, nil
}

// flattenNamespace turns a nested namespace map into flat keys joined by
// "-". A scalar namespace becomes its DEFAULT.
func flattenNamespace(raw any, name, filePath string) (map[string]string, error) {
	if strings.Contains(name, ".") || name == "" {
		return nil, NewInvalidThemeError(filePath, fmt.Sprintf("namespace name %q must not be empty or contain dots", name))
	}
	out := make(map[string]string)
	if m, ok := asMap(raw); ok {
		if err := flatten(m, "", out, filePath, name); err != nil {
			return nil, err
		}
		return out, nil
	}
	v, err := scalar(raw)
	if err != nil {
		return nil, NewInvalidThemeError(filePath, fmt.Sprintf("%s: %v", name, err))
	}
	out[DefaultKey] = v
	return out, nil
}

func flatten(m map[string]any, path string, out map[string]string, filePath, trail string) error {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		raw := m[key]
		full := key
		switch {
		case isGroupMarker(key) && path == "":
			full = DefaultKey
		case isGroupMarker(key):
			full = path
		case path != "":
			full = path + "-" + key
		}

		if child, ok := asMap(raw); ok {
			if isGroupMarker(key) {
				return NewInvalidThemeError(filePath, fmt.Sprintf("%s.%s: group marker must hold a value", trail, key))
			}
			if err := flatten(child, full, out, filePath, trail+"."+key); err != nil {
				return err
			}
			continue
		}

		v, err := scalar(raw)
		if err != nil {
			return NewInvalidThemeError(filePath, fmt.Sprintf("%s.%s: %v", trail, key, err))
		}
		out[full] = v
	}
	return nil
}

// asMap accepts both map shapes produced by the decoders.
func asMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

// scalar renders a leaf value as CSS text. Lists become comma-separated,
// which suits font stacks and shadows.
func scalar(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalar(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	case nil:
		return "", fmt.Errorf("missing value")
	}
	return "", fmt.Errorf("unsupported value of type %T", raw)
}
