package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	asimonimConfig "bennypowers.dev/asimonim/config"
	asimonimFS "bennypowers.dev/asimonim/fs"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/theme"
	"github.com/tidwall/jsonc"
)

// FileNames are the project configuration files, in lookup order.
var FileNames = []string{"utilgen.yaml", "utilgen.yml", "utilgen.json", "utilgen.jsonc", "utilgen.toml"}

// packageJSONKey is the package.json field holding configuration.
const packageJSONKey = "utilgen"

// Load finds and reads the configuration of the project at root.
func Load(root string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path, root)
		}
	}

	cfg, err := fromPackageJSON(root)
	if err != nil || cfg != nil {
		return cfg, err
	}

	cfg, err = fromAsimonim(root)
	if err != nil || cfg != nil {
		return cfg, err
	}

	log.Debug("No configuration in %s, using defaults", root)
	return Default(root), nil
}

// LoadFile reads a configuration file for the project at root.
func LoadFile(path, root string) (*Config, error) {
	format, err := theme.FormatFor(path)
	if err != nil {
		return nil, NewInvalidConfigError(path, "", "unsupported file type "+filepath.Ext(path))
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the project's own configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	doc, err := theme.Decode(data, format)
	if err != nil {
		return nil, NewInvalidConfigError(path, "", err.Error())
	}
	cfg, err := FromMap(doc, root, path)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded configuration %s", path)
	return cfg, nil
}

// FromMap builds a configuration from a decoded document over Default.
// file names the document in errors.
func FromMap(doc map[string]any, root, file string) (*Config, error) {
	c := Default(root)
	c.File = file

	var err error
	if v, ok := doc["content"]; ok {
		if c.Content, err = stringsField(v); err != nil {
			return nil, NewInvalidConfigError(file, "content", err.Error())
		}
	}
	if v, ok := doc["exclude"]; ok {
		if c.Exclude, err = stringsField(v); err != nil {
			return nil, NewInvalidConfigError(file, "exclude", err.Error())
		}
	}
	for field, dst := range map[string]*string{
		"input":  &c.Input,
		"output": &c.Output,
		"theme":  &c.Theme,
		"prefix": &c.Prefix,
	} {
		v, ok := doc[field]
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return nil, NewInvalidConfigError(file, field, fmt.Sprintf("expected a string, got %T", v))
		}
		*dst = s
	}
	if v, ok := doc["tokens"]; ok {
		if c.Tokens, err = tokensField(v); err != nil {
			return nil, NewInvalidConfigError(file, "tokens", err.Error())
		}
	}
	if v, ok := doc["darkMode"]; ok {
		s, isString := v.(string)
		if !isString {
			return nil, NewInvalidConfigError(file, "darkMode", fmt.Sprintf("expected a string, got %T", v))
		}
		if c.DarkMode, err = design.ParseDarkMode(s); err != nil {
			return nil, NewInvalidConfigError(file, "darkMode", err.Error())
		}
	}
	if v, ok := doc["important"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return nil, NewInvalidConfigError(file, "important", fmt.Sprintf("expected a boolean, got %T", v))
		}
		c.Important = b
	}
	if v, ok := doc["mode"]; ok {
		s, isString := v.(string)
		if !isString {
			return nil, NewInvalidConfigError(file, "mode", fmt.Sprintf("expected a string, got %T", v))
		}
		c.Mode = Mode(strings.ToLower(s))
	}
	if v, ok := doc["workers"]; ok {
		n, isNumber := intField(v)
		if !isNumber {
			return nil, NewInvalidConfigError(file, "workers", fmt.Sprintf("expected a number, got %T", v))
		}
		c.Workers = n
	}
	if v, ok := doc["shortcuts"]; ok {
		if c.Shortcuts, err = shortcutsField(v); err != nil {
			return nil, NewInvalidConfigError(file, "shortcuts", err.Error())
		}
	}

	for key := range doc {
		if !knownFields[key] {
			log.Warn("Ignoring unknown configuration field %q in %s", key, file)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var knownFields = map[string]bool{
	"$schema": true, "content": true, "exclude": true, "input": true, "output": true,
	"theme": true, "tokens": true, "prefix": true, "darkMode": true, "important": true,
	"mode": true, "workers": true, "shortcuts": true,
}

// stringsField accepts a string or a list of strings.
func stringsField(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list of strings, got %T", v)
}

// tokensField accepts paths and {path, prefix, namespace} objects, alone or
// in a list.
func tokensField(v any) ([]theme.TokenSource, error) {
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	out := make([]theme.TokenSource, 0, len(items))
	for _, item := range items {
		switch item := item.(type) {
		case string:
			out = append(out, theme.TokenSource{Path: item})
		case map[string]any:
			path, _ := item["path"].(string)
			if path == "" {
				return nil, errors.New("token file object without a path")
			}
			prefix, _ := item["prefix"].(string)
			namespace, _ := item["namespace"].(string)
			out = append(out, theme.TokenSource{Path: path, Prefix: prefix, Namespace: namespace})
		default:
			return nil, fmt.Errorf("expected a path or an object, got %T", item)
		}
	}
	return out, nil
}

// shortcutsField accepts lists or space-separated strings of candidates.
func shortcutsField(v any) (map[string][]string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a map, got %T", v)
	}
	out := make(map[string][]string, len(m))
	for name, raw := range m {
		if s, isString := raw.(string); isString {
			out[name] = strings.Fields(s)
			continue
		}
		list, err := stringsField(raw)
		if err != nil {
			return nil, fmt.Errorf("shortcut %q: %w", name, err)
		}
		out[name] = list
	}
	return out, nil
}

// intField accepts the number types the decoders produce.
func intField(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// fromPackageJSON reads the "utilgen" object of package.json. It returns
// nil when there is no such object.
func fromPackageJSON(root string) (*Config, error) {
	path := filepath.Join(root, "package.json")
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the workspace package.json
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	raw, ok := pkg[packageJSONKey]
	if !ok {
		return nil, nil
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, NewInvalidConfigError(path, packageJSONKey, "must be an object")
	}
	cfg, err := FromMap(doc, root, path)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded configuration from %s", path)
	return cfg, nil
}

// fromAsimonim takes the token files of an asimonim configuration. It
// returns nil when there is none.
func fromAsimonim(root string) (*Config, error) {
	filesystem := asimonimFS.NewOSFileSystem()
	acfg, err := asimonimConfig.Load(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read design tokens config: %w", err)
	}
	if acfg == nil {
		return nil, nil
	}

	c := Default(root)
	expanded, err := acfg.ExpandFiles(filesystem, root)
	if err != nil {
		log.Warn("Failed to expand design token globs: %v", err)
		for _, spec := range acfg.Files {
			prefix := spec.Prefix
			if prefix == "" {
				prefix = acfg.Prefix
			}
			c.Tokens = append(c.Tokens, theme.TokenSource{Path: spec.Path, Prefix: prefix})
		}
	} else {
		for _, path := range expanded {
			c.Tokens = append(c.Tokens, theme.TokenSource{Path: path, Prefix: acfg.Prefix})
		}
	}

	log.Info("Using %d token files from the design tokens config", len(c.Tokens))
	return c, nil
}
