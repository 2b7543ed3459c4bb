package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/validator"
	"bennypowers.dev/utilgen/internal/log"
	"gopkg.in/yaml.v3"
)

// TokenSource describes a design token file merged into the theme.
type TokenSource struct {
	Path string `json:"path" yaml:"path"`
	// Prefix is passed to the token parser; it only affects token names.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	// Namespace puts every token of the file into one namespace, keyed by
	// its full path. When empty, the first path segment picks the namespace.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// tokenNamespaces maps common DTCG top-level groups to theme namespaces.
var tokenNamespaces = map[string]string{
	"color":         "colors",
	"colors":        "colors",
	"space":         "spacing",
	"spacing":       "spacing",
	"size":          "spacing",
	"font-size":     "fontSize",
	"fontSize":      "fontSize",
	"font-weight":   "fontWeight",
	"fontWeight":    "fontWeight",
	"font-family":   "fontFamily",
	"fontFamily":    "fontFamily",
	"line-height":   "lineHeight",
	"lineHeight":    "lineHeight",
	"radius":        "borderRadius",
	"border-radius": "borderRadius",
	"borderRadius":  "borderRadius",
	"shadow":        "boxShadow",
	"box-shadow":    "boxShadow",
	"boxShadow":     "boxShadow",
	"breakpoint":    "screens",
	"screens":       "screens",
	"opacity":       "opacity",
	"z-index":       "zIndex",
	"duration":      "transitionDuration",
}

// ApplyTokens parses a DTCG token file and merges its tokens into a copy of
// base. YAML token files are converted to JSON first.
func ApplyTokens(src TokenSource, base *Theme) (*Theme, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens %s: %w", src.Path, err)
	}

	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".json", ".jsonc":
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML tokens %s: %w", src.Path, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert YAML tokens %s: %w", src.Path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported token file type %s: %s", filepath.Ext(src.Path), src.Path)
	}

	return ParseTokens(data, src, base)
}

// ParseTokens merges the tokens in a DTCG JSON document into a copy of base.
func ParseTokens(data []byte, src TokenSource, base *Theme) (*Theme, error) {
	parser := asimonimParser.NewJSONParser()
	parsed, err := parser.Parse(data, asimonimParser.Options{
		Prefix:       src.Prefix,
		GroupMarkers: GroupMarkers,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, src.Path, err)
	}

	version := schema.Draft
	for _, tok := range parsed {
		if tok.SchemaVersion != schema.Unknown {
			version = tok.SchemaVersion
			break
		}
	}
	for _, ve := range validator.ValidateConsistencyWithPath(data, version, src.Path) {
		log.Warn("Schema validation: %s", ve.Error())
	}

	t := base.Clone()
	added := 0
	for _, tok := range parsed {
		if len(tok.Path) == 0 {
			continue
		}
		ns, key := tokenEntry(tok.Path, src.Namespace)
		if ns == "" {
			log.Debug("Skipping token %s: no namespace", tok.Name)
			continue
		}
		t.set(ns, key, rewriteTokenReferences(tok.Value, src.Namespace))
		added++
	}

	if err := ResolveAliases(t, src.Path); err != nil {
		return nil, err
	}

	log.Info("Loaded %d tokens from %s", added, src.Path)
	return t, nil
}

// tokenEntry maps a token path to a namespace and key.
func tokenEntry(path []string, namespace string) (string, string) {
	if n := len(path); n > 1 && isGroupMarker(path[n-1]) {
		path = path[:n-1]
	}
	if namespace != "" {
		return namespace, strings.Join(path, "-")
	}
	ns, ok := tokenNamespaces[path[0]]
	if !ok {
		ns = path[0]
	}
	if strings.Contains(ns, ".") {
		return "", ""
	}
	if len(path) == 1 {
		return ns, DefaultKey
	}
	return ns, strings.Join(path[1:], "-")
}

// rewriteTokenReferences turns DTCG references ({color.brand.primary}) into
// theme references ({colors.brand-primary}).
func rewriteTokenReferences(value, namespace string) string {
	if !strings.Contains(value, "{") {
		return value
	}
	return referencePattern.ReplaceAllStringFunc(value, func(match string) string {
		path := strings.Split(match[1:len(match)-1], ".")
		ns, key := tokenEntry(path, namespace)
		if ns == "" {
			return match
		}
		return "{" + ns + "." + key + "}"
	})
}
