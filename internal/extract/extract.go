// Package extract finds the class-bearing regions of source files with
// tree-sitter, so the scanner only reads text that can hold class names.
//
// HTML contributes class attributes, and its script and style elements are
// handed to the JavaScript and CSS extractors. JavaScript contributes JSX
// class attributes, string arguments of class helpers like clsx and cva, and
// tw and html tagged templates. CSS contributes @apply parameters.
package extract

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/utilgen/internal/collections"
	"bennypowers.dev/utilgen/internal/scanner"
)

// Language is a source language extraction understands.
type Language int

const (
	// Unknown files are scanned whole.
	Unknown Language = iota
	HTML
	JavaScript
	CSS
)

// languageIDs maps LSP language IDs to languages.
var languageIDs = map[string]Language{
	"html":            HTML,
	"vue":             HTML,
	"svelte":          HTML,
	"astro":           HTML,
	"javascript":      JavaScript,
	"javascriptreact": JavaScript,
	"typescript":      JavaScript,
	"typescriptreact": JavaScript,
	"css":             CSS,
}

var extensions = map[string]Language{
	".html":   HTML,
	".htm":    HTML,
	".vue":    HTML,
	".svelte": HTML,
	".astro":  HTML,
	".js":     JavaScript,
	".mjs":    JavaScript,
	".cjs":    JavaScript,
	".jsx":    JavaScript,
	".ts":     JavaScript,
	".mts":    JavaScript,
	".tsx":    JavaScript,
	".css":    CSS,
}

// LanguageFor returns the language of path by its extension.
func LanguageFor(path string) Language {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// LanguageForID returns the language for an LSP language ID.
func LanguageForID(id string) Language {
	return languageIDs[id]
}

// Kind says where a region came from.
type Kind int

const (
	// ClassAttribute is the value of a class attribute or directive.
	ClassAttribute Kind = iota + 1
	// ClassString is a string literal passed to a class helper or assigned
	// to a JSX class attribute.
	ClassString
	// Template is a literal segment of a tw or html tagged template.
	Template
	// Apply is the parameter list of an @apply rule.
	Apply
)

// Region is a span of a file that may contain candidates.
type Region struct {
	Content string
	// Offset is the byte offset of Content in the file.
	Offset int
	Kind   Kind
}

// Regions returns the class-bearing regions of content in source order
// within each kind. It returns nil for Unknown.
func Regions(lang Language, content []byte) []Region {
	switch lang {
	case HTML:
		p := acquireHTML()
		defer releaseHTML(p)
		return p.regions(content, 0)
	case JavaScript:
		p := acquireJS()
		defer releaseJS(p)
		return p.regions(content, 0)
	case CSS:
		p := acquireCSS()
		defer releaseCSS(p)
		return p.regions(content, 0)
	}
	return nil
}

// Scan returns the candidates in content. Known languages are scanned
// region by region; anything else is scanned whole.
func Scan(s *scanner.Scanner, lang Language, content []byte) collections.Set[string] {
	if lang == Unknown {
		return s.Scan(content)
	}
	set := collections.NewSet[string]()
	for _, r := range Regions(lang, content) {
		set.Union(s.Scan([]byte(r.Content)))
	}
	return set
}

// TokenAt returns the candidate under byte offset, looking only inside the
// regions of a known language.
func TokenAt(s *scanner.Scanner, lang Language, content []byte, offset int) (token string, start, end int, ok bool) {
	if lang == Unknown {
		return s.TokenAt(content, offset)
	}
	for _, r := range Regions(lang, content) {
		if offset < r.Offset || offset > r.Offset+len(r.Content) {
			continue
		}
		token, start, end, ok = s.TokenAt([]byte(r.Content), offset-r.Offset)
		if ok {
			return token, start + r.Offset, end + r.Offset, true
		}
	}
	return "", 0, 0, false
}

// ClosePools releases the pooled parsers.
func ClosePools() {
	closeHTMLPool()
	closeJSPool()
	closeCSSPool()
}

func text(src []byte, start, end uint) string {
	return string(src[start:end])
}
