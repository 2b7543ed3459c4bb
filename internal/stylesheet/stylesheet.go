// Package stylesheet rewrites an input stylesheet around the generated
// utilities.
//
// The input is copied through token by token, so author CSS keeps its
// formatting. Only these at-rules are interpreted:
//
//	@utilgen utilities;   replaced with the generated rules
//	@tailwind utilities;  same, for existing stylesheets
//	@tailwind base;       dropped (no preflight is generated)
//	@source "glob";       dropped (read by content discovery)
//	@apply p-4 hover:x;   expanded inside style rules
//
// Without a utilities directive the generated rules are appended.
package stylesheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"bennypowers.dev/utilgen/internal/cssast"
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/resolver"
	"bennypowers.dev/utilgen/internal/selector"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var (
	// ErrUnknownUtility is returned when @apply names something that does
	// not resolve.
	ErrUnknownUtility = errors.New("unknown utility")
	// ErrApplyOutsideRule is returned for @apply outside a style rule.
	ErrApplyOutsideRule = errors.New("@apply outside a style rule")
)

// Error locates a failed directive in the input.
type Error struct {
	Line      int
	Directive string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Directive, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Resolver resolves @apply candidates. *resolver.Session and
// *resolver.Resolver both satisfy it.
type Resolver interface {
	Resolve(raw string) *resolver.Rule
}

// Options control rendering.
type Options struct {
	// Minify prints inserted rules without whitespace. Author CSS is copied
	// as written either way.
	Minify bool
}

type block struct {
	prelude string
	pending []cssast.Node
}

type renderer struct {
	lexer     *css.Lexer
	input     []byte
	offset    int
	out       bytes.Buffer
	prelude   strings.Builder
	stack     []*block
	resolver  Resolver
	utilities string
	inserted  bool
	opts      Options
}

// Render rewrites input with utilities inserted at the utilities directive
// and @apply rules expanded through r.
func Render(input []byte, utilities []cssast.Node, r Resolver, opts Options) ([]byte, error) {
	rr := &renderer{
		lexer:     css.NewLexer(parse.NewInputString(string(input))),
		input:     input,
		resolver:  r,
		utilities: cssast.Print(utilities, opts.Minify),
		opts:      opts,
	}
	if err := rr.run(); err != nil {
		return nil, err
	}
	if !rr.inserted && rr.utilities != "" {
		if rr.out.Len() > 0 && !bytes.HasSuffix(rr.out.Bytes(), []byte("\n")) && !opts.Minify {
			rr.out.WriteByte('\n')
		}
		rr.out.WriteString(rr.utilities)
	}
	return rr.out.Bytes(), nil
}

func (r *renderer) next() (css.TokenType, []byte) {
	tt, data := r.lexer.Next()
	r.offset += len(data)
	return tt, data
}

func (r *renderer) line() int {
	end := min(r.offset, len(r.input))
	return bytes.Count(r.input[:end], []byte("\n")) + 1
}

func (r *renderer) run() error {
	for {
		tt, data := r.next()
		switch tt {
		case css.ErrorToken:
			if err := r.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to read stylesheet: %w", err)
			}
			return nil

		case css.AtKeywordToken:
			handled, err := r.atRule(strings.ToLower(string(data[1:])))
			if err != nil {
				return err
			}
			if handled {
				r.prelude.Reset()
				continue
			}
			r.prelude.Write(data)

		case css.LeftBraceToken:
			r.stack = append(r.stack, &block{prelude: strings.TrimSpace(r.prelude.String())})
			r.prelude.Reset()

		case css.RightBraceToken:
			r.out.Write(data)
			r.closeBlock()
			continue

		case css.SemicolonToken:
			r.prelude.Reset()

		case css.CommentToken:

		default:
			r.prelude.Write(data)
		}
		r.out.Write(data)
	}
}

// closeBlock pops the current block and writes rules that @apply deferred
// until after it.
func (r *renderer) closeBlock() {
	r.prelude.Reset()
	if len(r.stack) == 0 {
		return
	}
	b := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if len(b.pending) == 0 {
		return
	}
	if !r.opts.Minify {
		r.out.WriteString("\n\n")
	}
	r.out.WriteString(strings.TrimRight(cssast.Print(b.pending, r.opts.Minify), "\n"))
}

// params reads the rest of an at-rule statement. closed reports that it
// ended at a '}' rather than a ';'.
func (r *renderer) params() (text string, closed bool, err error) {
	var b strings.Builder
	for {
		tt, data := r.next()
		switch tt {
		case css.ErrorToken:
			if err := r.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return "", false, err
			}
			return strings.TrimSpace(b.String()), false, nil
		case css.SemicolonToken:
			return strings.TrimSpace(b.String()), false, nil
		case css.RightBraceToken:
			return strings.TrimSpace(b.String()), true, nil
		case css.LeftBraceToken:
			return "", false, fmt.Errorf("unexpected block")
		}
		b.Write(data)
	}
}

func (r *renderer) atRule(name string) (bool, error) {
	switch name {
	case "utilgen", "tailwind", "source", "apply":
	default:
		return false, nil
	}

	line := r.line()
	params, closed, err := r.params()
	if err != nil {
		return false, &Error{Line: line, Directive: "@" + name, Err: err}
	}
	defer func() {
		if closed {
			r.out.WriteByte('}')
			r.closeBlock()
		}
	}()

	switch name {
	case "utilgen", "tailwind":
		if params != "utilities" {
			log.Debug("Dropping @%s %s", name, params)
			return true, nil
		}
		r.out.WriteString(strings.TrimRight(r.utilities, "\n"))
		r.inserted = true
	case "source":
		log.Debug("Dropping @source %s", params)
	case "apply":
		if err := r.apply(params); err != nil {
			return false, &Error{Line: line, Directive: "@apply", Err: err}
		}
	}
	return true, nil
}

func (r *renderer) apply(params string) error {
	if len(r.stack) == 0 || strings.HasPrefix(r.stack[len(r.stack)-1].prelude, "@") {
		return ErrApplyOutsideRule
	}
	b := r.stack[len(r.stack)-1]
	parent := b.prelude
	if len(selector.SplitList(parent)) > 1 {
		parent = ":is(" + parent + ")"
	}

	important := false
	var candidates []string
	for _, word := range strings.Fields(params) {
		if word == "!important" {
			important = true
			continue
		}
		candidates = append(candidates, word)
	}

	var inline []string
	for _, raw := range candidates {
		rule := r.resolver.Resolve(raw)
		if rule == nil {
			return fmt.Errorf("%w %q", ErrUnknownUtility, raw)
		}
		nodes := rule.Retarget(parent, important)
		if top, ok := nodes[0].(*cssast.Rule); ok && len(nodes) == 1 && top.Selector == parent {
			for _, d := range cssast.Declarations(nodes) {
				inline = append(inline, printDeclaration(d, r.opts.Minify))
			}
			continue
		}
		b.pending = append(b.pending, nodes...)
	}

	sep := " "
	if r.opts.Minify {
		sep = ""
	}
	r.out.WriteString(strings.Join(inline, sep))
	return nil
}

func printDeclaration(d *cssast.Declaration, minify bool) string {
	space := " "
	if minify {
		space = ""
	}
	var b strings.Builder
	b.WriteString(d.Property)
	b.WriteString(":" + space)
	b.WriteString(d.Value)
	if d.Important {
		b.WriteString(space + "!important")
	}
	b.WriteByte(';')
	return b.String()
}
