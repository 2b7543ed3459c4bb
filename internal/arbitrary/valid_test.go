package arbitrary_test

import (
	"strings"
	"testing"

	"bennypowers.dev/utilgen/internal/arbitrary"
	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain length", "10px", true},
		{"math function", "calc(100%-1rem)", true},
		{"unclosed paren", "calc(100%-1rem", false},
		{"stray closer", "10px)", false},
		{"mismatched closers", "calc(1px]", false},
		{"nested brackets", "[data-x=(a)]", true},
		{"top-level semicolon", "a;b", false},
		{"quoted semicolon", "'a;b'", true},
		{"semicolon inside parens", "url(a;b)", true},
		{"closing brace", "a}", false},
		{"opening brace is not tracked", "{a", true},
		{"escaped closer", `a\)`, true},
		{"unclosed quote", `"abc`, true},
		{"empty", "", true},
		{"too deep", strings.Repeat("(", 65) + strings.Repeat(")", 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, arbitrary.IsValid(tt.text))
		})
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		input string
		sep   byte
		want  []string
	}{
		{"hover:focus:flex", ':', []string{"hover", "focus", "flex"}},
		{"[&:hover]:flex", ':', []string{"[&:hover]", "flex"}},
		{"bg-[url(a:b)]", ':', []string{"bg-[url(a:b)]"}},
		{`content-['a:b']`, ':', []string{`content-['a:b']`}},
		{`a\:b:c`, ':', []string{`a\:b`, "c"}},
		{"hover::flex", ':', []string{"hover", "", "flex"}},
		{"bg-red-500/50", '/', []string{"bg-red-500", "50"}},
		{"", ':', []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, arbitrary.Segment(tt.input, tt.sep))
		})
	}
}

func TestTopLevelIndex(t *testing.T) {
	assert.Equal(t, 14, arbitrary.LastIndexTopLevel("bg-[calc(1/2)]/50", '/'))
	assert.Equal(t, -1, arbitrary.LastIndexTopLevel("w-[1/2]", '/'))
	assert.Equal(t, 5, arbitrary.IndexTopLevel("group/item", '/'))
	assert.Equal(t, -1, arbitrary.IndexTopLevel("flex", '/'))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"10px", "10px"},
		{"1fr_2fr", "1fr 2fr"},
		{"calc(100%-1rem)", "calc(100% - 1rem)"},
		{"calc(100%_-_1rem)", "calc(100% - 1rem)"},
		{"calc(-1*2rem)", "calc(-1 * 2rem)"},
		{"calc(var(--a)+1px)", "calc(var(--a) + 1px)"},
		{"min(10vh,50%)", "min(10vh,50%)"},
		{"repeat(auto-fit,minmax(0,1fr))", "repeat(auto-fit,minmax(0,1fr))"},
		{"url(/a_b.png)", "url(/a_b.png)"},
		{"var(--my_var)", "var(--my_var)"},
		{`a\_b`, "a_b"},
		{"'hello_world'", "'hello_world'"},
		{`"a_b"`, `"a_b"`},
		{"'a_b'_c", "'a_b' c"},
		{`'it\'s_ok'`, `'it\'s_ok'`},
		{"1e-3", "1e-3"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, arbitrary.Decode(tt.raw))
		})
	}
}

func TestParseValue(t *testing.T) {
	nodes := arbitrary.ParseValue("0 0 4px rgb(0 0 0 / 0.5)")
	words := arbitrary.TopLevelWords(nodes)
	if assert.Len(t, words, 4) {
		assert.Equal(t, arbitrary.FunctionNode, words[3].Kind)
		assert.Equal(t, "rgb", words[3].Value)
	}
	assert.Equal(t, "0 0 4px rgb(0 0 0 / 0.5)", arbitrary.ValueToCSS(nodes))

	var fns []string
	arbitrary.WalkValue(arbitrary.ParseValue("calc(var(--a) * 2)"), func(n *arbitrary.ValueNode) bool {
		if n.Kind == arbitrary.FunctionNode {
			fns = append(fns, n.Value)
		}
		return true
	})
	assert.Equal(t, []string{"calc", "var"}, fns)
}

func TestInferDataType(t *testing.T) {
	sizeOrColor := []arbitrary.DataType{arbitrary.TypeLength, arbitrary.TypeColor}

	tests := []struct {
		value      string
		candidates []arbitrary.DataType
		want       arbitrary.DataType
		ok         bool
	}{
		{"14px", sizeOrColor, arbitrary.TypeLength, true},
		{"#bada55", sizeOrColor, arbitrary.TypeColor, true},
		{"calc(1rem+2px)", sizeOrColor, arbitrary.TypeLength, true},
		{"var(--x)", sizeOrColor, "", false},
		{"var(--x)", []arbitrary.DataType{arbitrary.TypeColor, arbitrary.TypeAny}, arbitrary.TypeAny, true},
		{"url(a.png)", []arbitrary.DataType{arbitrary.TypeImage}, arbitrary.TypeImage, true},
		{"linear-gradient(red,blue)", []arbitrary.DataType{arbitrary.TypeColor, arbitrary.TypeImage}, arbitrary.TypeImage, true},
		{"16/9", []arbitrary.DataType{arbitrary.TypeRatio}, arbitrary.TypeRatio, true},
		{"0 0 2px 1px red", []arbitrary.DataType{arbitrary.TypeShadow}, arbitrary.TypeShadow, true},
		{"center top", []arbitrary.DataType{arbitrary.TypePosition}, arbitrary.TypePosition, true},
		{"nonsense", sizeOrColor, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := arbitrary.InferDataType(tt.value, tt.candidates)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericPredicates(t *testing.T) {
	assert.True(t, arbitrary.IsNumber("-2.5"))
	assert.True(t, arbitrary.IsNumber(".5"))
	assert.False(t, arbitrary.IsNumber("0x10"))
	assert.True(t, arbitrary.IsInteger("42"))
	assert.False(t, arbitrary.IsInteger("-1"))
	assert.True(t, arbitrary.IsFraction("1/2"))
	assert.False(t, arbitrary.IsFraction("1/0"))
	assert.True(t, arbitrary.IsPercentage("50%"))
	assert.True(t, arbitrary.IsLength("0"))
	assert.False(t, arbitrary.IsLength("10"))
}

func BenchmarkIsValid(b *testing.B) {
	text := "calc(100%-theme(spacing.4))_[data-state=open]_'a;b'"
	for b.Loop() {
		arbitrary.IsValid(text)
	}
}
