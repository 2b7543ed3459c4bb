package selector_test

import (
	"testing"

	"bennypowers.dev/utilgen/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flex", "flex"},
		{"sm:w-1/2", `sm\:w-1\/2`},
		{"bg-[#fff]", `bg-\[\#fff\]`},
		{"w-1.5", `w-1\.5`},
		{"!font-bold", `\!font-bold`},
		{"2xl:p-4", `\32 xl\:p-4`},
		{"-mt-4", "-mt-4"},
		{"-", `\-`},
		{"[mask-type:luminance]", `\[mask-type\:luminance\]`},
		{"bg-[url('a.png')]", `bg-\[url\(\'a\.png\'\)\]`},
		{"héllo", "héllo"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, selector.Escape(tt.in))
		})
	}
	assert.Equal(t, `.sm\:w-1\/2`, selector.Class("sm:w-1/2"))
}

func TestParseAttribute(t *testing.T) {
	t.Run("name only", func(t *testing.T) {
		attr, ok := selector.ParseAttribute("[open]")
		require.True(t, ok)
		assert.Equal(t, "open", attr.Name)
		assert.Empty(t, attr.Operator)
		assert.Equal(t, "[open]", attr.String())
	})

	t.Run("unquoted value", func(t *testing.T) {
		attr, ok := selector.ParseAttribute("data-state=open")
		require.True(t, ok)
		assert.Equal(t, "data-state", attr.Name)
		assert.Equal(t, "=", attr.Operator)
		assert.Equal(t, "open", attr.Value)
		assert.False(t, attr.Quoted)
		assert.Equal(t, `[data-state="open"]`, attr.String())
	})

	t.Run("quoted value with modifier", func(t *testing.T) {
		attr, ok := selector.ParseAttribute(`[lang |= 'en' i]`)
		require.True(t, ok)
		assert.Equal(t, "lang", attr.Name)
		assert.Equal(t, "|=", attr.Operator)
		assert.Equal(t, "en", attr.Value)
		assert.True(t, attr.Quoted)
		assert.Equal(t, byte('i'), attr.Modifier)
		assert.Equal(t, `[lang|="en" i]`, attr.String())
	})

	t.Run("all operators", func(t *testing.T) {
		for _, op := range []string{"=", "~=", "|=", "^=", "$=", "*="} {
			attr, ok := selector.ParseAttribute("a" + op + "b")
			require.True(t, ok, op)
			assert.Equal(t, op, attr.Operator)
		}
	})

	invalid := []string{"", "[]", "=x", "a=", "a b", "a='x", "[a", "a!=b", "a=b c"}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			_, ok := selector.ParseAttribute(in)
			assert.False(t, ok)
		})
	}
}

func TestMovePseudoElements(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".x:hover", ".x:hover"},
		{".x::before:hover", ".x:hover::before"},
		{".x::placeholder:focus:hover", ".x:focus:hover::placeholder"},
		{".group:hover .x::after", ".group:hover .x::after"},
		{".a::before:hover, .b::after:focus", ".a:hover::before, .b:focus::after"},
		{".x::part(label):hover", ".x:hover::part(label)"},
		{".x::-webkit-scrollbar:hover", ".x::-webkit-scrollbar:hover"},
		{`.before\:\:x:hover`, `.before\:\:x:hover`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, selector.MovePseudoElements(tt.in))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{".a", ".b:is(.c, .d)"}, selector.SplitList(".a, .b:is(.c, .d)"))
	assert.True(t, selector.IsPseudoElement("before"))
	assert.False(t, selector.IsPseudoElement("hover"))
}
