package position_test

import (
	"testing"

	"bennypowers.dev/utilgen/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnToByte(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{"empty", "", 0, 0},
		{"ascii", "hello world", 5, 5},
		{"beyond end", "hello", 100, 5},
		{"negative", "hello", -1, 0},
		{"emoji", "👍 hello", 2, 4},
		{"emoji in middle", "hello 👍 world", 8, 10},
		{"inside surrogate pair", "👍x", 1, 0},
		{"cjk", "颜色", 2, 6},
		{"invalid utf-8", "a\xffb", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, position.ColumnToByte(tt.line, tt.col))
		})
	}
}

func TestByteToColumn(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		offset int
		want   int
	}{
		{"ascii", "hello", 3, 3},
		{"emoji", "👍 hello", 4, 2},
		{"mid rune", "颜色", 4, 1},
		{"past end", "abc", 10, 3},
		{"invalid utf-8", "a\xffb", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, position.ByteToColumn(tt.line, tt.offset))
		})
	}
}

func TestOffset(t *testing.T) {
	content := "<div\n  class=\"颜色 mt-4\">\n</div>"

	tests := []struct {
		name       string
		line, char uint32
		want       int
	}{
		{"start", 0, 0, 0},
		{"second line", 1, 2, 7},
		{"after cjk", 1, 12, 21},
		{"clamped to line end", 0, 99, 4},
		{"last line", 2, 6, 34},
		{"end of document insertion", 3, 0, len(content)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := position.Offset(content, tt.line, tt.char)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := position.Offset(content, 4, 0)
	assert.Error(t, err)
	_, err = position.Offset(content, 3, 1)
	assert.Error(t, err)
}

func TestPositionRoundTrip(t *testing.T) {
	content := "a 👍\n颜色 b\n\nend"
	for offset := 0; offset <= len(content); offset++ {
		line, char := position.Position(content, offset)
		back, err := position.Offset(content, line, char)
		require.NoError(t, err)
		assert.LessOrEqual(t, back, offset, "offset %d", offset)
	}

	line, char := position.Position(content, len(content))
	assert.Equal(t, uint32(3), line)
	assert.Equal(t, uint32(3), char)
}

func BenchmarkOffset(b *testing.B) {
	content := ""
	for range 200 {
		content += "<li class=\"px-4 py-2 hover:bg-gray-100\">👍 item</li>\n"
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := position.Offset(content, 150, 30); err != nil {
			b.Fatal(err)
		}
	}
}
