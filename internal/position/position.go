// Package position converts between byte offsets in a document and LSP
// positions, which count lines and UTF-16 code units.
package position

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ColumnToByte returns the byte offset within line of a UTF-16 column.
// Columns past the end clamp to the line length; a column inside a
// surrogate pair clamps to the start of its rune.
func ColumnToByte(line string, col int) int {
	units, i := 0, 0
	for i < len(line) && units < col {
		r, size := utf8.DecodeRuneInString(line[i:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if units+n > col {
			break
		}
		units += n
		i += size
	}
	return i
}

// ByteToColumn returns the UTF-16 column of a byte offset within line.
func ByteToColumn(line string, offset int) int {
	offset = min(max(offset, 0), len(line))
	units := 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if i+size > offset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}

// Offset returns the byte offset of a line and UTF-16 character in
// content. The line just past the last one is accepted at character 0, as
// an insertion point at the end of the document.
func Offset(content string, line, char uint32) (int, error) {
	start := 0
	for i := range line {
		nl := strings.IndexByte(content[start:], '\n')
		if nl < 0 {
			if i == line-1 && char == 0 {
				return len(content), nil
			}
			return 0, fmt.Errorf("line %d out of bounds", line)
		}
		start += nl + 1
	}
	end := strings.IndexByte(content[start:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end += start
	}
	return start + ColumnToByte(content[start:end], int(char)), nil
}

// Position returns the line and UTF-16 character of a byte offset in
// content. Offsets past the end clamp to the end.
func Position(content string, offset int) (line, char uint32) {
	offset = min(max(offset, 0), len(content))
	start := strings.LastIndexByte(content[:offset], '\n') + 1
	line = uint32(strings.Count(content[:start], "\n"))
	char = uint32(ByteToColumn(content[start:], offset-start))
	return line, char
}
