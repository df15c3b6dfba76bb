package term

import (
	"reflect"
	"testing"

	"github.com/elves/gallery/pkg/ui"
)

var bufferBuilderWritesTests = []struct {
	bb    *BufferBuilder
	text  string
	style string
	want  *Buffer
}{
	// Writing nothing.
	{NewBufferBuilder(10), "", "", &Buffer{Width: 10, Lines: [][]Cell{{}}}},
	// Writing a single rune.
	{NewBufferBuilder(10), "a", "1",
		&Buffer{Width: 10, Lines: [][]Cell{{{"a", "1"}}}}},
	// Writing control character.
	{NewBufferBuilder(10), "\033", "",
		&Buffer{Width: 10, Lines: [][]Cell{{{"^[", "7"}}}}},
	// Writing styled control character.
	{NewBufferBuilder(10), "a\033b", "1",
		&Buffer{Width: 10, Lines: [][]Cell{{
			{"a", "1"},
			{"^[", "1;7"},
			{"b", "1"}}}}},
	// Writing text containing a newline.
	{NewBufferBuilder(10), "a\nb", "1",
		&Buffer{Width: 10, Lines: [][]Cell{
			{{"a", "1"}}, {{"b", "1"}}}}},
	// Writing text containing a newline when there is indent.
	{NewBufferBuilder(10).SetIndent(2), "a\nb", "1",
		&Buffer{Width: 10, Lines: [][]Cell{
			{{"a", "1"}},
			{{" ", ""}, {" ", ""}, {"b", "1"}},
		}}},
	// Writing long text that triggers wrapping.
	{NewBufferBuilder(4), "aaaab", "1",
		&Buffer{Width: 4, Lines: [][]Cell{
			{{"a", "1"}, {"a", "1"}, {"a", "1"}, {"a", "1"}},
			{{"b", "1"}}}}},
	// Writing long text that triggers eager wrapping.
	{NewBufferBuilder(4).SetIndent(2).SetEagerWrap(true), "aaaa", "1",
		&Buffer{Width: 4, Lines: [][]Cell{
			{{"a", "1"}, {"a", "1"}, {"a", "1"}, {"a", "1"}},
			{{" ", ""}, {" ", ""}}}}},
}

func TestBufferBuilderWrites(t *testing.T) {
	for _, test := range bufferBuilderWritesTests {
		bb := cloneBufferBuilder(test.bb)
		bb.WriteStringSGR(test.text, test.style)
		buf := bb.Buffer()
		if !reflect.DeepEqual(buf, test.want) {
			t.Errorf("buf.writes(%q, %q) makes it %v, want %v",
				test.text, test.style, buf, test.want)
		}
	}
}

func TestBufferBuilder_WriteStyledAndDot(t *testing.T) {
	buf := NewBufferBuilder(10).
		Write("ab", ui.Inverse).WriteSpaces(2).SetDotHere().Write("c").Buffer()
	want := &Buffer{Width: 10, Dot: Pos{0, 4}, Lines: [][]Cell{
		{{"a", "7"}, {"b", "7"}, {" ", ""}, {" ", ""}, {"c", ""}},
	}}
	if !reflect.DeepEqual(buf, want) {
		t.Errorf("got %v, want %v", buf, want)
	}
}

func cloneBufferBuilder(bb *BufferBuilder) *BufferBuilder {
	return &BufferBuilder{
		bb.Width, bb.Col, bb.Indent,
		bb.EagerWrap, cloneLines(bb.Lines), bb.Dot}
}

func cloneLines(lines [][]Cell) [][]Cell {
	newLines := make([][]Cell, len(lines))
	for i, line := range lines {
		if line != nil {
			newLines[i] = make([]Cell, len(line))
			copy(newLines[i], line)
		}
	}
	return newLines
}
