// Package markdown turns raw document bodies into typed render blocks. The
// pipeline is a pure function over the input text: no state, no I/O, same
// input always yields the same block sequence. Malformed input never fails;
// it degrades to literal text.
package markdown

import (
	"regexp"
	"strings"
)

// Block is one renderable unit of a document.
type Block interface {
	block()
}

// Heading is a line prefixed by 1-6 '#' characters and a space.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is the fallback block: contiguous prose lines folded on blank-line
// boundaries.
type Paragraph struct {
	Spans []Span
}

// List is a run of contiguous bullet or numbered lines. Ordered is decided by
// the marker of the first line and frozen for the whole block.
type List struct {
	Ordered bool
	Items   [][]Span
}

// Blockquote holds the blocks rendered from '>'-prefixed lines.
type Blockquote struct {
	Blocks []Block
}

// CodeBlock is a fenced region stored verbatim. Language is the lower-cased
// token trailing the opening fence, or empty when absent.
type CodeBlock struct {
	Language string
	Literal  string
}

func (Heading) block()    {}
func (Paragraph) block()  {}
func (List) block()       {}
func (Blockquote) block() {}
func (CodeBlock) block()  {}

const fenceDelimiter = "```"

var orderedMarkerPattern = regexp.MustCompile(`^\d+\.\s+`)

// Render segments rawBody into blocks.
func Render(rawBody string) []Block {
	lines := strings.Split(rawBody, "\n")
	var blocks []Block

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++
		case strings.HasPrefix(trimmed, fenceDelimiter):
			block, next := scanCodeBlock(lines, i)
			blocks = append(blocks, block)
			i = next
		case headingLevel(line) > 0:
			level := headingLevel(line)
			text := strings.TrimSpace(line[level+1:])
			blocks = append(blocks, Heading{Level: level, Text: text})
			i++
		case isListLine(line):
			block, next := scanList(lines, i)
			blocks = append(blocks, block)
			i = next
		case strings.HasPrefix(trimmed, ">"):
			block, next := scanBlockquote(lines, i)
			blocks = append(blocks, block)
			i = next
		default:
			block, next := scanParagraph(lines, i)
			blocks = append(blocks, block)
			i = next
		}
	}

	return blocks
}

// headingLevel returns 1-6 when the line is a heading, zero otherwise. The
// marker must be followed by a space.
func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < 1 || level > 6 {
		return 0
	}
	if level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

// scanCodeBlock consumes an opening fence through the next bare fence, or to
// the end of input when the fence is never closed. An unterminated fence is
// not an error; it closes implicitly at end of document. Fences are matched
// after trimming surrounding whitespace, on both the opening and closing line;
// the fenced content itself is kept verbatim.
func scanCodeBlock(lines []string, start int) (Block, int) {
	opening := strings.TrimSpace(lines[start])
	language := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(opening, fenceDelimiter)))
	if fields := strings.Fields(language); len(fields) > 0 {
		language = fields[0]
	}

	var body []string
	i := start + 1
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == fenceDelimiter {
			i++
			break
		}
		body = append(body, lines[i])
		i++
	}

	// Joining the collected lines is equivalent to stripping one trailing
	// newline from the fenced region.
	return CodeBlock{Language: language, Literal: strings.Join(body, "\n")}, i
}

func isListLine(line string) bool {
	_, ok := stripListMarker(line)
	return ok
}

// stripListMarker removes a bullet or numeric-dot marker and reports whether
// the line carried one. The second result of the returned pair distinguishes
// ordered markers.
func stripListMarker(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	for _, bullet := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(trimmed, bullet) {
			return strings.TrimSpace(trimmed[len(bullet):]), true
		}
	}
	if loc := orderedMarkerPattern.FindStringIndex(trimmed); loc != nil {
		return strings.TrimSpace(trimmed[loc[1]:]), true
	}
	return "", false
}

func isOrderedListLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return orderedMarkerPattern.MatchString(trimmed)
}

func scanList(lines []string, start int) (Block, int) {
	ordered := isOrderedListLine(lines[start])
	var items [][]Span

	i := start
	for i < len(lines) && isListLine(lines[i]) {
		text, _ := stripListMarker(lines[i])
		items = append(items, ParseInline(text))
		i++
	}

	return List{Ordered: ordered, Items: items}, i
}

func scanBlockquote(lines []string, start int) (Block, int) {
	var inner []string

	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		stripped := strings.TrimPrefix(trimmed, ">")
		stripped = strings.TrimPrefix(stripped, " ")
		inner = append(inner, stripped)
		i++
	}

	return Blockquote{Blocks: Render(strings.Join(inner, "\n"))}, i
}

// scanParagraph folds contiguous prose lines into one paragraph. A blank line
// or the start of any other block kind ends the paragraph.
func scanParagraph(lines []string, start int) (Block, int) {
	var parts []string

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, fenceDelimiter) ||
			headingLevel(line) > 0 || isListLine(line) || strings.HasPrefix(trimmed, ">") {
			break
		}
		parts = append(parts, trimmed)
		i++
	}

	return Paragraph{Spans: ParseInline(strings.Join(parts, " "))}, i
}
