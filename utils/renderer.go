package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	charm "github.com/charmbracelet/lipgloss"

	"github.com/askh-dev/askh/constants/lipgloss"
	"github.com/askh-dev/askh/markdown"
)

// RenderBlocks writes a rendered document to w. Code blocks are highlighted
// with chroma using their language tag; an absent or unknown language still
// renders with generic formatting.
func RenderBlocks(w io.Writer, blocks []markdown.Block, theme string) error {
	for i, block := range blocks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := renderBlock(w, block, theme, ""); err != nil {
			return err
		}
	}
	return nil
}

func renderBlock(w io.Writer, block markdown.Block, theme string, indent string) error {
	switch b := block.(type) {
	case markdown.Heading:
		fmt.Fprintln(w, indent+headingStyle(b.Level).Render(b.Text))

	case markdown.Paragraph:
		fmt.Fprintln(w, indent+RenderSpans(b.Spans))

	case markdown.List:
		for i, item := range b.Items {
			marker := "• "
			if b.Ordered {
				marker = fmt.Sprintf("%d. ", i+1)
			}
			fmt.Fprintln(w, indent+lipgloss.Cyan.Render(marker)+RenderSpans(item))
		}

	case markdown.Blockquote:
		for _, inner := range b.Blocks {
			if err := renderBlock(w, inner, theme, indent+lipgloss.Gray.Render("│ ")); err != nil {
				return err
			}
		}

	case markdown.CodeBlock:
		if err := highlightCode(w, b, theme); err != nil {
			return err
		}
	}

	return nil
}

// RenderSpans styles a run of inline spans.
func RenderSpans(spans []markdown.Span) string {
	var out strings.Builder
	for _, span := range spans {
		switch span.Emphasis {
		case markdown.EmphasisBold:
			out.WriteString(lipgloss.Bold.Render(span.Text))
		case markdown.EmphasisCode:
			out.WriteString(lipgloss.InlineCode.Render(span.Text))
		default:
			out.WriteString(span.Text)
		}
	}
	return out.String()
}

func headingStyle(level int) charm.Style {
	switch level {
	case 1:
		return lipgloss.Heading1
	case 2:
		return lipgloss.Heading2
	default:
		return lipgloss.Heading3
	}
}

func highlightCode(w io.Writer, block markdown.CodeBlock, theme string) error {
	if err := quick.Highlight(w, block.Literal+"\n", block.Language, "terminal256", theme); err != nil {
		// Never fail the whole document over a highlighting problem.
		_, writeErr := fmt.Fprintln(w, block.Literal)
		return writeErr
	}
	return nil
}
