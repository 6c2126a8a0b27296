package markdown

import "strings"

// Emphasis is the style carried by a single inline span.
type Emphasis int

const (
	EmphasisPlain Emphasis = iota
	EmphasisBold
	EmphasisCode
)

// Span is a run of text with one emphasis style.
type Span struct {
	Text     string
	Emphasis Emphasis
}

// ParseInline splits paragraph-like text into spans. Bold spans are delimited
// by non-greedy '**' pairs, inline code by single backticks whose contents are
// taken literally. An unmatched opening delimiter degrades to plain text
// instead of failing.
func ParseInline(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String(), Emphasis: EmphasisPlain})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], "**") {
			end := strings.Index(text[i+2:], "**")
			if end >= 0 {
				flush()
				if end > 0 {
					spans = append(spans, Span{Text: text[i+2 : i+2+end], Emphasis: EmphasisBold})
				}
				i += end + 4
				continue
			}
			plain.WriteString("**")
			i += 2
			continue
		}

		if text[i] == '`' {
			end := strings.IndexByte(text[i+1:], '`')
			if end >= 0 {
				flush()
				if end > 0 {
					spans = append(spans, Span{Text: text[i+1 : i+1+end], Emphasis: EmphasisCode})
				}
				i += end + 2
				continue
			}
			plain.WriteByte('`')
			i++
			continue
		}

		plain.WriteByte(text[i])
		i++
	}

	flush()
	return spans
}
