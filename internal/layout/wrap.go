package layout

import "github.com/ryanlewis/textgrid/internal/segment"

// Break reasons recorded in trace events.
const (
	reasonWidth      = "width"
	reasonWhitespace = "whitespace"
	reasonHardSplit  = "hardsplit"
	reasonEnd        = "end"
)

// visualLine is one wrapped line before placement.
type visualLine struct {
	graphemes []string
	reason    string
}

// lineBuilder accumulates graphemes for the line being filled.
type lineBuilder struct {
	cols  int
	cur   []string
	lines []visualLine
}

func (b *lineBuilder) room() int { return b.cols - len(b.cur) }

func (b *lineBuilder) flush(reason string) {
	b.lines = append(b.lines, visualLine{graphemes: b.cur, reason: reason})
	b.cur = nil
}

// finish closes the paragraph. A paragraph always yields at least one line
// so blank lines survive.
func (b *lineBuilder) finish() []visualLine {
	if len(b.cur) > 0 || len(b.lines) == 0 {
		b.flush(reasonEnd)
	}
	return b.lines
}

// wrapChars chunks graphemes into lines of exactly cols, with a shorter tail.
func wrapChars(graphemes []string, cols int) []visualLine {
	b := &lineBuilder{cols: cols}
	for len(graphemes) > cols {
		b.cur = graphemes[:cols:cols]
		b.flush(reasonHardSplit)
		graphemes = graphemes[cols:]
	}
	b.cur = graphemes
	return b.finish()
}

// wrapWords greedily fills lines with tokens.
func wrapWords(tokens []segment.Token, cols int) []visualLine {
	b := &lineBuilder{cols: cols}
	for _, tok := range tokens {
		n := len(tok.Graphemes)
		if n == 0 {
			continue
		}

		if tok.Kind == segment.KindWhitespace {
			switch {
			case len(b.cur) == 0:
				// Leading whitespace on a line is dropped.
			case n <= b.room():
				b.cur = append(b.cur, tok.Graphemes...)
			default:
				b.flush(reasonWhitespace)
			}
			continue
		}

		if n <= b.room() {
			b.cur = append(b.cur, tok.Graphemes...)
			continue
		}

		if len(b.cur) > 0 {
			b.cur = trimTrailingWhitespace(b.cur)
			b.flush(reasonWidth)
		}

		g := tok.Graphemes
		for len(g) > cols {
			b.cur = append(b.cur, g[:cols]...)
			b.flush(reasonHardSplit)
			g = g[cols:]
		}
		b.cur = append(b.cur, g...)
	}
	return b.finish()
}

func trimTrailingWhitespace(graphemes []string) []string {
	n := len(graphemes)
	for n > 0 && segment.IsWhitespace(graphemes[n-1]) {
		n--
	}
	return graphemes[:n]
}
