// Package layout places text into a fixed cell grid.
//
// Build is a pure function of its inputs: the same text, grid and wrap
// configuration always produce a byte-identical Doc, including its hashes.
package layout

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ryanlewis/textgrid/internal/common"
	"github.com/ryanlewis/textgrid/internal/debug"
	"github.com/ryanlewis/textgrid/internal/segment"
)

// Build wraps text into the grid and returns the placed, hashed document.
//
// Hard limits and grid consistency are checked first and reported as a
// *ConfigError. Under the error overflow policy, content that wraps to more
// than grid.MaxLines lines is reported as a *LineOverflowError.
func Build(text string, grid GridSpec, wrap WrapConfig, opts *Options) (*Doc, error) {
	if opts == nil {
		opts = &Options{}
	}
	sess := opts.Debug

	if !utf8.ValidString(text) {
		return nil, &ConfigError{Field: "text", Reason: "text is not valid UTF-8"}
	}
	graphemes := segment.Count(text) - countNewlines(text)
	if graphemes > common.MaxGraphemes {
		return nil, &ConfigError{Field: "text", Reason: fmt.Sprintf("%d graphemes exceed limit of %d", graphemes, common.MaxGraphemes)}
	}
	if grid.Cols*grid.Rows > common.MaxCells {
		return nil, &ConfigError{Field: "grid", Reason: fmt.Sprintf("%d cells exceed limit of %d", grid.Cols*grid.Rows, common.MaxCells)}
	}
	if err := checkGrid(grid, wrap); err != nil {
		return nil, err
	}

	var start time.Time
	if sess != nil {
		start = time.Now()
		sess.Emit("layout", "Start", debug.LayoutStartData{
			TextLength: len(text),
			Graphemes:  graphemes,
			Cols:       grid.Cols,
			Rows:       grid.Rows,
			MaxLines:   grid.MaxLines,
			Align:      string(grid.Align),
			WrapMode:   string(wrap.Mode),
			Overflow:   string(wrap.Overflow),
		})
	}

	tokenize := opts.Tokenizer
	if tokenize == nil {
		tokenize = segment.Tokenize
	}

	var lines []visualLine
	for i, para := range splitParagraphs(text) {
		var wrapped []visualLine
		tokens := 0
		if wrap.Mode == WrapChar {
			g := segment.Graphemes(para)
			wrapped = wrapChars(g, grid.Cols)
		} else {
			toks := tokenize(para)
			tokens = len(toks)
			wrapped = wrapWords(toks, grid.Cols)
		}

		if sess != nil {
			sess.Emit("layout", "Paragraph", debug.ParagraphData{
				Index:     i,
				Graphemes: segment.Count(para),
				Tokens:    tokens,
			})
			for _, l := range wrapped {
				sess.Emit("layout", "Wrap", debug.WrapData{
					Paragraph: i,
					Line:      len(lines),
					Reason:    l.reason,
					Length:    len(l.graphemes),
					Text:      debug.FormatLine(l.graphemes),
				})
				lines = append(lines, l)
			}
			continue
		}
		lines = append(lines, wrapped...)
	}

	lines, err := applyOverflow(lines, grid, wrap.Overflow, opts)
	if err != nil {
		return nil, err
	}

	doc := &Doc{
		Version: common.LayoutVersion,
		Text:    text,
		Grid:    grid,
		Wrap:    wrap,
		Cells:   make([]Cell, 0, graphemes),
		Lines:   make([]Line, 0, len(lines)),
	}
	place(doc, lines, sess)

	if len(doc.Cells) > common.MaxGraphemes {
		return nil, &ConfigError{Field: "cells", Reason: fmt.Sprintf("%d placed graphemes exceed limit of %d", len(doc.Cells), common.MaxGraphemes)}
	}

	if err := attachHashes(doc, sess); err != nil {
		return nil, err
	}

	if sess != nil {
		sess.Emit("layout", "End", debug.LayoutEndData{
			Lines:     len(doc.Lines),
			Cells:     len(doc.Cells),
			Visible:   doc.VisibleCells(),
			ElapsedUs: time.Since(start).Microseconds(),
		})
	}
	return doc, nil
}

func checkGrid(grid GridSpec, wrap WrapConfig) error {
	positive := []struct {
		field string
		v     int
	}{
		{"grid.cellW", grid.CellW},
		{"grid.cellH", grid.CellH},
		{"grid.cols", grid.Cols},
		{"grid.rows", grid.Rows},
		{"grid.maxLines", grid.MaxLines},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return &ConfigError{Field: p.field, Reason: fmt.Sprintf("must be a positive integer, got %d", p.v)}
		}
	}
	if grid.CellW > common.MaxCellPx || grid.CellH > common.MaxCellPx {
		return &ConfigError{Field: "grid.cell", Reason: fmt.Sprintf("cell %dx%d exceeds %d", grid.CellW, grid.CellH, common.MaxCellPx)}
	}
	if grid.LineGap < 0 || grid.LineGap > common.MaxLineGapPx {
		return &ConfigError{Field: "grid.lineGap", Reason: fmt.Sprintf("must be between 0 and %d, got %d", common.MaxLineGapPx, grid.LineGap)}
	}
	if grid.MaxLines > grid.Rows {
		return &ConfigError{Field: "grid.maxLines", Reason: fmt.Sprintf("%d exceeds rows %d", grid.MaxLines, grid.Rows)}
	}
	if !grid.Align.Valid() {
		return &ConfigError{Field: "grid.align", Reason: fmt.Sprintf("unknown alignment %q", grid.Align)}
	}
	if !wrap.Mode.Valid() {
		return &ConfigError{Field: "wrap.mode", Reason: fmt.Sprintf("unknown wrap mode %q", wrap.Mode)}
	}
	if !wrap.Overflow.Valid() {
		return &ConfigError{Field: "wrap.overflow", Reason: fmt.Sprintf("unknown overflow policy %q", wrap.Overflow)}
	}
	return nil
}

// splitParagraphs splits on LF, CRLF and CR. Empty paragraphs are kept.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// countNewlines counts hard line breaks, treating CRLF as one.
func countNewlines(text string) int {
	return strings.Count(text, "\n") + strings.Count(text, "\r") - strings.Count(text, "\r\n")
}

func applyOverflow(lines []visualLine, grid GridSpec, policy Overflow, opts *Options) ([]visualLine, error) {
	if len(lines) <= grid.MaxLines {
		return lines, nil
	}

	total := len(lines)
	if policy == OverflowError {
		opts.Debug.Emit("layout", "Overflow", debug.OverflowData{
			Policy:   string(policy),
			Lines:    total,
			MaxLines: grid.MaxLines,
		})
		return nil, &LineOverflowError{Lines: total, MaxLines: grid.MaxLines}
	}

	kept := lines[:grid.MaxLines:grid.MaxLines]
	overwritten := false
	if policy == OverflowEllipsis {
		last := kept[len(kept)-1]
		g := trimTrailingWhitespace(last.graphemes)
		out := make([]string, len(g), len(g)+1)
		copy(out, g)
		if len(out) < grid.Cols {
			out = append(out, common.Ellipsis)
		} else {
			overwritten = true
			if opts.Logger != nil {
				opts.Logger.Debug("textgrid: ellipsis overwrote final grapheme",
					"grapheme", out[len(out)-1], "line", len(kept)-1)
			}
			out[len(out)-1] = common.Ellipsis
		}
		kept = append(kept[:len(kept)-1:len(kept)-1], visualLine{graphemes: out, reason: last.reason})
	}

	opts.Debug.Emit("layout", "Overflow", debug.OverflowData{
		Policy:      string(policy),
		Lines:       total,
		MaxLines:    grid.MaxLines,
		Dropped:     total - grid.MaxLines,
		Overwritten: overwritten,
	})
	return kept, nil
}

// place converts visual lines into cells and line records.
func place(doc *Doc, lines []visualLine, sess *debug.Session) {
	grid := doc.Grid
	for row, l := range lines {
		n := len(l.graphemes)
		slack := grid.Cols - n
		if slack < 0 {
			slack = 0
		}
		startCol := 0
		switch grid.Align {
		case AlignCenter:
			startCol = slack / 2
		case AlignRight:
			startCol = slack
		}

		top := grid.RowTop(row)
		visible := 0
		for i, g := range l.graphemes {
			col := startCol + i
			c := Cell{
				CellID:  CellID(row, col),
				G:       g,
				Row:     row,
				Col:     col,
				X:       col * grid.CellW,
				Y:       top,
				W:       grid.CellW,
				H:       grid.CellH,
				Visible: !segment.IsWhitespace(g),
			}
			if c.Visible {
				visible++
			}
			doc.Cells = append(doc.Cells, c)
		}

		rec := Line{Line: row, BaselineY: top + grid.CellH}
		if n > 0 {
			rec.StartCellID = CellID(row, startCol)
			rec.EndCellID = CellID(row, startCol+n-1)
		}
		doc.Lines = append(doc.Lines, rec)

		sess.Emit("layout", "Place", debug.PlaceData{
			Line:     row,
			StartCol: startCol,
			Cells:    n,
			Visible:  visible,
		})
	}
}
