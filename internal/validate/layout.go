package validate

import (
	"strconv"

	"github.com/ryanlewis/textgrid/internal/common"
	"github.com/ryanlewis/textgrid/internal/hash"
	"github.com/ryanlewis/textgrid/internal/layout"
)

// Layout checks that a document's cells lie inside its grid, that its ids
// and lines are consistent and that its hashes are present, well formed and
// match the content.
func Layout(doc *layout.Doc) Result {
	var c collector
	if doc == nil {
		c.add(CodeMalformedRequest, "layoutDoc", "layout document is empty")
		return c.result()
	}

	g := doc.Grid
	width, height := g.Width(), g.Height()

	if len(doc.Cells) > common.MaxGraphemes {
		c.add(CodeTextTooLong, "cells", "%d cells exceed %d", len(doc.Cells), common.MaxGraphemes)
	}
	if len(doc.Lines) > g.MaxLines || len(doc.Lines) > g.Rows {
		c.add(CodeLayoutOverflow, "lines", "%d lines exceed maxLines %d", len(doc.Lines), g.MaxLines)
	}

	ids := make(map[string]struct{}, len(doc.Cells))
	for i := range doc.Cells {
		cell := &doc.Cells[i]
		if cell.X < 0 || cell.Y < 0 || cell.W <= 0 || cell.H <= 0 ||
			cell.X+cell.W > width || cell.Y+cell.H > height ||
			cell.Row < 0 || cell.Row >= g.Rows || cell.Col < 0 || cell.Col >= g.Cols {
			c.add(CodeCellOutOfBounds, cellField(i), "cell %s at (%d,%d %dx%d) lies outside the %dx%d grid",
				cell.CellID, cell.X, cell.Y, cell.W, cell.H, width, height)
		}
		if cell.CellID != layout.CellID(cell.Row, cell.Col) {
			c.add(CodeCellIDMismatch, cellField(i), "cell id %q does not match row %d col %d", cell.CellID, cell.Row, cell.Col)
		}
		if _, dup := ids[cell.CellID]; dup {
			c.add(CodeDuplicateCellID, cellField(i), "cell id %q is not unique", cell.CellID)
		}
		ids[cell.CellID] = struct{}{}
	}

	for i, l := range doc.Lines {
		if (l.StartCellID == "") != (l.EndCellID == "") {
			c.add(CodeLineInvalid, lineField(i), "line %d has only one of startCellId and endCellId", l.Line)
			continue
		}
		for _, id := range []string{l.StartCellID, l.EndCellID} {
			if id == "" {
				continue
			}
			if _, ok := ids[id]; !ok {
				c.add(CodeLineInvalid, lineField(i), "line %d references unknown cell %q", l.Line, id)
			}
		}
	}

	hashesOK := true
	for _, h := range []struct {
		field string
		v     string
	}{
		{"hashes.text", doc.Hashes.Text},
		{"hashes.inputs", doc.Hashes.Inputs},
		{"hashes.layout", doc.Hashes.Layout},
	} {
		switch {
		case h.v == "":
			c.add(CodeHashMissing, h.field, "hash is missing")
			hashesOK = false
		case !hash.IsDigest(h.v):
			c.add(CodeHashMalformed, h.field, "hash must be 64 lowercase hex characters")
			hashesOK = false
		}
	}
	if hashesOK {
		if err := doc.VerifyHashes(); err != nil {
			c.add(CodeHashMismatch, "hashes", "%v", err)
		}
	}
	return c.result()
}

func cellField(i int) string {
	return "cells[" + strconv.Itoa(i) + "]"
}

func lineField(i int) string {
	return "lines[" + strconv.Itoa(i) + "]"
}
