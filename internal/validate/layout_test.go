package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/textgrid/internal/layout"
)

func buildDoc(t *testing.T) *layout.Doc {
	t.Helper()
	grid := layout.GridSpec{CellW: 64, CellH: 64, Cols: 5, Rows: 2, MaxLines: 2, LineGap: 4, Align: layout.AlignCenter}
	doc, err := layout.Build("HELLO YOU", grid, layout.WrapConfig{Mode: layout.WrapWord, Overflow: layout.OverflowTruncate}, nil)
	require.NoError(t, err)
	return doc
}

// clone returns a deep copy so tests can corrupt it.
func clone(doc *layout.Doc) *layout.Doc {
	c := *doc
	c.Cells = append([]layout.Cell(nil), doc.Cells...)
	c.Lines = append([]layout.Line(nil), doc.Lines...)
	return &c
}

func TestLayoutValid(t *testing.T) {
	res := Layout(buildDoc(t))
	assert.True(t, res.Valid, "%v", res.Errors)
}

func TestLayoutNil(t *testing.T) {
	assert.True(t, Layout(nil).Has(CodeMalformedRequest))
}

func TestLayoutViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *layout.Doc)
		code   string
	}{
		{"cell past right edge", func(d *layout.Doc) { d.Cells[0].X = d.Width() }, CodeCellOutOfBounds},
		{"cell below grid", func(d *layout.Doc) { d.Cells[0].Y = d.Height() - 10 }, CodeCellOutOfBounds},
		{"negative x", func(d *layout.Doc) { d.Cells[0].X = -1 }, CodeCellOutOfBounds},
		{"row outside grid", func(d *layout.Doc) { d.Cells[0].Row = 7 }, CodeCellOutOfBounds},
		{"id mismatch", func(d *layout.Doc) { d.Cells[0].CellID = "cell_9_9" }, CodeCellIDMismatch},
		{"duplicate id", func(d *layout.Doc) { d.Cells[1] = d.Cells[0] }, CodeDuplicateCellID},
		{"missing hash", func(d *layout.Doc) { d.Hashes.Text = "" }, CodeHashMissing},
		{"malformed hash", func(d *layout.Doc) { d.Hashes.Layout = strings.ToUpper(d.Hashes.Layout) }, CodeHashMalformed},
		{"short hash", func(d *layout.Doc) { d.Hashes.Inputs = "abc" }, CodeHashMalformed},
		{"hash mismatch", func(d *layout.Doc) { d.Cells[0].G = "J" }, CodeHashMismatch},
		{"too many lines", func(d *layout.Doc) { d.Lines = append(d.Lines, layout.Line{Line: 2}) }, CodeLayoutOverflow},
		{"line references unknown cell", func(d *layout.Doc) { d.Lines[0].EndCellID = "cell_0_9" }, CodeLineInvalid},
		{"half-empty line", func(d *layout.Doc) { d.Lines[0].StartCellID = "" }, CodeLineInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := clone(buildDoc(t))
			tt.mutate(doc)
			res := Layout(doc)
			assert.False(t, res.Valid)
			assert.True(t, res.Has(tt.code), "want %s, got %v", tt.code, res.Codes())
		})
	}
}

func TestLayoutSkipsMismatchWhenMalformed(t *testing.T) {
	doc := clone(buildDoc(t))
	doc.Hashes.Text = ""
	res := Layout(doc)
	assert.True(t, res.Has(CodeHashMissing))
	assert.False(t, res.Has(CodeHashMismatch))
}
