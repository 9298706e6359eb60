package layout

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ryanlewis/textgrid/internal/debug"
	"github.com/ryanlewis/textgrid/internal/segment"
)

// Error definitions for the layout package
var (
	// ErrConfiguration is returned when the grid or text violates a hard limit
	ErrConfiguration = errors.New("invalid layout configuration")
	// ErrOverflow is returned when wrapped text exceeds maxLines under the error policy
	ErrOverflow = errors.New("layout overflow")
	// ErrIntegrity is returned when a document's hashes do not match its content
	ErrIntegrity = errors.New("layout integrity violation")
)

// Align is the horizontal alignment of a line inside the grid.
type Align string

// Supported alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Valid reports whether a is a known alignment.
func (a Align) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// WrapMode selects how paragraphs are broken into lines.
type WrapMode string

// Supported wrap modes.
const (
	WrapWord WrapMode = "word"
	WrapChar WrapMode = "char"
)

// Valid reports whether m is a known wrap mode.
func (m WrapMode) Valid() bool {
	return m == WrapWord || m == WrapChar
}

// Overflow is the policy applied when wrapped lines exceed maxLines.
type Overflow string

// Supported overflow policies.
const (
	OverflowTruncate Overflow = "truncate"
	OverflowEllipsis Overflow = "ellipsis"
	OverflowError    Overflow = "error"
)

// Valid reports whether o is a known overflow policy.
func (o Overflow) Valid() bool {
	return o == OverflowTruncate || o == OverflowEllipsis || o == OverflowError
}

// GridSpec describes the fixed cell grid text is placed into.
type GridSpec struct {
	CellW    int   `json:"cellW" yaml:"cellW"`
	CellH    int   `json:"cellH" yaml:"cellH"`
	Cols     int   `json:"cols" yaml:"cols"`
	Rows     int   `json:"rows" yaml:"rows"`
	MaxLines int   `json:"maxLines" yaml:"maxLines"`
	LineGap  int   `json:"lineGap" yaml:"lineGap"`
	Align    Align `json:"align" yaml:"align"`
}

// Width returns the pixel width of the grid.
func (g GridSpec) Width() int {
	return g.Cols * g.CellW
}

// Height returns the pixel height of the grid including line gaps.
func (g GridSpec) Height() int {
	if g.Rows <= 0 {
		return 0
	}
	return g.Rows*g.CellH + (g.Rows-1)*g.LineGap
}

// RowTop returns the y coordinate of the top of row r.
func (g GridSpec) RowTop(r int) int {
	return r * (g.CellH + g.LineGap)
}

// WrapConfig selects the wrap mode and overflow policy.
type WrapConfig struct {
	Mode     WrapMode `json:"mode" yaml:"mode"`
	Overflow Overflow `json:"overflow" yaml:"overflow"`
}

// Cell is one grapheme placed at a grid position.
type Cell struct {
	CellID  string `json:"cellId" yaml:"cellId"`
	G       string `json:"g" yaml:"g"`
	Row     int    `json:"row" yaml:"row"`
	Col     int    `json:"col" yaml:"col"`
	X       int    `json:"x" yaml:"x"`
	Y       int    `json:"y" yaml:"y"`
	W       int    `json:"w" yaml:"w"`
	H       int    `json:"h" yaml:"h"`
	Visible bool   `json:"visible" yaml:"visible"`
}

// Line records the cells spanned by one visual line. Empty lines have empty
// cell ids.
type Line struct {
	Line        int    `json:"line" yaml:"line"`
	StartCellID string `json:"startCellId" yaml:"startCellId"`
	EndCellID   string `json:"endCellId" yaml:"endCellId"`
	BaselineY   int    `json:"baselineY" yaml:"baselineY"`
}

// Hashes holds the content digests of a document.
type Hashes struct {
	Text   string `json:"text" yaml:"text"`
	Inputs string `json:"inputs" yaml:"inputs"`
	Layout string `json:"layout" yaml:"layout"`
}

// Doc is a fully placed, hashed layout. It must not be modified after Build
// returns it.
type Doc struct {
	Version int        `json:"version" yaml:"version"`
	Text    string     `json:"text" yaml:"text"`
	Grid    GridSpec   `json:"grid" yaml:"grid"`
	Wrap    WrapConfig `json:"wrap" yaml:"wrap"`
	Cells   []Cell     `json:"cells" yaml:"cells"`
	Lines   []Line     `json:"lines" yaml:"lines"`
	Hashes  Hashes     `json:"hashes" yaml:"hashes"`
}

// Width returns the pixel width of the document's canvas.
func (d *Doc) Width() int { return d.Grid.Width() }

// Height returns the pixel height of the document's canvas.
func (d *Doc) Height() int { return d.Grid.Height() }

// VisibleCells returns the number of cells holding a visible grapheme.
func (d *Doc) VisibleCells() int {
	n := 0
	for i := range d.Cells {
		if d.Cells[i].Visible {
			n++
		}
	}
	return n
}

// CellID returns the identifier of the cell at row, col.
func CellID(row, col int) string {
	return fmt.Sprintf("cell_%d_%d", row, col)
}

// Options configures a Build call.
type Options struct {
	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
	// Logger receives operational messages; nil discards them
	Logger *slog.Logger
	// Tokenizer splits paragraphs for word wrap; nil uses segment.Tokenize
	Tokenizer segment.Tokenizer
}

// ConfigError reports a grid or text hard-limit violation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// LineOverflowError reports wrapped content that exceeds maxLines.
type LineOverflowError struct {
	Lines    int
	MaxLines int
}

func (e *LineOverflowError) Error() string {
	return fmt.Sprintf("%s: %d lines exceed maxLines %d", ErrOverflow, e.Lines, e.MaxLines)
}

// Unwrap returns ErrOverflow.
func (e *LineOverflowError) Unwrap() error { return ErrOverflow }
