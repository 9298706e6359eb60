// Package atlas converts a finished layout into per-cell runtime metadata
// for a stylized atlas image.
package atlas

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"math"

	"github.com/ryanlewis/textgrid/internal/common"
	"github.com/ryanlewis/textgrid/internal/layout"
)

// ErrInvalidDimensions is returned when the atlas or layout has no area.
var ErrInvalidDimensions = errors.New("invalid atlas dimensions")

// UVRect is a rectangle normalized to the atlas, origin top-left.
type UVRect struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PixelRect is a rectangle in atlas pixels.
type PixelRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// AnimationCell locates one layout cell inside the atlas.
type AnimationCell struct {
	Index   int       `json:"index"`
	CellID  string    `json:"cellId"`
	G       string    `json:"g"`
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	Visible bool      `json:"visible"`
	UV      UVRect    `json:"uv"`
	Px      PixelRect `json:"px"`
}

// Metadata describes an atlas and every cell in it.
type Metadata struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Cols       int             `json:"cols"`
	Rows       int             `json:"rows"`
	LayoutHash string          `json:"layoutHash"`
	Cells      []AnimationCell `json:"cells"`
}

// Build maps every cell of doc onto an atlas of width x height pixels. The
// atlas may be a scaled rendering of the layout; pixel rects are rounded so
// neighbouring cells share edges.
func Build(doc *layout.Doc, width, height int) (*Metadata, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil layout", ErrInvalidDimensions)
	}
	lw, lh := doc.Width(), doc.Height()
	if width <= 0 || height <= 0 || lw <= 0 || lh <= 0 {
		return nil, fmt.Errorf("%w: atlas %dx%d, layout %dx%d", ErrInvalidDimensions, width, height, lw, lh)
	}

	sx := float64(width) / float64(lw)
	sy := float64(height) / float64(lh)

	meta := &Metadata{
		Width:      width,
		Height:     height,
		Cols:       doc.Grid.Cols,
		Rows:       doc.Grid.Rows,
		LayoutHash: doc.Hashes.Layout,
		Cells:      make([]AnimationCell, len(doc.Cells)),
	}
	for i, c := range doc.Cells {
		x0, y0 := scale(c.X, sx), scale(c.Y, sy)
		x1, y1 := scale(c.X+c.W, sx), scale(c.Y+c.H, sy)
		meta.Cells[i] = AnimationCell{
			Index:   i,
			CellID:  c.CellID,
			G:       c.G,
			Row:     c.Row,
			Col:     c.Col,
			Visible: c.Visible,
			UV: UVRect{
				U: float64(c.X) / float64(lw),
				V: float64(c.Y) / float64(lh),
				W: float64(c.W) / float64(lw),
				H: float64(c.H) / float64(lh),
			},
			Px: PixelRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0},
		}
	}
	return meta, nil
}

func scale(v int, f float64) int {
	return int(math.Round(float64(v) * f))
}

// Cell returns the cell with id, if any.
func (m *Metadata) Cell(id string) (AnimationCell, bool) {
	for _, c := range m.Cells {
		if c.CellID == id {
			return c, true
		}
	}
	return AnimationCell{}, false
}

// DebugSVG draws the atlas once per visible cell, each copy clipped to that
// cell's pixel rect. It references imageRef by href and is only meant for
// eyeballing a generated atlas; it does not pass the SVG safety validator.
func DebugSVG(m *Metadata, imageRef string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="%s" width="%d" height="%d" viewBox="0 0 %d %d">`, common.SVGNamespace, m.Width, m.Height, m.Width, m.Height)
	buf.WriteString("\n<defs>\n")
	fmt.Fprintf(&buf, `<image id="atlas" width="%d" height="%d" href="`, m.Width, m.Height)
	escape(&buf, imageRef)
	buf.WriteString("\"/>\n")
	for _, c := range m.Cells {
		if !c.Visible {
			continue
		}
		buf.WriteString(`<clipPath id="clip-`)
		escape(&buf, c.CellID)
		fmt.Fprintf(&buf, `"><rect x="%d" y="%d" width="%d" height="%d"/></clipPath>`, c.Px.X, c.Px.Y, c.Px.W, c.Px.H)
		buf.WriteByte('\n')
	}
	buf.WriteString("</defs>\n")
	for _, c := range m.Cells {
		if !c.Visible {
			continue
		}
		buf.WriteString(`<use href="#atlas" clip-path="url(#clip-`)
		escape(&buf, c.CellID)
		buf.WriteString(`)"/>`)
		buf.WriteByte('\n')
	}
	buf.WriteString("</svg>\n")
	return buf.String()
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
