// Package svg renders a layout document as a silhouette guide image.
//
// The output is a single <svg> root holding one <g id="cell-{cellId}"> per
// visible cell. It communicates glyph shape and position to the stylizer and
// is not meant to be shipped as final art.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/ryanlewis/textgrid/internal/common"
	"github.com/ryanlewis/textgrid/internal/debug"
	"github.com/ryanlewis/textgrid/internal/fonts"
	"github.com/ryanlewis/textgrid/internal/layout"
)

// Options configures a Render call.
type Options struct {
	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
}

// Render draws doc with the given font and silhouette. It has no side
// effects and the same inputs always produce the same bytes.
func Render(doc *layout.Doc, font fonts.Spec, sil Silhouette, opts *Options) (Result, error) {
	if doc == nil {
		return Result{}, ErrNilDoc
	}
	if sil.Mode == "" {
		sil.Mode = ModeFill
	}
	if !sil.Mode.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidMode, sil.Mode)
	}

	width, height := doc.Width(), doc.Height()
	fam := fontFamily(font.Family)
	size := font.Size
	if size <= 0 {
		size = fonts.DefaultSize
	}
	weight := font.Weight
	if weight <= 0 {
		weight = 400
	}
	style := font.Style
	if style == "" {
		style = fonts.StyleNormal
	}
	paint := paintAttrs(sil)

	buf := acquireBuffer()
	defer releaseBuffer(buf)

	buf.WriteString(`<svg xmlns="`)
	buf.WriteString(common.SVGNamespace)
	fmt.Fprintf(buf, `" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	buf.WriteByte('\n')

	groups := 0
	for i := range doc.Cells {
		c := &doc.Cells[i]
		if !c.Visible {
			continue
		}
		groups++

		x, y, anchor := glyphAnchor(c, doc.Grid.Align, sil.PadPx)

		buf.WriteString(`<g id="cell-`)
		escape(buf, c.CellID)
		buf.WriteString(`"><text x="`)
		buf.WriteString(num(x))
		buf.WriteString(`" y="`)
		buf.WriteString(num(y))
		buf.WriteString(`" font-family="`)
		escape(buf, fam)
		fmt.Fprintf(buf, `" font-size="%d" font-weight="%d" font-style="`, size, weight)
		escape(buf, style)
		buf.WriteString(`" text-anchor="`)
		buf.WriteString(anchor)
		buf.WriteString(`" dominant-baseline="central"`)
		buf.WriteString(paint)
		buf.WriteByte('>')
		escape(buf, c.G)
		buf.WriteString("</text></g>\n")
	}
	buf.WriteString("</svg>\n")

	out := buf.String()
	if opts != nil {
		opts.Debug.Emit("svg", "Render", debug.RenderData{
			Width:  width,
			Height: height,
			Groups: groups,
			Mode:   string(sil.Mode),
			Bytes:  len(out),
		})
	}
	return Result{SVG: out, Width: width, Height: height}, nil
}

// glyphAnchor returns the text position and anchor for a cell. Centered lines
// center the glyph in the padded box; left and right lines anchor it to the
// matching edge.
func glyphAnchor(c *layout.Cell, align layout.Align, pad int) (x, y float64, anchor string) {
	pad = clampPad(pad, c.W, c.H)
	left := float64(c.X + pad)
	right := float64(c.X + c.W - pad)
	y = float64(c.Y) + float64(c.H)/2

	switch align {
	case layout.AlignLeft:
		return left, y, "start"
	case layout.AlignRight:
		return right, y, "end"
	default:
		return (left + right) / 2, y, "middle"
	}
}

// clampPad keeps the inner box non-negative.
func clampPad(pad, w, h int) int {
	if pad < 0 {
		return 0
	}
	if m := min(w, h) / 2; pad > m {
		return m
	}
	return pad
}

// fontFamily builds the font-family value: the registry spelling, quoted,
// followed by the category's generic fallback.
func fontFamily(family string) string {
	entry, ok := fonts.Lookup(family)
	if !ok {
		if family == "" {
			return "sans-serif"
		}
		return "'" + family + "', sans-serif"
	}
	return "'" + entry.Family + "', " + entry.Category.Generic()
}

// paintAttrs returns the paint attributes for a mode, each with a leading
// space.
func paintAttrs(sil Silhouette) string {
	var b bytes.Buffer
	fill := sil.FillColor
	if fill == "" {
		fill = "#000000"
	}
	switch sil.Mode {
	case ModeStroke:
		b.WriteString(` fill="none" stroke="`)
		escape(&b, strokeOr(sil, fill))
		fmt.Fprintf(&b, `" stroke-width="%d" stroke-linejoin="round"`, sil.strokeWidth())
	case ModeOutline:
		b.WriteString(` fill="`)
		escape(&b, fill)
		b.WriteString(`" stroke="`)
		escape(&b, strokeOr(sil, fill))
		fmt.Fprintf(&b, `" stroke-width="%d" stroke-linejoin="round" paint-order="stroke"`, sil.strokeWidth())
	default:
		b.WriteString(` fill="`)
		escape(&b, fill)
		b.WriteByte('"')
	}
	return b.String()
}

func strokeOr(sil Silhouette, fill string) string {
	if c := sil.strokeColor(); c != "" {
		return c
	}
	return fill
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escape writes s with XML special characters replaced. EscapeText also
// encodes quotes, so the result is safe inside attribute values.
func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
