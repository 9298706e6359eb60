package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ryanlewis/textgrid/internal/common"
	"github.com/ryanlewis/textgrid/internal/fonts"
	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/segment"
	"github.com/ryanlewis/textgrid/internal/spec"
	"github.com/ryanlewis/textgrid/internal/svg"
)

var (
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)
	colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// IsColor reports whether s is a #rgb, #rgba, #rrggbb or #rrggbbaa color.
func IsColor(s string) bool {
	return colorPattern.MatchString(s)
}

// Spec checks a request field by field and reports every violation.
func Spec(s *spec.TextGridSpec) Result {
	var c collector
	if s == nil {
		c.add(CodeMalformedRequest, "", "request is empty")
		return c.result()
	}

	checkID(&c, s.ID)
	checkText(&c, s.Text)
	checkGrid(&c, s.Grid)
	checkWrap(&c, s.Wrap)
	checkFont(&c, s.Font)
	checkSilhouette(&c, s.Silhouette)
	checkStyle(&c, s.Style)
	checkOutput(&c, s.Output)
	return c.result()
}

func checkID(c *collector, id string) {
	switch {
	case id == "":
		c.add(CodeIDInvalid, "id", "id is required")
	case len(id) > common.MaxIDLength:
		c.add(CodeIDInvalid, "id", "id exceeds %d bytes", common.MaxIDLength)
	case !idPattern.MatchString(id):
		c.add(CodeIDInvalid, "id", "id may only contain letters, digits, '_', '.', ':' and '-'")
	}
}

func checkText(c *collector, text string) {
	if strings.TrimSpace(text) == "" {
		c.add(CodeTextEmpty, "text", "text must not be empty")
		return
	}
	if !utf8.ValidString(text) {
		c.add(CodeTextInvalid, "text", "text must be valid UTF-8")
		return
	}
	if n := utf8.RuneCountInString(text); n > common.MaxTextChars {
		c.add(CodeTextTooLong, "text", "text has %d characters, limit is %d", n, common.MaxTextChars)
		return
	}
	if n := graphemeCount(text); n > common.MaxGraphemes {
		c.add(CodeTextTooLong, "text", "text has %d graphemes, limit is %d", n, common.MaxGraphemes)
	}
}

// graphemeCount counts graphemes excluding hard line breaks.
func graphemeCount(text string) int {
	n := 0
	for _, g := range segment.Graphemes(text) {
		if g != "\n" && g != "\r\n" && g != "\r" {
			n++
		}
	}
	return n
}

func checkGrid(c *collector, g layout.GridSpec) {
	dims := []struct {
		field string
		v     int
	}{
		{"grid.cellW", g.CellW},
		{"grid.cellH", g.CellH},
		{"grid.cols", g.Cols},
		{"grid.rows", g.Rows},
		{"grid.maxLines", g.MaxLines},
	}
	positive := true
	for _, d := range dims {
		if d.v <= 0 {
			c.add(CodeGridInvalidDimensions, d.field, "must be a positive integer, got %d", d.v)
			positive = false
		}
	}
	if g.LineGap < 0 || g.LineGap > common.MaxLineGapPx {
		c.add(CodeGridInvalidDimensions, "grid.lineGap", "must be between 0 and %d, got %d", common.MaxLineGapPx, g.LineGap)
	}

	if g.CellW > common.MaxCellPx {
		c.add(CodeCellTooLarge, "grid.cellW", "cellW %d exceeds %d", g.CellW, common.MaxCellPx)
	}
	if g.CellH > common.MaxCellPx {
		c.add(CodeCellTooLarge, "grid.cellH", "cellH %d exceeds %d", g.CellH, common.MaxCellPx)
	}
	if g.Cols > common.MaxGridDim {
		c.add(CodeGridTooLarge, "grid.cols", "cols %d exceeds %d", g.Cols, common.MaxGridDim)
	}
	if g.Rows > common.MaxGridDim {
		c.add(CodeGridTooLarge, "grid.rows", "rows %d exceeds %d", g.Rows, common.MaxGridDim)
	}
	if positive && g.Cols*g.Rows > common.MaxCells {
		c.add(CodeGridTooLarge, "grid", "%d cells exceed %d", g.Cols*g.Rows, common.MaxCells)
	}
	if positive && g.MaxLines > g.Rows {
		c.add(CodeGridInvalidDimensions, "grid.maxLines", "maxLines %d exceeds rows %d", g.MaxLines, g.Rows)
	}
	if !g.Align.Valid() {
		c.add(CodeAlignInvalid, "grid.align", "align must be left, center or right, got %q", g.Align)
	}
}

func checkWrap(c *collector, w layout.WrapConfig) {
	if !w.Mode.Valid() {
		c.add(CodeWrapInvalid, "wrap.mode", "mode must be word or char, got %q", w.Mode)
	}
	if !w.Overflow.Valid() {
		c.add(CodeWrapInvalid, "wrap.overflow", "overflow must be truncate, ellipsis or error, got %q", w.Overflow)
	}
}

func checkFont(c *collector, f fonts.Spec) {
	if !fonts.IsAllowlisted(f.Family) {
		c.add(CodeFontNotAllowlisted, "font.family", "font family %q is not allowlisted", f.Family)
	} else {
		if !fonts.IsWeightAvailable(f.Family, f.Weight) {
			c.add(CodeFontWeightUnavailable, "font.weight", "weight %d is not available for %s", f.Weight, fonts.Canonical(f.Family))
		}
		if !fonts.IsStyleAvailable(f.Family, f.Style) {
			c.add(CodeFontStyleUnavailable, "font.style", "style %q is not available for %s", f.Style, fonts.Canonical(f.Family))
		}
	}
	if f.Size <= 0 || f.Size > common.MaxFontSize {
		c.add(CodeFontSizeInvalid, "font.size", "size must be between 1 and %d, got %d", common.MaxFontSize, f.Size)
	}
}

func checkSilhouette(c *collector, s svg.Silhouette) {
	if !s.Mode.Valid() {
		c.add(CodeSilhouetteInvalid, "silhouette.mode", "mode must be fill, stroke or outline, got %q", s.Mode)
	}
	if s.PadPx < 0 || s.PadPx > common.MaxPadPx {
		c.add(CodeSilhouetteInvalid, "silhouette.padPx", "padPx must be between 0 and %d, got %d", common.MaxPadPx, s.PadPx)
	}
	if !IsColor(s.FillColor) {
		c.add(CodeSilhouetteInvalid, "silhouette.fillColor", "fillColor %q is not a hex color", s.FillColor)
	}
	if s.StrokeColor != nil && !IsColor(*s.StrokeColor) {
		c.add(CodeSilhouetteInvalid, "silhouette.strokeColor", "strokeColor %q is not a hex color", *s.StrokeColor)
	}
	if s.StrokePx != nil && (*s.StrokePx <= 0 || *s.StrokePx > common.MaxStrokePx) {
		c.add(CodeSilhouetteInvalid, "silhouette.strokePx", "strokePx must be between 1 and %d, got %d", common.MaxStrokePx, *s.StrokePx)
	}
	if s.CornerRoundPx != nil && (*s.CornerRoundPx < 0 || *s.CornerRoundPx > common.MaxCornerPx) {
		c.add(CodeSilhouetteInvalid, "silhouette.cornerRoundPx", "cornerRoundPx must be between 0 and %d, got %d", common.MaxCornerPx, *s.CornerRoundPx)
	}
}

func checkStyle(c *collector, s spec.Style) {
	switch n := utf8.RuneCountInString(s.Prompt); {
	case strings.TrimSpace(s.Prompt) == "":
		c.add(CodeStylePromptEmpty, "style.prompt", "prompt must not be empty")
	case n > common.MaxPromptChars:
		c.add(CodeStylePromptTooLong, "style.prompt", "prompt has %d characters, limit is %d", n, common.MaxPromptChars)
	}
	if n := utf8.RuneCountInString(s.NegativePrompt); n > common.MaxPromptChars {
		c.add(CodeStylePromptTooLong, "style.negativePrompt", "negativePrompt has %d characters, limit is %d", n, common.MaxPromptChars)
	}
	for i, color := range s.Palette {
		if !IsColor(color) {
			c.add(CodeStylePaletteInvalid, "style.palette", "palette entry %d (%q) is not a hex color", i, color)
		}
	}
}

func checkOutput(c *collector, o spec.Output) {
	switch o.RasterFormat {
	case "", spec.RasterPNG, spec.RasterWebP:
	default:
		c.add(CodeOutputInvalid, "output.rasterFormat", "rasterFormat must be png or webp, got %q", o.RasterFormat)
	}
	if o.RasterScale != nil && (*o.RasterScale < 1 || *o.RasterScale > common.MaxRasterScale) {
		c.add(CodeOutputInvalid, "output.rasterScale", "rasterScale must be between 1 and %d, got %d", common.MaxRasterScale, *o.RasterScale)
	}
}
