package svg

import "errors"

// Error definitions for the svg package
var (
	// ErrNilDoc is returned when Render is called without a layout
	ErrNilDoc = errors.New("layout document cannot be nil")
	// ErrInvalidMode is returned for an unknown silhouette paint mode
	ErrInvalidMode = errors.New("invalid silhouette mode")
)

// Mode is the silhouette paint mode.
type Mode string

// Paint modes.
const (
	// ModeFill paints glyphs solid
	ModeFill Mode = "fill"
	// ModeStroke paints glyph outlines only
	ModeStroke Mode = "stroke"
	// ModeOutline paints a stroke underneath the fill
	ModeOutline Mode = "outline"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeFill || m == ModeStroke || m == ModeOutline
}

// DefaultStrokePx is the stroke width used when a stroked mode omits one.
const DefaultStrokePx = 2

// Silhouette controls how glyphs are painted.
type Silhouette struct {
	Mode      Mode   `json:"mode" yaml:"mode"`
	PadPx     int    `json:"padPx" yaml:"padPx"`
	FillColor string `json:"fillColor" yaml:"fillColor"`
	// CornerRoundPx is accepted and validated but has no visual effect.
	CornerRoundPx *int    `json:"cornerRoundPx,omitempty" yaml:"cornerRoundPx,omitempty"`
	StrokeColor   *string `json:"strokeColor,omitempty" yaml:"strokeColor,omitempty"`
	StrokePx      *int    `json:"strokePx,omitempty" yaml:"strokePx,omitempty"`
}

// strokeWidth returns the effective stroke width.
func (s Silhouette) strokeWidth() int {
	if s.StrokePx != nil {
		return *s.StrokePx
	}
	return DefaultStrokePx
}

// strokeColor returns the effective stroke color, falling back to the fill.
func (s Silhouette) strokeColor() string {
	if s.StrokeColor != nil && *s.StrokeColor != "" {
		return *s.StrokeColor
	}
	return s.FillColor
}

// Result is a rendered silhouette.
type Result struct {
	SVG    string `json:"svg"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
