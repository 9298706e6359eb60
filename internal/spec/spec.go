// Package spec defines the text-grid generation request and its defaults.
package spec

import (
	"github.com/ryanlewis/textgrid/internal/fonts"
	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/svg"
)

// RequestType is the only accepted value of TextGridSpec.Type.
const RequestType = "text_grid"

// Raster formats accepted in Output.RasterFormat.
const (
	RasterPNG  = "png"
	RasterWebP = "webp"
)

// TextGridSpec is a caller's generation request.
type TextGridSpec struct {
	Type       string            `json:"type" yaml:"type"`
	ID         string            `json:"id" yaml:"id"`
	Text       string            `json:"text" yaml:"text"`
	Grid       layout.GridSpec   `json:"grid" yaml:"grid"`
	Wrap       layout.WrapConfig `json:"wrap" yaml:"wrap"`
	Font       fonts.Spec        `json:"font" yaml:"font"`
	Silhouette svg.Silhouette    `json:"silhouette" yaml:"silhouette"`
	Style      Style             `json:"style" yaml:"style"`
	Output     Output            `json:"output" yaml:"output"`
}

// Style is the prompt material forwarded to the stylizer.
type Style struct {
	Prompt         string   `json:"prompt" yaml:"prompt"`
	Seed           *int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	Model          string   `json:"model,omitempty" yaml:"model,omitempty"`
	NegativePrompt string   `json:"negativePrompt,omitempty" yaml:"negativePrompt,omitempty"`
	Palette        []string `json:"palette,omitempty" yaml:"palette,omitempty"`
}

// Output selects the artifacts a caller wants.
type Output struct {
	SVG          bool   `json:"svg" yaml:"svg"`
	RasterFormat string `json:"rasterFormat,omitempty" yaml:"rasterFormat,omitempty"`
	RasterScale  *int   `json:"rasterScale,omitempty" yaml:"rasterScale,omitempty"`
}

// Default fill color of the silhouette.
const DefaultFillColor = "#000000"

// ApplyDefaults fills omitted optional fields in place. Fields that are
// present are never changed, so invalid values still reach the validator.
func ApplyDefaults(s *TextGridSpec) {
	if s.Grid.Align == "" {
		s.Grid.Align = layout.AlignLeft
	}
	if s.Wrap.Mode == "" {
		s.Wrap.Mode = layout.WrapWord
	}
	if s.Wrap.Overflow == "" {
		s.Wrap.Overflow = layout.OverflowEllipsis
	}

	if s.Font.Family == "" {
		def := fonts.Default()
		if s.Font.Size != 0 {
			def.Size = s.Font.Size
		}
		s.Font = def
	} else {
		if s.Font.Weight == 0 {
			s.Font.Weight = 400
		}
		if s.Font.Style == "" {
			s.Font.Style = fonts.StyleNormal
		}
		if s.Font.Size == 0 {
			s.Font.Size = fonts.DefaultSize
		}
	}

	if s.Silhouette.Mode == "" {
		s.Silhouette.Mode = svg.ModeFill
	}
	if s.Silhouette.FillColor == "" {
		s.Silhouette.FillColor = DefaultFillColor
	}
}
