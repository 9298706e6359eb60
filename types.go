package textgrid

import (
	"github.com/ryanlewis/textgrid/internal/atlas"
	"github.com/ryanlewis/textgrid/internal/fonts"
	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/spec"
	"github.com/ryanlewis/textgrid/internal/stylizer"
	"github.com/ryanlewis/textgrid/internal/svg"
	"github.com/ryanlewis/textgrid/internal/validate"
)

// Request data model.
type (
	// TextGridSpec is a generation request.
	TextGridSpec = spec.TextGridSpec
	// GridSpec describes the cell grid.
	GridSpec = layout.GridSpec
	// WrapConfig selects wrap mode and overflow policy.
	WrapConfig = layout.WrapConfig
	// FontSpec selects an allowlisted face.
	FontSpec = fonts.Spec
	// FontEntry is one allowlisted family.
	FontEntry = fonts.Entry
	// SilhouetteSpec controls how glyphs are painted.
	SilhouetteSpec = svg.Silhouette
	// StyleSpec is the prompt material for the stylizer.
	StyleSpec = spec.Style
	// OutputSpec selects requested artifacts.
	OutputSpec = spec.Output
)

// Layout data model.
type (
	// LayoutDoc is a placed, hashed layout.
	LayoutDoc = layout.Doc
	// GridCell is one placed grapheme.
	GridCell = layout.Cell
	// TextLine records the cells of one visual line.
	TextLine = layout.Line
	// Hashes holds a layout's content digests.
	Hashes = layout.Hashes
)

// Validation results.
type (
	// ValidationResult is the outcome of a validator.
	ValidationResult = validate.Result
	// ValidationIssue is one validation failure.
	ValidationIssue = validate.Issue
)

// Stylizer contract and runtime metadata.
type (
	// StylizerInput is sent to the external stylizer.
	StylizerInput = stylizer.Input
	// StylizerOutput is returned by the external stylizer.
	StylizerOutput = stylizer.Output
	// Stylizer turns a silhouette into finished art.
	Stylizer = stylizer.Stylizer
	// AnimationCell locates a layout cell inside an atlas.
	AnimationCell = atlas.AnimationCell
	// AtlasMetadata describes an atlas and its cells.
	AtlasMetadata = atlas.Metadata
)

// Enumerations.
type (
	// Align is the horizontal alignment of each line.
	Align = layout.Align
	// WrapMode selects word or character wrapping.
	WrapMode = layout.WrapMode
	// Overflow is the policy for content beyond maxLines.
	Overflow = layout.Overflow
	// SilhouetteMode is the glyph paint mode.
	SilhouetteMode = svg.Mode
)

// Alignments.
const (
	AlignLeft   = layout.AlignLeft
	AlignCenter = layout.AlignCenter
	AlignRight  = layout.AlignRight
)

// Wrap modes.
const (
	WrapWord = layout.WrapWord
	WrapChar = layout.WrapChar
)

// Overflow policies.
const (
	OverflowTruncate = layout.OverflowTruncate
	OverflowEllipsis = layout.OverflowEllipsis
	OverflowError    = layout.OverflowError
)

// Silhouette modes.
const (
	SilhouetteFill    = svg.ModeFill
	SilhouetteStroke  = svg.ModeStroke
	SilhouetteOutline = svg.ModeOutline
)

// Errors returned by the engine.
var (
	// ErrConfiguration reports a hard-limit or grid violation
	ErrConfiguration = layout.ErrConfiguration
	// ErrOverflow reports content exceeding maxLines under the error policy
	ErrOverflow = layout.ErrOverflow
	// ErrIntegrity reports a layout whose hashes do not match its content
	ErrIntegrity = layout.ErrIntegrity
	// ErrStylizerOutput reports a stylizer result that breaks its contract
	ErrStylizerOutput = stylizer.ErrInvalidOutput
)

// Fonts returns the allowlisted font families in alphabetical order.
func Fonts() []string { return fonts.Families() }

// FontEntries returns copies of every allowlisted family entry.
func FontEntries() []FontEntry { return fonts.Entries() }

// LookupFont returns the registry entry for family, case-insensitively.
func LookupFont(family string) (FontEntry, bool) { return fonts.Lookup(family) }

// DefaultFont returns the font used when a request omits one.
func DefaultFont() FontSpec { return fonts.Default() }

// ApplyDefaults fills omitted optional request fields with their defaults.
// DecodeRequest calls it; callers building requests in code may too.
func ApplyDefaults(req *TextGridSpec) { spec.ApplyDefaults(req) }
