// Package common provides shared limits and constants for internal packages.
// These values must match the limits documented in the textgrid package.
package common

// Hard resource limits. They bound the worst-case work of a single request.
const (
	// MaxGraphemes is the ceiling on placed (non-newline) graphemes per layout.
	MaxGraphemes = 256
	// MaxCells is the ceiling on cols*rows.
	MaxCells = 1024
	// MaxTextChars is the maximum request text length in characters.
	MaxTextChars = 1024
	// MaxPromptChars is the maximum style prompt length in characters.
	MaxPromptChars = 2048
)

// Grid and font limits enforced by the request validator.
const (
	MaxCellPx      = 256
	MaxLineGapPx   = 256
	MaxGridDim     = 32
	MaxFontSize    = 128
	MaxPadPx       = 32
	MaxCornerPx    = 64
	MaxStrokePx    = 32
	MaxIDLength    = 128
	MaxRasterScale = 4
)

// SVGNamespace is the only namespace accepted on an SVG root element.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Ellipsis is the grapheme written by the ellipsis overflow policy.
const Ellipsis = "…"

// LayoutVersion is stamped into every layout document and feeds its input hash.
const LayoutVersion = 1
