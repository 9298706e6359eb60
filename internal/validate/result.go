// Package validate holds the request, layout and SVG validators.
//
// Validators never return Go errors for bad input. They collect every
// violation they find into a Result so callers can report them together.
package validate

import "fmt"

// Issue codes.
const (
	CodeMalformedRequest = "MALFORMED_REQUEST"
	CodeIDInvalid        = "ID_INVALID"

	CodeTextEmpty   = "TEXT_EMPTY"
	CodeTextTooLong = "TEXT_TOO_LONG"
	CodeTextInvalid = "TEXT_INVALID"

	CodeGridInvalidDimensions = "GRID_INVALID_DIMENSIONS"
	CodeGridTooLarge          = "GRID_TOO_LARGE"
	CodeCellTooLarge          = "CELL_TOO_LARGE"
	CodeAlignInvalid          = "ALIGN_INVALID"
	CodeWrapInvalid           = "WRAP_INVALID"

	CodeFontNotAllowlisted    = "FONT_NOT_ALLOWLISTED"
	CodeFontWeightUnavailable = "FONT_WEIGHT_UNAVAILABLE"
	CodeFontStyleUnavailable  = "FONT_STYLE_UNAVAILABLE"
	CodeFontSizeInvalid       = "FONT_SIZE_INVALID"

	CodeSilhouetteInvalid = "SILHOUETTE_INVALID"

	CodeStylePromptEmpty    = "STYLE_PROMPT_EMPTY"
	CodeStylePromptTooLong  = "STYLE_PROMPT_TOO_LONG"
	CodeStylePaletteInvalid = "STYLE_PALETTE_INVALID"

	CodeOutputInvalid = "OUTPUT_INVALID"

	CodeLayoutOverflow  = "LAYOUT_OVERFLOW"
	CodeCellOutOfBounds = "CELL_OUT_OF_BOUNDS"
	CodeCellIDMismatch  = "CELL_ID_MISMATCH"
	CodeDuplicateCellID = "DUPLICATE_CELL_ID"
	CodeLineInvalid     = "LINE_INVALID"
	CodeHashMissing     = "HASH_MISSING"
	CodeHashMalformed   = "HASH_MALFORMED"
	CodeHashMismatch    = "HASH_MISMATCH"

	CodeSVGMalformed        = "SVG_MALFORMED"
	CodeSVGTooLarge         = "SVG_TOO_LARGE"
	CodeSVGRootInvalid      = "SVG_ROOT_INVALID"
	CodeSVGDoctype          = "SVG_DOCTYPE_FORBIDDEN"
	CodeSVGMissingAttribute = "SVG_MISSING_ATTRIBUTE"
	CodeSVGNamespaceInvalid = "SVG_NAMESPACE_INVALID"
	CodeSVGDuplicateID      = "SVG_DUPLICATE_ID"
	CodeSVGForbiddenElement = "SVG_FORBIDDEN_ELEMENT"
	CodeSVGEventHandler     = "SVG_EVENT_HANDLER"
	CodeSVGJavaScriptURL    = "SVG_JAVASCRIPT_URL"
	CodeSVGHref             = "SVG_HREF_FORBIDDEN"

	CodeStylizerDimensionMismatch = "STYLIZER_DIMENSION_MISMATCH"
	CodeStylizerNoTransparency    = "STYLIZER_NO_TRANSPARENCY"
	CodeStylizerReferenceMissing  = "STYLIZER_REFERENCE_MISSING"
	CodeStylizerStrengthInvalid   = "STYLIZER_STRENGTH_INVALID"
)

// Issue is one validation failure.
type Issue struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Code, i.Message, i.Field)
}

// Result is the outcome of a validator.
type Result struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Errors []Issue `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Codes returns the issue codes in order.
func (r Result) Codes() []string {
	codes := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		codes[i] = e.Code
	}
	return codes
}

// Has reports whether r contains an issue with code.
func (r Result) Has(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// collector accumulates issues.
type collector struct {
	issues []Issue
}

func (c *collector) add(code, field, format string, args ...interface{}) {
	c.issues = append(c.issues, Issue{Code: code, Message: fmt.Sprintf(format, args...), Field: field})
}

func (c *collector) result() Result {
	return Result{Valid: len(c.issues) == 0, Errors: c.issues}
}
