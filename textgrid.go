// Package textgrid lays text out into a fixed cell grid and renders a
// silhouette SVG for a sprite atlas.
//
// A request names the text, the grid geometry, wrap and overflow behavior,
// an allowlisted font and the silhouette paint. Generate validates the
// request, builds a deterministic, hashed layout document, renders the
// silhouette SVG and checks it with the SVG safety validator before
// returning it. The rendered silhouette is then handed to an external
// stylizer, and the finished atlas is described to runtime renderers with
// BuildAtlasMetadata.
//
// Example:
//
//	req, err := textgrid.DecodeRequest(body, textgrid.FormatAuto)
//	if err != nil {
//	    // 400
//	}
//	resp := textgrid.Generate(req)
//	w.WriteHeader(resp.StatusCode())
//
// All functions are safe for concurrent use.
package textgrid

import (
	"context"
	"errors"
	"strings"

	"github.com/ryanlewis/textgrid/internal/atlas"
	"github.com/ryanlewis/textgrid/internal/debug"
	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/stylizer"
	"github.com/ryanlewis/textgrid/internal/svg"
	"github.com/ryanlewis/textgrid/internal/validate"
)

// Option configures Generate.
type Option func(*options)

type options struct {
	debug *debug.Session
	cache *LayoutCache
}

func defaultOptions() *options {
	return &options{cache: defaultCache.Load()}
}

// WithDebug attaches a debug session that receives trace events for every
// stage of the request. A nil session disables tracing.
func WithDebug(session *debug.Session) Option {
	return func(o *options) {
		o.debug = session
	}
}

// WithLayoutCache selects the cache used for layout documents. A nil cache
// builds every layout from scratch.
func WithLayoutCache(c *LayoutCache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// Generate runs the full pipeline for one request: request validation, layout,
// layout validation, SVG rendering and SVG safety validation. It never
// panics on bad input and never returns internal error detail; failures are
// reported through the response's error payload.
func Generate(req *TextGridSpec, opts ...Option) *Response {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	sess := o.debug

	if req == nil {
		return malformedResponse(errors.New("request body is empty"))
	}

	res := validate.Spec(req)
	emitValidate(sess, "request", res)
	if !res.Valid {
		return validationResponse(res.Errors)
	}

	lopts := &layout.Options{Debug: sess, Logger: Logger()}
	var (
		doc *LayoutDoc
		err error
	)
	if o.cache == nil {
		doc, err = layout.Build(req.Text, req.Grid, req.Wrap, lopts)
	} else {
		doc, err = o.cache.Build(req.Text, req.Grid, req.Wrap, lopts)
	}
	if err != nil {
		var overflow *layout.LineOverflowError
		if errors.As(err, &overflow) {
			return validationResponse([]ValidationIssue{{
				Code:    validate.CodeLayoutOverflow,
				Message: overflow.Error(),
				Field:   "text",
			}})
		}
		return internalFailure(sess, "layout", req, err)
	}

	res = validate.Layout(doc)
	emitValidate(sess, "layout", res)
	if !res.Valid {
		return internalFailure(sess, "layout", req, errors.New(joinCodes(res)))
	}

	out, err := svg.Render(doc, req.Font, req.Silhouette, &svg.Options{Debug: sess})
	if err != nil {
		return internalFailure(sess, "svg", req, err)
	}

	res = validate.SVG(out.SVG)
	emitValidate(sess, "svg", res)
	if !res.Valid {
		return internalFailure(sess, "svg", req, errors.New(joinCodes(res)))
	}

	return &Response{
		Success:    true,
		LayoutDoc:  doc,
		SVG:        out.SVG,
		Dimensions: &Dimensions{Width: out.Width, Height: out.Height},
	}
}

// GenerateBytes decodes a request body and runs Generate. A body that cannot
// be decoded yields a validation response with MALFORMED_REQUEST.
func GenerateBytes(data []byte, format Format, opts ...Option) *Response {
	req, err := DecodeRequest(data, format)
	if err != nil {
		return malformedResponse(err)
	}
	return Generate(req, opts...)
}

// internalFailure logs err with the request id and returns the generic
// server response.
func internalFailure(sess *debug.Session, stage string, req *TextGridSpec, err error) *Response {
	Logger().Error("textgrid: generation failed",
		"stage", stage,
		"id", req.ID,
		"error", err)
	sess.Emit(stage, "Error", debug.ErrorData{
		Type:    "server",
		Message: debug.Truncate(err.Error(), 200),
	})
	return serverResponse()
}

func emitValidate(sess *debug.Session, name string, res validate.Result) {
	sess.Emit("validate", "Result", debug.ValidateData{
		Validator: name,
		Valid:     res.Valid,
		Codes:     res.Codes(),
	})
}

func joinCodes(res validate.Result) string {
	return "validation failed: " + strings.Join(res.Codes(), ", ")
}

// ValidateSpec checks a request field by field and returns every problem
// found.
func ValidateSpec(req *TextGridSpec) ValidationResult { return validate.Spec(req) }

// ValidateLayout checks the structural invariants and hashes of a layout.
func ValidateLayout(doc *LayoutDoc) ValidationResult { return validate.Layout(doc) }

// ValidateSVG checks an untrusted SVG document for scripting vectors and
// structural problems.
func ValidateSVG(s string) ValidationResult { return validate.SVG(s) }

// BuildLayout builds a layout document without consulting any cache.
func BuildLayout(text string, grid GridSpec, wrap WrapConfig) (*LayoutDoc, error) {
	return layout.Build(text, grid, wrap, &layout.Options{Logger: Logger()})
}

// RenderSVG renders the silhouette SVG for a layout.
func RenderSVG(doc *LayoutDoc, font FontSpec, sil SilhouetteSpec) (string, error) {
	out, err := svg.Render(doc, font, sil, nil)
	if err != nil {
		return "", err
	}
	return out.SVG, nil
}

// BuildAtlasMetadata describes where each cell of doc sits in an atlas image
// of the given pixel size.
func BuildAtlasMetadata(doc *LayoutDoc, width, height int) (*AtlasMetadata, error) {
	return atlas.Build(doc, width, height)
}

// DebugAtlasSVG returns an SVG that clips every visible cell out of the atlas
// image at imageRef. It references an external image and is for local
// inspection only; it does not pass ValidateSVG.
func DebugAtlasSVG(m *AtlasMetadata, imageRef string) string {
	return atlas.DebugSVG(m, imageRef)
}

// NewStylizerInput builds the stylizer request for a rendered silhouette.
func NewStylizerInput(silhouetteRef string, doc *LayoutDoc, style StyleSpec) StylizerInput {
	return stylizer.NewInput(silhouetteRef, doc, style)
}

// ValidateStylizerInput checks a stylizer request against its layout.
func ValidateStylizerInput(in StylizerInput, doc *LayoutDoc) ValidationResult {
	return stylizer.ValidateInput(in, doc)
}

// ValidateStylizerOutput checks that a stylizer result matches its request
// and carries transparency.
func ValidateStylizerOutput(in StylizerInput, out StylizerOutput) ValidationResult {
	return stylizer.ValidateOutput(in, out)
}

// RunStylizer calls s and validates its result.
func RunStylizer(ctx context.Context, s Stylizer, in StylizerInput) (StylizerOutput, error) {
	return stylizer.Run(ctx, s, in)
}
