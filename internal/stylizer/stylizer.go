// Package stylizer defines the contract with the external image stylization
// service. Nothing here calls the service; the package builds its input from
// a layout and checks that what comes back can be used as an atlas.
package stylizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/spec"
	"github.com/ryanlewis/textgrid/internal/validate"
)

// ErrInvalidOutput is returned by Run when the stylizer's output breaks the
// contract. The caller should treat it as a failed generation.
var ErrInvalidOutput = errors.New("stylizer output rejected")

// Input is sent to the stylizer. Width and Height must equal the layout's
// pixel dimensions.
type Input struct {
	SilhouetteRef  string   `json:"silhouetteRef"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negativePrompt,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
	Model          string   `json:"model,omitempty"`
	Strength       *float64 `json:"strength,omitempty"`
}

// Output is returned by the stylizer.
type Output struct {
	ImageRef        string `json:"imageRef"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	HasTransparency bool   `json:"hasTransparency"`
}

// Stylizer turns a silhouette into finished art.
type Stylizer interface {
	Stylize(ctx context.Context, in Input) (Output, error)
}

// NewInput builds the stylizer input for a rendered silhouette of doc.
func NewInput(silhouetteRef string, doc *layout.Doc, style spec.Style) Input {
	return Input{
		SilhouetteRef:  silhouetteRef,
		Width:          doc.Width(),
		Height:         doc.Height(),
		Prompt:         style.Prompt,
		NegativePrompt: style.NegativePrompt,
		Seed:           style.Seed,
		Model:          style.Model,
	}
}

// ValidateInput checks in against the layout it was built for.
func ValidateInput(in Input, doc *layout.Doc) validate.Result {
	var issues []validate.Issue
	if strings.TrimSpace(in.SilhouetteRef) == "" {
		issues = append(issues, validate.Issue{Code: validate.CodeStylizerReferenceMissing, Field: "silhouetteRef", Message: "silhouette reference is required"})
	}
	if doc != nil && (in.Width != doc.Width() || in.Height != doc.Height()) {
		issues = append(issues, validate.Issue{
			Code:    validate.CodeStylizerDimensionMismatch,
			Field:   "width",
			Message: fmt.Sprintf("input is %dx%d, layout is %dx%d", in.Width, in.Height, doc.Width(), doc.Height()),
		})
	}
	if strings.TrimSpace(in.Prompt) == "" {
		issues = append(issues, validate.Issue{Code: validate.CodeStylePromptEmpty, Field: "prompt", Message: "prompt must not be empty"})
	}
	if in.Strength != nil && (*in.Strength < 0 || *in.Strength > 1) {
		issues = append(issues, validate.Issue{
			Code:    validate.CodeStylizerStrengthInvalid,
			Field:   "strength",
			Message: fmt.Sprintf("strength must be between 0 and 1, got %g", *in.Strength),
		})
	}
	return validate.Result{Valid: len(issues) == 0, Errors: issues}
}

// ValidateOutput checks that out matches in exactly and carries an alpha
// channel.
func ValidateOutput(in Input, out Output) validate.Result {
	var issues []validate.Issue
	if strings.TrimSpace(out.ImageRef) == "" {
		issues = append(issues, validate.Issue{Code: validate.CodeStylizerReferenceMissing, Field: "imageRef", Message: "stylized image reference is required"})
	}
	if out.Width != in.Width || out.Height != in.Height {
		issues = append(issues, validate.Issue{
			Code:    validate.CodeStylizerDimensionMismatch,
			Field:   "width",
			Message: fmt.Sprintf("output is %dx%d, want %dx%d", out.Width, out.Height, in.Width, in.Height),
		})
	}
	if !out.HasTransparency {
		issues = append(issues, validate.Issue{Code: validate.CodeStylizerNoTransparency, Field: "hasTransparency", Message: "stylized image must have transparency"})
	}
	return validate.Result{Valid: len(issues) == 0, Errors: issues}
}

// Run calls s and enforces the output contract. Retrying is left to the
// caller.
func Run(ctx context.Context, s Stylizer, in Input) (Output, error) {
	out, err := s.Stylize(ctx, in)
	if err != nil {
		return Output{}, fmt.Errorf("stylize: %w", err)
	}
	if res := ValidateOutput(in, out); !res.Valid {
		return Output{}, fmt.Errorf("%w: %s", ErrInvalidOutput, strings.Join(res.Codes(), ", "))
	}
	return out, nil
}
