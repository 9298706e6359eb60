package stylizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/spec"
	"github.com/ryanlewis/textgrid/internal/validate"
)

func testDoc(t *testing.T) *layout.Doc {
	t.Helper()
	grid := layout.GridSpec{CellW: 64, CellH: 80, Cols: 4, Rows: 2, MaxLines: 2, LineGap: 8, Align: layout.AlignLeft}
	doc, err := layout.Build("PLAY", grid, layout.WrapConfig{Mode: layout.WrapWord, Overflow: layout.OverflowEllipsis}, nil)
	require.NoError(t, err)
	return doc
}

func TestNewInput(t *testing.T) {
	seed := int64(7)
	doc := testDoc(t)
	in := NewInput("mem://silhouette", doc, spec.Style{Prompt: "neon", NegativePrompt: "blurry", Seed: &seed, Model: "sdxl"})

	assert.Equal(t, 256, in.Width)
	assert.Equal(t, 168, in.Height)
	assert.Equal(t, "neon", in.Prompt)
	assert.Equal(t, "blurry", in.NegativePrompt)
	assert.Equal(t, &seed, in.Seed)
	assert.Equal(t, "sdxl", in.Model)
	assert.True(t, ValidateInput(in, doc).Valid)
}

func TestValidateInput(t *testing.T) {
	doc := testDoc(t)
	strength := 1.5
	in := Input{Width: 10, Height: 10, Strength: &strength}

	res := ValidateInput(in, doc)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		validate.CodeStylizerReferenceMissing,
		validate.CodeStylizerDimensionMismatch,
		validate.CodeStylePromptEmpty,
		validate.CodeStylizerStrengthInvalid,
	}, res.Codes())
}

func TestValidateOutput(t *testing.T) {
	in := Input{SilhouetteRef: "s", Width: 256, Height: 168, Prompt: "p"}

	tests := []struct {
		name  string
		out   Output
		codes []string
	}{
		{"ok", Output{ImageRef: "a", Width: 256, Height: 168, HasTransparency: true}, nil},
		{"width differs", Output{ImageRef: "a", Width: 255, Height: 168, HasTransparency: true}, []string{validate.CodeStylizerDimensionMismatch}},
		{"height differs", Output{ImageRef: "a", Width: 256, Height: 170, HasTransparency: true}, []string{validate.CodeStylizerDimensionMismatch}},
		{"opaque", Output{ImageRef: "a", Width: 256, Height: 168}, []string{validate.CodeStylizerNoTransparency}},
		{"everything wrong", Output{}, []string{validate.CodeStylizerReferenceMissing, validate.CodeStylizerDimensionMismatch, validate.CodeStylizerNoTransparency}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateOutput(in, tt.out)
			assert.Equal(t, len(tt.codes) == 0, res.Valid)
			assert.Equal(t, len(tt.codes), len(res.Errors))
			for _, code := range tt.codes {
				assert.True(t, res.Has(code), code)
			}
		})
	}
}

type stubStylizer struct {
	out Output
	err error
}

func (s stubStylizer) Stylize(ctx context.Context, in Input) (Output, error) {
	return s.out, s.err
}

func TestRun(t *testing.T) {
	in := Input{SilhouetteRef: "s", Width: 10, Height: 10, Prompt: "p"}

	out, err := Run(context.Background(), stubStylizer{out: Output{ImageRef: "x", Width: 10, Height: 10, HasTransparency: true}}, in)
	require.NoError(t, err)
	assert.Equal(t, "x", out.ImageRef)

	_, err = Run(context.Background(), stubStylizer{out: Output{ImageRef: "x", Width: 10, Height: 10}}, in)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
	assert.Contains(t, err.Error(), validate.CodeStylizerNoTransparency)

	boom := errors.New("boom")
	_, err = Run(context.Background(), stubStylizer{err: boom}, in)
	assert.True(t, errors.Is(err, boom))
}
