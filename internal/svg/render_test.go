package svg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/textgrid/internal/fonts"
	"github.com/ryanlewis/textgrid/internal/layout"
)

func buildDoc(t testing.TB, text string, cols, rows int, align layout.Align) *layout.Doc {
	t.Helper()
	grid := layout.GridSpec{CellW: 64, CellH: 64, Cols: cols, Rows: rows, MaxLines: rows, LineGap: 8, Align: align}
	doc, err := layout.Build(text, grid, layout.WrapConfig{Mode: layout.WrapWord, Overflow: layout.OverflowEllipsis}, nil)
	require.NoError(t, err)
	return doc
}

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func fillSilhouette() Silhouette { return Silhouette{Mode: ModeFill, PadPx: 4, FillColor: "#112233"} }

func TestRender(t *testing.T) {
	doc := buildDoc(t, "HI YOU", 3, 2, layout.AlignCenter)

	res, err := Render(doc, fonts.Default(), fillSilhouette(), nil)
	require.NoError(t, err)

	assert.Equal(t, 192, res.Width)
	assert.Equal(t, 2*64+8, res.Height)
	assert.True(t, strings.HasPrefix(res.SVG, `<svg xmlns="http://www.w3.org/2000/svg" width="192" height="136" viewBox="0 0 192 136">`))
	assert.True(t, strings.HasSuffix(res.SVG, "</svg>\n"))
	assert.Equal(t, 5, strings.Count(res.SVG, "<g "))
	assert.Contains(t, res.SVG, `<g id="cell-cell_0_0">`)
	assert.Contains(t, res.SVG, `font-family="&#39;Inter&#39;, sans-serif"`)
	assert.Contains(t, res.SVG, `font-size="48" font-weight="700" font-style="normal"`)
	assert.Contains(t, res.SVG, `fill="#112233"`)
	assert.NotContains(t, res.SVG, "stroke")
}

func TestRenderSkipsInvisibleCells(t *testing.T) {
	doc := buildDoc(t, "A B", 3, 1, layout.AlignLeft)
	res, err := Render(doc, fonts.Default(), fillSilhouette(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(res.SVG, "<g "))
	assert.NotContains(t, res.SVG, "cell_0_1")
}

func TestRenderEscapes(t *testing.T) {
	doc := buildDoc(t, `<&">`, 4, 1, layout.AlignLeft)
	sil := fillSilhouette()
	sil.FillColor = `red" onload="x`

	res, err := Render(doc, fonts.Default(), sil, nil)
	require.NoError(t, err)

	assert.Contains(t, res.SVG, ">&lt;</text>")
	assert.Contains(t, res.SVG, ">&amp;</text>")
	assert.Contains(t, res.SVG, ">&#34;</text>")
	assert.Contains(t, res.SVG, ">&gt;</text>")
	assert.NotContains(t, res.SVG, `onload="`)
}

func TestRenderAnchors(t *testing.T) {
	tests := []struct {
		align  layout.Align
		anchor string
		x      string
	}{
		{layout.AlignLeft, "start", `x="4"`},
		{layout.AlignCenter, "middle", `x="96"`},
		{layout.AlignRight, "end", `x="188"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.align), func(t *testing.T) {
			doc := buildDoc(t, "A", 3, 1, tt.align)
			res, err := Render(doc, fonts.Default(), fillSilhouette(), nil)
			require.NoError(t, err)
			assert.Contains(t, res.SVG, `text-anchor="`+tt.anchor+`"`)
			assert.Contains(t, res.SVG, tt.x)
			assert.Contains(t, res.SVG, `y="32"`)
		})
	}
}

func TestRenderModes(t *testing.T) {
	doc := buildDoc(t, "A", 1, 1, layout.AlignLeft)

	t.Run("stroke", func(t *testing.T) {
		sil := Silhouette{Mode: ModeStroke, FillColor: "#000000", StrokeColor: strPtr("#ff0000"), StrokePx: intPtr(3)}
		res, err := Render(doc, fonts.Default(), sil, nil)
		require.NoError(t, err)
		assert.Contains(t, res.SVG, `fill="none" stroke="#ff0000" stroke-width="3"`)
		assert.NotContains(t, res.SVG, "paint-order")
	})

	t.Run("outline defaults", func(t *testing.T) {
		sil := Silhouette{Mode: ModeOutline, FillColor: "#00ff00"}
		res, err := Render(doc, fonts.Default(), sil, nil)
		require.NoError(t, err)
		assert.Contains(t, res.SVG, `fill="#00ff00" stroke="#00ff00" stroke-width="2"`)
		assert.Contains(t, res.SVG, `paint-order="stroke"`)
	})

	t.Run("empty mode is fill", func(t *testing.T) {
		res, err := Render(doc, fonts.Default(), Silhouette{}, nil)
		require.NoError(t, err)
		assert.Contains(t, res.SVG, `fill="#000000"`)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Render(doc, fonts.Default(), Silhouette{Mode: "glow"}, nil)
		assert.True(t, errors.Is(err, ErrInvalidMode))
	})
}

func TestRenderCornerRoundIsInert(t *testing.T) {
	doc := buildDoc(t, "AB", 2, 1, layout.AlignLeft)
	plain, err := Render(doc, fonts.Default(), fillSilhouette(), nil)
	require.NoError(t, err)

	sil := fillSilhouette()
	sil.CornerRoundPx = intPtr(12)
	rounded, err := Render(doc, fonts.Default(), sil, nil)
	require.NoError(t, err)
	assert.Equal(t, plain.SVG, rounded.SVG)
}

func TestRenderFontFamily(t *testing.T) {
	doc := buildDoc(t, "A", 1, 1, layout.AlignLeft)
	font := fonts.Spec{Family: "press start 2p", Weight: 400, Style: "normal", Size: 32}
	res, err := Render(doc, font, fillSilhouette(), nil)
	require.NoError(t, err)
	assert.Contains(t, res.SVG, `font-family="&#39;Press Start 2P&#39;, monospace"`)
	assert.Contains(t, res.SVG, `font-size="32"`)
}

func TestRenderDeterministic(t *testing.T) {
	doc := buildDoc(t, "Same input, same bytes", 8, 4, layout.AlignRight)
	a, err := Render(doc, fonts.Default(), fillSilhouette(), nil)
	require.NoError(t, err)
	b, err := Render(doc, fonts.Default(), fillSilhouette(), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderNilDoc(t *testing.T) {
	_, err := Render(nil, fonts.Default(), fillSilhouette(), nil)
	assert.True(t, errors.Is(err, ErrNilDoc))
}

func TestClampPad(t *testing.T) {
	assert.Equal(t, 0, clampPad(-3, 10, 10))
	assert.Equal(t, 4, clampPad(4, 10, 10))
	assert.Equal(t, 5, clampPad(32, 10, 12))
}

func BenchmarkRender(b *testing.B) {
	doc := buildDoc(b, strings.Repeat("GAME OVER ", 6), 12, 6, layout.AlignCenter)
	font := fonts.Default()
	sil := fillSilhouette()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Render(doc, font, sil, nil); err != nil {
			b.Fatal(err)
		}
	}
}
