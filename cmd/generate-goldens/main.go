// Command generate-goldens writes the golden fixtures used by the
// determinism tests. Run it from the repository root after an intentional
// change to layout, hashing or rendering output.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ryanlewis/textgrid"
	"github.com/ryanlewis/textgrid/internal/golden"
)

type sample struct {
	name string
	req  textgrid.TextGridSpec
}

func base(text string, cols, rows int, align textgrid.Align) textgrid.TextGridSpec {
	return textgrid.TextGridSpec{
		Type: textgrid.RequestType,
		Text: text,
		Grid: textgrid.GridSpec{CellW: 64, CellH: 64, Cols: cols, Rows: rows, MaxLines: rows, Align: align},
		Wrap: textgrid.WrapConfig{Mode: textgrid.WrapWord, Overflow: textgrid.OverflowTruncate},
		Font: textgrid.FontSpec{Family: "Inter", Weight: 700, Style: "normal", Size: 48},
		Silhouette: textgrid.SilhouetteSpec{
			Mode:      textgrid.SilhouetteFill,
			PadPx:     4,
			FillColor: "#000000",
		},
		Style:  textgrid.StyleSpec{Prompt: "golden fixture"},
		Output: textgrid.OutputSpec{SVG: true},
	}
}

func samples() []sample {
	stroke := 3
	strokeColor := "#ff8800"

	wrapped := base("GAME OVER", 5, 2, textgrid.AlignCenter)
	right := base("HI\nYOU", 4, 2, textgrid.AlignRight)
	chars := base("ABCDEFG", 3, 3, textgrid.AlignLeft)
	chars.Wrap.Mode = textgrid.WrapChar
	ellipsis := base("PRESS START TO PLAY", 5, 2, textgrid.AlignLeft)
	ellipsis.Wrap.Overflow = textgrid.OverflowEllipsis
	emoji := base("GG 👍🏽", 4, 1, textgrid.AlignCenter)
	outline := base("WIN", 3, 1, textgrid.AlignCenter)
	outline.Font = textgrid.FontSpec{Family: "Press Start 2P", Weight: 400, Style: "normal", Size: 32}
	outline.Silhouette = textgrid.SilhouetteSpec{Mode: textgrid.SilhouetteOutline, PadPx: 2, FillColor: "#ffffff", StrokeColor: &strokeColor, StrokePx: &stroke}
	strokeOnly := base("<&>", 3, 1, textgrid.AlignCenter)
	strokeOnly.Silhouette.Mode = textgrid.SilhouetteStroke
	gap := base("UP\nDOWN", 4, 2, textgrid.AlignLeft)
	gap.Grid.LineGap = 8

	return []sample{
		{"hello", base("HELLO", 5, 1, textgrid.AlignCenter)},
		{"word wrap center", wrapped},
		{"newline right", right},
		{"char wrap", chars},
		{"ellipsis", ellipsis},
		{"emoji cluster", emoji},
		{"outline pixel font", outline},
		{"stroke escaped", strokeOnly},
		{"line gap", gap},
	}
}

func main() {
	outDir := pflag.String("out", "testdata/goldens", "Output directory")
	only := pflag.String("only", "", "Comma-separated fixture names to regenerate")
	pflag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory %s: %v", *outDir, err)
	}

	filter := map[string]bool{}
	for _, n := range strings.Split(*only, ",") {
		if n = strings.TrimSpace(n); n != "" {
			filter[golden.Slug(n)] = true
		}
	}

	written := 0
	for _, s := range samples() {
		slug := golden.Slug(s.name)
		if len(filter) > 0 && !filter[slug] {
			continue
		}
		if err := generate(*outDir, slug, s); err != nil {
			log.Fatalf("Failed to generate %s: %v", slug, err)
		}
		written++
	}
	log.Printf("Wrote %d golden files to %s", written, *outDir)
}

func generate(dir, slug string, s sample) error {
	req := s.req
	req.ID = slug

	resp := textgrid.Generate(&req, textgrid.WithLayoutCache(nil))
	if !resp.Success {
		return fmt.Errorf("generation failed: %+v", resp.Error)
	}

	f := &golden.File{
		Metadata: golden.Metadata{
			Name:      s.name,
			Request:   req,
			Hashes:    resp.LayoutDoc.Hashes,
			Width:     resp.Dimensions.Width,
			Height:    resp.Dimensions.Height,
			SVGSHA256: golden.Checksum(resp.SVG),
			Generated: time.Now().UTC().Format("2006-01-02"),
			Generator: "generate-goldens",
		},
		SVG: resp.SVG,
	}

	var buf bytes.Buffer
	if err := golden.Write(&buf, f); err != nil {
		return err
	}
	path := filepath.Join(dir, slug+".md")
	log.Printf("Generating %s", path)
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
