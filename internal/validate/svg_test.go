package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/textgrid/internal/fonts"
	"github.com/ryanlewis/textgrid/internal/svg"
)

const minimalSVG = `<svg width="10" height="10" xmlns="http://www.w3.org/2000/svg"></svg>`

func wrapSVG(inner string) string {
	return `<svg width="10" height="10" xmlns="http://www.w3.org/2000/svg">` + inner + `</svg>`
}

func TestSVGAccepts(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"minimal", minimalSVG},
		{"self closing root", `<svg width="10" height="10" xmlns="http://www.w3.org/2000/svg"/>`},
		{"xml declaration", `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + minimalSVG + "\n"},
		{"comment", wrapSVG(`<!-- guide --><g id="a"><rect width="1" height="1"/></g>`)},
		{"text content", wrapSVG(`<text x="1" y="2">&lt;hi&gt;</text>`)},
		{"unique ids", wrapSVG(`<g id="a"/><g id="b"/>`)},
		{"single quotes", `<svg width='10' height='10' xmlns='http://www.w3.org/2000/svg'></svg>`},
		{"cdata", wrapSVG(`<style><![CDATA[text { fill: red; }]]></style>`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SVG(tt.in)
			assert.True(t, res.Valid, "%v", res.Errors)
		})
	}
}

func TestSVGRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code string
	}{
		{"script", wrapSVG(`<script>alert(1)</script>`), CodeSVGForbiddenElement},
		{"prefixed script", wrapSVG(`<svg:script xmlns:svg="http://www.w3.org/2000/svg">x</svg:script>`), CodeSVGForbiddenElement},
		{"foreignObject", wrapSVG(`<foreignObject><div/></foreignObject>`), CodeSVGForbiddenElement},
		{"iframe", wrapSVG(`<iframe/>`), CodeSVGForbiddenElement},
		{"object", wrapSVG(`<object/>`), CodeSVGForbiddenElement},
		{"embed", wrapSVG(`<EMBED/>`), CodeSVGForbiddenElement},
		{"onload", `<svg width="10" height="10" xmlns="http://www.w3.org/2000/svg" onload="alert(1)"></svg>`, CodeSVGEventHandler},
		{"onclick uppercase", wrapSVG(`<g OnClick="x()"/>`), CodeSVGEventHandler},
		{"javascript href", wrapSVG(`<a href="javascript:alert(1)"><text>x</text></a>`), CodeSVGJavaScriptURL},
		{"href", wrapSVG(`<image href="https://example.com/a.png"/>`), CodeSVGHref},
		{"xlink href", wrapSVG(`<use xlink:href="#a"/>`), CodeSVGHref},
		{"encoded javascript", wrapSVG(`<g style="background:url(&#106;ava&#x09;script:alert(1))"/>`), CodeSVGJavaScriptURL},
		{"spaced javascript", wrapSVG(`<g filter=" JaVa Script:x"/>`), CodeSVGJavaScriptURL},
		{"javascript in stylesheet", wrapSVG(`<style>g { background: url(javascript:x) }</style>`), CodeSVGJavaScriptURL},
		{"doctype", `<!DOCTYPE svg>` + minimalSVG, CodeSVGDoctype},
		{"missing width", `<svg height="10" xmlns="http://www.w3.org/2000/svg"></svg>`, CodeSVGMissingAttribute},
		{"missing xmlns", `<svg width="10" height="10"></svg>`, CodeSVGMissingAttribute},
		{"wrong namespace", `<svg width="10" height="10" xmlns="http://example.com/svg"></svg>`, CodeSVGNamespaceInvalid},
		{"duplicate ids", wrapSVG(`<g id="a"/><g id="a"/>`), CodeSVGDuplicateID},
		{"two roots", minimalSVG + minimalSVG, CodeSVGRootInvalid},
		{"wrong root", `<html width="1" height="1" xmlns="http://www.w3.org/2000/svg"></html>`, CodeSVGRootInvalid},
		{"no root", `<!-- nothing -->`, CodeSVGRootInvalid},
		{"stylesheet pi", `<?xml-stylesheet href="x.css"?>` + minimalSVG, CodeSVGForbiddenElement},
		{"empty", "", CodeSVGMalformed},
		{"unclosed root", `<svg width="10" height="10" xmlns="http://www.w3.org/2000/svg">`, CodeSVGMalformed},
		{"mismatched tags", wrapSVG(`<g><text></g></text>`), CodeSVGMalformed},
		{"stray close", minimalSVG + `</g>`, CodeSVGMalformed},
		{"text outside root", `hello` + minimalSVG, CodeSVGMalformed},
		{"unterminated tag", `<svg width="10" height="10"`, CodeSVGMalformed},
		{"unterminated attribute", `<svg xmlns="http://www.w3.org/2000/svg" width="10`, CodeSVGMalformed},
		{"unterminated comment", wrapSVG(`<!-- open`), CodeSVGMalformed},
		{"null byte", wrapSVG("<g>\x00</g>"), CodeSVGMalformed},
		{"too large", wrapSVG(strings.Repeat(" ", MaxSVGBytes)), CodeSVGTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SVG(tt.in)
			assert.False(t, res.Valid)
			assert.True(t, res.Has(tt.code), "want %s, got %v", tt.code, res.Errors)
		})
	}
}

func TestSVGAcceptsRendererOutput(t *testing.T) {
	doc := buildDoc(t)
	for _, mode := range []svg.Mode{svg.ModeFill, svg.ModeStroke, svg.ModeOutline} {
		t.Run(string(mode), func(t *testing.T) {
			res, err := svg.Render(doc, fonts.Default(), svg.Silhouette{Mode: mode, PadPx: 4, FillColor: "#000"}, nil)
			require.NoError(t, err)
			v := SVG(res.SVG)
			assert.True(t, v.Valid, "%v", v.Errors)
		})
	}
}

func BenchmarkSVG(b *testing.B) {
	doc := wrapSVG(`<g id="x"><text x="1" y="2" fill="#000">A</text></g>`)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = SVG(doc)
	}
}
