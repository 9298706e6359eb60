package golden

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/spec"
)

func TestWriteThenParse(t *testing.T) {
	in := &File{
		Metadata: Metadata{
			Name: "hello",
			Request: spec.TextGridSpec{
				Type: spec.RequestType,
				ID:   "hello",
				Text: "HELLO",
				Grid: layout.GridSpec{CellW: 64, CellH: 64, Cols: 5, Rows: 1, MaxLines: 1, Align: layout.AlignCenter},
			},
			Hashes:    layout.Hashes{Text: "a", Inputs: "b", Layout: "c"},
			Width:     320,
			Height:    64,
			SVGSHA256: Checksum("<svg/>\n"),
			Generator: "test",
		},
		SVG: "<svg/>\n",
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), "---\n"))
	assert.Contains(t, buf.String(), "```svg\n<svg/>\n```\n")

	out, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseWithoutSVG(t *testing.T) {
	f, err := Parse(strings.NewReader("---\nname: x\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "x", f.Name)
	assert.Empty(t, f.SVG)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no front matter", "hello\n"},
		{"unterminated front matter", "---\nname: x\n"},
		{"unknown key", "---\nbogus: 1\n---\n"},
		{"unterminated svg", "---\nname: x\n---\n```svg\n<svg/>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.data))
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
		})
	}
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(""))
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hello":            "hello",
		"two lines, right": "two_lines_right",
		"  Emoji 👍🏽 ":      "emoji",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
	assert.Len(t, Slug("!!!"), 12)
}
