package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/textgrid"
	"github.com/ryanlewis/textgrid/internal/debug"
)

const requestYAML = `type: text_grid
id: banner
text: HELLO
grid: {cellW: 64, cellH: 64, cols: 5, rows: 1, maxLines: 1, align: center}
wrap: {mode: word, overflow: truncate}
style: {prompt: chrome}
output: {svg: true}
`

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunQuickMode(t *testing.T) {
	code, out, errOut := runCLI(t, "", "--cols", "5", "HELLO")
	require.Equal(t, 0, code, errOut)

	var resp textgrid.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 5, resp.LayoutDoc.VisibleCells())
	assert.Equal(t, 320, resp.Dimensions.Width)
}

func TestRunRequestFromStdin(t *testing.T) {
	code, out, errOut := runCLI(t, requestYAML, "--in", "-", "--format", "yaml")
	require.Equal(t, 0, code, errOut)

	var resp map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, true, resp["success"])
}

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "req.yaml")
	require.NoError(t, os.WriteFile(in, []byte(requestYAML), 0o644))
	out := filepath.Join(dir, "resp.json")
	svgOut := filepath.Join(dir, "out.svg")
	metaOut := filepath.Join(dir, "meta.json")

	code, _, errOut := runCLI(t, "", "--in", in, "--out", out, "--svg-out", svgOut, "--metadata-out", metaOut, "--scale", "2")
	require.Equal(t, 0, code, errOut)

	svgData, err := os.ReadFile(svgOut)
	require.NoError(t, err)
	assert.True(t, textgrid.ValidateSVG(string(svgData)).Valid)

	metaData, err := os.ReadFile(metaOut)
	require.NoError(t, err)
	var meta textgrid.AtlasMetadata
	require.NoError(t, json.Unmarshal(metaData, &meta))
	assert.Equal(t, 640, meta.Width)
	assert.Equal(t, 128, meta.Height)
	assert.Len(t, meta.Cells, 5)

	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestRunValidationFailure(t *testing.T) {
	code, out, _ := runCLI(t, "", "--cols", "40", "HELLO")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "GRID_TOO_LARGE")
	assert.Contains(t, out, `"type": "validation"`)
}

func TestRunMalformedRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong type", `{"type":"nope"}`},
		{"broken json", `{"type":`},
		{"empty body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, tt.body, "--in", "-")
			assert.Equal(t, 1, code)

			var resp textgrid.Response
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, textgrid.ErrorTypeValidation, resp.Error.Type)
			require.Len(t, resp.Error.Errors, 1)
			assert.Equal(t, "MALFORMED_REQUEST", resp.Error.Errors[0].Code)
		})
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no text", nil, 1},
		{"bad format", []string{"--format", "xml", "HI"}, 2},
		{"unknown flag", []string{"--nope"}, 2},
		{"in with text", []string{"--in", "-", "HI"}, 1},
		{"bad scale", []string{"--metadata-out", "/dev/null", "--scale", "9", "HI"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, "", tt.args...)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRunInfoFlags(t *testing.T) {
	code, out, _ := runCLI(t, "", "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "textgrid version dev")

	code, out, _ = runCLI(t, "", "--list-fonts")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Inter")
	assert.Contains(t, out, "Press Start 2P")

	code, out, _ = runCLI(t, "", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "--svg-out")
	assert.Contains(t, out, "TEXTGRID_DEBUG")
}

func TestRunDebugFile(t *testing.T) {
	defer debug.SetEnabled(false)
	path := filepath.Join(t.TempDir(), "trace.jsonl")

	code, _, errOut := runCLI(t, "", "--debug-file", path, "--cols", "5", "HELLO")
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"phase":"svg"`)
	assert.Contains(t, string(data), `"validator":"svg"`)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, textgrid.FormatJSON, formatFromPath("a.json"))
	assert.Equal(t, textgrid.FormatYAML, formatFromPath("a.yml"))
	assert.Equal(t, textgrid.FormatYAML, formatFromPath("a.yaml"))
	assert.Equal(t, textgrid.FormatAuto, formatFromPath("-"))
}
