package layout

import (
	"fmt"
	"unicode/utf8"

	"github.com/ryanlewis/textgrid/internal/common"
	"github.com/ryanlewis/textgrid/internal/debug"
	"github.com/ryanlewis/textgrid/internal/hash"
)

// inputTuple is the canonical input hashed into Hashes.Inputs.
type inputTuple struct {
	Version int        `json:"version"`
	Text    string     `json:"text"`
	Grid    GridSpec   `json:"grid"`
	Wrap    WrapConfig `json:"wrap"`
}

// resultTuple is the canonical layout hashed into Hashes.Layout.
type resultTuple struct {
	Cells []Cell `json:"cells"`
	Lines []Line `json:"lines"`
}

// InputsHash returns the digest of the layout inputs without building the
// layout. It matches Doc.Hashes.Inputs for a successful Build. Text that is
// not valid UTF-8 is rejected, since canonical JSON would fold it into U+FFFD
// and collide with a different text.
func InputsHash(text string, grid GridSpec, wrap WrapConfig) (string, error) {
	if !utf8.ValidString(text) {
		return "", &ConfigError{Field: "text", Reason: "text is not valid UTF-8"}
	}
	return hash.DigestValue(inputTuple{Version: common.LayoutVersion, Text: text, Grid: grid, Wrap: wrap})
}

func computeHashes(doc *Doc) (Hashes, []debug.DigestData, error) {
	inputs, err := hash.Canonicalize(inputTuple{Version: doc.Version, Text: doc.Text, Grid: doc.Grid, Wrap: doc.Wrap})
	if err != nil {
		return Hashes{}, nil, err
	}
	result, err := hash.Canonicalize(resultTuple{Cells: nonNilCells(doc.Cells), Lines: nonNilLines(doc.Lines)})
	if err != nil {
		return Hashes{}, nil, err
	}

	h := Hashes{
		Text:   hash.Digest(doc.Text),
		Inputs: hash.Digest(inputs),
		Layout: hash.Digest(result),
	}
	trace := []debug.DigestData{
		{Name: "text", Bytes: len(doc.Text), Digest: h.Text},
		{Name: "inputs", Bytes: len(inputs), Digest: h.Inputs},
		{Name: "layout", Bytes: len(result), Digest: h.Layout},
	}
	return h, trace, nil
}

func attachHashes(doc *Doc, sess *debug.Session) error {
	h, trace, err := computeHashes(doc)
	if err != nil {
		return fmt.Errorf("hash layout: %w", err)
	}
	doc.Hashes = h
	for _, d := range trace {
		sess.Emit("hash", "Digest", d)
	}
	return nil
}

// VerifyHashes recomputes the document's hashes and reports ErrIntegrity if
// any differ from the attached ones.
func (d *Doc) VerifyHashes() error {
	h, _, err := computeHashes(d)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	switch {
	case h.Text != d.Hashes.Text:
		return fmt.Errorf("%w: text hash mismatch", ErrIntegrity)
	case h.Inputs != d.Hashes.Inputs:
		return fmt.Errorf("%w: inputs hash mismatch", ErrIntegrity)
	case h.Layout != d.Hashes.Layout:
		return fmt.Errorf("%w: layout hash mismatch", ErrIntegrity)
	}
	return nil
}

func nonNilCells(c []Cell) []Cell {
	if c == nil {
		return []Cell{}
	}
	return c
}

func nonNilLines(l []Line) []Line {
	if l == nil {
		return []Line{}
	}
	return l
}
