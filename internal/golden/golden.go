// Package golden reads and writes golden fixture files.
//
// A golden file is markdown with YAML front matter holding the request and
// the expected hashes, followed by the expected SVG in a fenced code block:
//
//	---
//	name: hello
//	request: {...}
//	hashes: {...}
//	---
//
//	```svg
//	<svg ...>
//	```
package golden

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/spec"
)

// ErrFormat is returned for files that do not follow the golden layout.
var ErrFormat = errors.New("invalid golden file")

// Metadata is the YAML front matter of a golden file.
type Metadata struct {
	Name      string            `yaml:"name"`
	Request   spec.TextGridSpec `yaml:"request"`
	Hashes    layout.Hashes     `yaml:"hashes"`
	Width     int               `yaml:"width"`
	Height    int               `yaml:"height"`
	SVGSHA256 string            `yaml:"svg_sha256"`
	Generated string            `yaml:"generated"`
	Generator string            `yaml:"generator"`
}

// File is a parsed golden file.
type File struct {
	Metadata
	SVG string
}

// Checksum returns the hex SHA-256 of s.
func Checksum(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Parse reads a golden file.
func Parse(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var (
		front   []string
		body    []string
		state   int // 0 before front matter, 1 inside, 2 after, 3 inside svg block, 4 done
		sawOpen bool
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch state {
		case 0:
			if line == "---" {
				state = 1
			} else if strings.TrimSpace(line) != "" {
				return nil, fmt.Errorf("%w: missing front matter", ErrFormat)
			}
		case 1:
			if line == "---" {
				state = 2
				continue
			}
			front = append(front, line)
		case 2:
			if strings.HasPrefix(line, "```svg") {
				state = 3
				sawOpen = true
			}
		case 3:
			if strings.HasPrefix(line, "```") {
				state = 4
				continue
			}
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading golden file: %w", err)
	}
	if state < 2 {
		return nil, fmt.Errorf("%w: unterminated front matter", ErrFormat)
	}
	if sawOpen && state != 4 {
		return nil, fmt.Errorf("%w: unterminated svg block", ErrFormat)
	}

	f := &File{}
	dec := yaml.NewDecoder(strings.NewReader(strings.Join(front, "\n")))
	dec.KnownFields(true)
	if err := dec.Decode(&f.Metadata); err != nil {
		return nil, fmt.Errorf("%w: front matter: %v", ErrFormat, err)
	}
	if len(body) > 0 {
		f.SVG = strings.Join(body, "\n") + "\n"
	}
	return f, nil
}

// Write renders f as a golden file.
func Write(w io.Writer, f *File) error {
	front, err := yaml.Marshal(&f.Metadata)
	if err != nil {
		return fmt.Errorf("marshal front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(front)
	buf.WriteString("---\n\n")
	buf.WriteString("```svg\n")
	buf.WriteString(f.SVG)
	if !strings.HasSuffix(f.SVG, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString("```\n")

	_, err = w.Write(buf.Bytes())
	return err
}

// Slug turns a fixture name into a file name stem.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteByte('_')
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return Checksum(name)[:12]
	}
	return slug
}
