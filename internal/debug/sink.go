package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case LayoutStartData:
		s.writeLayoutStart(d)
	case ParagraphData:
		fmt.Fprintf(s.w, "  paragraph: %d, graphemes: %d, tokens: %d\n", d.Index, d.Graphemes, d.Tokens)
	case WrapData:
		s.writeWrap(d)
	case OverflowData:
		s.writeOverflow(d)
	case PlaceData:
		fmt.Fprintf(s.w, "  line: %d, start_col: %d, cells: %d (visible %d)\n", d.Line, d.StartCol, d.Cells, d.Visible)
	case LayoutEndData:
		fmt.Fprintf(s.w, "  lines: %d, cells: %d (visible %d), elapsed_us: %d\n", d.Lines, d.Cells, d.Visible, d.ElapsedUs)
	case DigestData:
		fmt.Fprintf(s.w, "  %s: %s (%d bytes)\n", d.Name, d.Digest, d.Bytes)
	case RenderData:
		fmt.Fprintf(s.w, "  canvas: %dx%d, groups: %d, mode: %s, bytes: %d\n", d.Width, d.Height, d.Groups, d.Mode, d.Bytes)
	case ValidateData:
		s.writeValidate(d)
	case CacheData:
		fmt.Fprintf(s.w, "  key: %s, hit: %t\n", d.Key, d.Hit)
	case ErrorData:
		fmt.Fprintf(s.w, "  %s: %s\n", d.Type, d.Message)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeLayoutStart(d LayoutStartData) {
	fmt.Fprintf(s.w, "  text_length: %d, graphemes: %d\n", d.TextLength, d.Graphemes)
	fmt.Fprintf(s.w, "  grid: %dx%d, max_lines: %d, align: %s\n", d.Cols, d.Rows, d.MaxLines, d.Align)
	fmt.Fprintf(s.w, "  wrap: %s, overflow: %s\n", d.WrapMode, d.Overflow)
}

func (s *PrettySink) writeWrap(d WrapData) {
	fmt.Fprintf(s.w, "  paragraph: %d, line: %d, reason: %s\n", d.Paragraph, d.Line, d.Reason)
	fmt.Fprintf(s.w, "  text: %q (length: %d)\n", d.Text, d.Length)
}

func (s *PrettySink) writeOverflow(d OverflowData) {
	fmt.Fprintf(s.w, "  policy: %s, lines: %d → %d, dropped: %d\n", d.Policy, d.Lines, d.MaxLines, d.Dropped)
	if d.Overwritten {
		fmt.Fprintf(s.w, "  overwritten: true\n")
	}
}

func (s *PrettySink) writeValidate(d ValidateData) {
	fmt.Fprintf(s.w, "  validator: %s, valid: %t\n", d.Validator, d.Valid)
	if len(d.Codes) > 0 {
		fmt.Fprintf(s.w, "  codes: %s\n", strings.Join(d.Codes, ", "))
	}
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for _, k := range sortedKeys(d) {
		fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.w, "  %s: %d\n", k, d[k])
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
