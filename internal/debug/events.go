package debug

// LayoutStartData describes the inputs of a layout build.
type LayoutStartData struct {
	TextLength int    `json:"text_length"`
	Graphemes  int    `json:"graphemes"`
	Cols       int    `json:"cols"`
	Rows       int    `json:"rows"`
	MaxLines   int    `json:"max_lines"`
	Align      string `json:"align"`
	WrapMode   string `json:"wrap_mode"`
	Overflow   string `json:"overflow"`
}

// ParagraphData describes one hard-newline paragraph before wrapping.
type ParagraphData struct {
	Index     int `json:"index"`
	Graphemes int `json:"graphemes"`
	Tokens    int `json:"tokens"`
}

// WrapData describes one visual line produced by the wrapper.
type WrapData struct {
	Paragraph int    `json:"paragraph"`
	Line      int    `json:"line"`
	Reason    string `json:"reason"` // "width", "whitespace", "hardsplit", "end"
	Length    int    `json:"length"`
	Text      string `json:"text"`
}

// OverflowData describes the overflow policy decision.
type OverflowData struct {
	Policy      string `json:"policy"`
	Lines       int    `json:"lines"`
	MaxLines    int    `json:"max_lines"`
	Dropped     int    `json:"dropped"`
	Overwritten bool   `json:"overwritten,omitempty"`
}

// PlaceData describes the placement of one line into the grid.
type PlaceData struct {
	Line     int `json:"line"`
	StartCol int `json:"start_col"`
	Cells    int `json:"cells"`
	Visible  int `json:"visible"`
}

// LayoutEndData summarises a finished layout.
type LayoutEndData struct {
	Lines     int   `json:"lines"`
	Cells     int   `json:"cells"`
	Visible   int   `json:"visible"`
	ElapsedUs int64 `json:"elapsed_us"`
}

// DigestData records a computed content hash.
type DigestData struct {
	Name   string `json:"name"`
	Bytes  int    `json:"bytes"`
	Digest string `json:"digest"`
}

// RenderData describes a rendered SVG silhouette.
type RenderData struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Groups int    `json:"groups"`
	Mode   string `json:"mode"`
	Bytes  int    `json:"bytes"`
}

// ValidateData summarises a validator run.
type ValidateData struct {
	Validator string   `json:"validator"`
	Valid     bool     `json:"valid"`
	Codes     []string `json:"codes,omitempty"`
}

// CacheData records a layout cache lookup.
type CacheData struct {
	Key string `json:"key"`
	Hit bool   `json:"hit"`
}

// ErrorData contains error information.
type ErrorData struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
