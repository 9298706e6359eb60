package textgrid

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/textgrid/internal/spec"
)

// ErrMalformedRequest is returned when a request body cannot be decoded.
var ErrMalformedRequest = errors.New("malformed request")

// RequestType is the required value of a request's type field.
const RequestType = spec.RequestType

// Format is a request or response encoding.
type Format string

// Supported formats.
const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. The empty string selects FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatAuto, FormatJSON, FormatYAML:
		return Format(s), nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// DecodeRequest decodes a request body and fills omitted optional fields
// with their defaults. Unknown fields, trailing data and a type other than
// "text_grid" are rejected with ErrMalformedRequest. FormatAuto treats a body
// starting with '{' as JSON and anything else as YAML.
func DecodeRequest(data []byte, format Format) (*TextGridSpec, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedRequest)
	}
	if format == FormatAuto {
		format = FormatYAML
		if trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	var req TextGridSpec
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("%w: trailing data after request", ErrMalformedRequest)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		var extra interface{}
		if err := dec.Decode(&extra); err != io.EOF {
			return nil, fmt.Errorf("%w: more than one document", ErrMalformedRequest)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrMalformedRequest, format)
	}

	if req.Type != RequestType {
		return nil, fmt.Errorf("%w: type must be %q, got %q", ErrMalformedRequest, RequestType, req.Type)
	}
	spec.ApplyDefaults(&req)
	return &req, nil
}
