package textgrid

import (
	"net/http"

	"github.com/ryanlewis/textgrid/internal/validate"
)

// Error payload types.
const (
	ErrorTypeValidation = "validation"
	ErrorTypeServer     = "server"
)

// serverErrorMessage is the only detail a caller sees for internal failures.
const serverErrorMessage = "internal error while generating text grid"

// Dimensions is the pixel size of the rendered silhouette.
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// ErrorPayload describes a failed generation. Validation failures carry the
// issue list; server failures carry a generic message only.
type ErrorPayload struct {
	Type    string            `json:"type" yaml:"type"`
	Errors  []ValidationIssue `json:"errors,omitempty" yaml:"errors,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// Response is the result of Generate.
type Response struct {
	Success    bool          `json:"success" yaml:"success"`
	LayoutDoc  *LayoutDoc    `json:"layoutDoc,omitempty" yaml:"layoutDoc,omitempty"`
	SVG        string        `json:"svg,omitempty" yaml:"svg,omitempty"`
	Dimensions *Dimensions   `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Error      *ErrorPayload `json:"error,omitempty" yaml:"error,omitempty"`
}

// StatusCode maps the response to an HTTP status: 200 on success, 400 for
// validation failures and 500 for server failures.
func (r *Response) StatusCode() int {
	switch {
	case r.Success:
		return http.StatusOK
	case r.Error != nil && r.Error.Type == ErrorTypeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func validationResponse(issues []ValidationIssue) *Response {
	return &Response{Error: &ErrorPayload{Type: ErrorTypeValidation, Errors: issues}}
}

func malformedResponse(err error) *Response {
	return validationResponse([]ValidationIssue{{Code: validate.CodeMalformedRequest, Message: err.Error()}})
}

func serverResponse() *Response {
	return &Response{Error: &ErrorPayload{Type: ErrorTypeServer, Message: serverErrorMessage}}
}
