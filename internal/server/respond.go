package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

// Response shapes. Domain types stay wire-agnostic; the API boundary maps
// them to stable lowercase JSON.

type sessionView struct {
	ID          string    `json:"id"`
	Key         string    `json:"key,omitempty"`
	Mode        string    `json:"mode"`
	Selection   string    `json:"selection,omitempty"`
	SnapEnabled bool      `json:"snapEnabled"`
	Canvas      geom.Size `json:"canvas"`
	GridSize    int       `json:"gridSize"`
	CreatedAt   time.Time `json:"createdAt"`
}

type regionView struct {
	Name string    `json:"name"`
	Rect geom.Rect `json:"rect"`
}

type collisionView struct {
	A string `json:"a"`
	B string `json:"b"`
}

type changeView struct {
	Name    string    `json:"name"`
	From    geom.Rect `json:"from"`
	To      geom.Rect `json:"to"`
	Added   bool      `json:"added,omitempty"`
	Removed bool      `json:"removed,omitempty"`
}

type spanView struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type dividerView struct {
	Axis     string   `json:"axis"`
	Position int      `json:"position"`
	Span     spanView `json:"span"`
	Near     []string `json:"near"`
	Far      []string `json:"far"`
}

type fieldView struct {
	Region  string `json:"region,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorView struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Fields  []fieldView `json:"fields,omitempty"`
}

type errorBody struct {
	Error errorView `json:"error"`
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a small JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse request body")
	}
	return nil
}

// writeError maps an error to an HTTP status and a structured body.
// Validation failures carry their field-level list so clients can
// highlight the offending inputs.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{}
	body.Error.Code = string(errors.GetCode(err))
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)

	var verrs layout.ValidationErrors
	if stderrors.As(err, &verrs) {
		for _, fe := range verrs {
			body.Error.Fields = append(body.Error.Fields, fieldView{
				Region:  fe.Region,
				Field:   fe.Field,
				Message: fe.Message,
			})
		}
	}

	writeJSON(w, statusFor(err, len(body.Error.Fields) > 0), body)
}

// statusFor picks the HTTP status for an error.
func statusFor(err error, hasFields bool) int {
	switch {
	case hasFields:
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeRegionNotFound),
		errors.Is(err, errors.ErrCodeDocumentNotFound),
		errors.Is(err, errors.ErrCodeFileNotFound),
		errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidRect),
		errors.Is(err, errors.ErrCodeInvalidDocument),
		errors.Is(err, errors.ErrCodeInvalidSegment),
		errors.Is(err, errors.ErrCodeInvalidKey),
		errors.Is(err, errors.ErrCodeInvalidFormat),
		errors.Is(err, errors.ErrCodeInvalidPath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
