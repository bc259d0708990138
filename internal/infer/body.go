package infer

import (
	"encoding/json"
	"strings"

	"github.com/apitrace/har2openapi/internal/har"
)

const jsonMediaType = "application/json"

// Body is a best-effort structured view of one observed payload. Value
// holds the parsed JSON document, a reconstructed form object, or the
// raw text, depending on what the payload allowed.
type Body struct {
	MediaType string
	Value     any
	Status    int // responses only
}

// Structured reports whether the payload parsed as a full JSON document.
func (b *Body) Structured() bool {
	return b != nil && b.MediaType == jsonMediaType
}

// InterpretRequest extracts an example value and media type from a
// recorded request payload. Strategy: full-document JSON parse first;
// then form-field reconstruction when the declared media type is
// form-encoded; otherwise the raw text under the declared media type
// (JSON as a last-resort default when none was declared).
func InterpretRequest(pd *har.PostData) *Body {
	if pd == nil {
		return nil
	}
	if v, ok := parseJSON(pd.Text); ok {
		return &Body{MediaType: jsonMediaType, Value: v}
	}
	if strings.Contains(pd.MimeType, "form-urlencoded") || strings.Contains(pd.MimeType, "form-data") {
		if len(pd.Params) > 0 {
			obj := make(map[string]any, len(pd.Params))
			for _, p := range pd.Params {
				if _, ok := obj[p.Name]; ok {
					continue
				}
				obj[p.Name] = p.Value
			}
			return &Body{MediaType: baseMediaType(pd.MimeType), Value: obj}
		}
	}
	if pd.Text == "" {
		return nil
	}
	mt := baseMediaType(pd.MimeType)
	if mt == "" {
		mt = jsonMediaType
	}
	return &Body{MediaType: mt, Value: pd.Text}
}

// InterpretResponse extracts an example value from a recorded response
// payload. An empty body yields nil so the endpoint falls back to a bare
// success description.
func InterpretResponse(status int, c har.Content) *Body {
	if v, ok := parseJSON(c.Text); ok {
		return &Body{MediaType: jsonMediaType, Value: v, Status: status}
	}
	if c.Text == "" || c.MimeType == "" {
		return nil
	}
	return &Body{MediaType: baseMediaType(c.MimeType), Value: c.Text, Status: status}
}

// parseJSON attempts a full-document parse of text. Scalars and arrays
// count: the payload only has to be one complete JSON value.
func parseJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, false
	}
	return v, true
}

// baseMediaType strips parameters like "; charset=utf-8".
func baseMediaType(mt string) string {
	base, _, _ := strings.Cut(mt, ";")
	return strings.TrimSpace(base)
}
