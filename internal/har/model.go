package har

// HAR 1.2 envelope types, limited to the fields the converter consumes.

// Archive is the top-level HAR structure.
type Archive struct {
	Log Log `json:"log"`
}

// Log holds the capture metadata and the ordered entry list.
type Log struct {
	Version string   `json:"version"`
	Creator *Creator `json:"creator,omitempty"`
	Entries []Entry  `json:"entries"`
}

// Creator identifies the tool that produced the capture.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Entry is a single recorded request/response exchange.
type Entry struct {
	StartedDateTime string   `json:"startedDateTime,omitempty"`
	Time            float64  `json:"time,omitempty"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
	// ResourceType is the browser's classification of the fetch
	// (xhr, fetch, script, stylesheet, image, ...). Chrome exports
	// it as the non-standard "_resourceType" field.
	ResourceType string `json:"_resourceType,omitempty"`
}

// Request is the recorded HTTP request.
type Request struct {
	Method      string      `json:"method"`
	URL         string      `json:"url"`
	HTTPVersion string      `json:"httpVersion,omitempty"`
	Headers     []NameValue `json:"headers,omitempty"`
	QueryString []NameValue `json:"queryString,omitempty"`
	PostData    *PostData   `json:"postData,omitempty"`
}

// Response is the recorded HTTP response.
type Response struct {
	Status      int         `json:"status"`
	StatusText  string      `json:"statusText,omitempty"`
	HTTPVersion string      `json:"httpVersion,omitempty"`
	Headers     []NameValue `json:"headers,omitempty"`
	Content     Content     `json:"content"`
}

// PostData is the recorded request body. Params carries the decoded
// fields for form-encoded bodies; Text is the raw payload.
type PostData struct {
	MimeType string      `json:"mimeType"`
	Text     string      `json:"text,omitempty"`
	Params   []NameValue `json:"params,omitempty"`
}

// Content is the recorded response body.
type Content struct {
	Size     int    `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// NameValue is one header, query, or form field pair. Duplicates are
// permitted and order is preserved, matching the HAR format.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
