package har

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError    ErrorCode = "InputError"
	ParseError    ErrorCode = "ParseError"
	EnvelopeError ErrorCode = "EnvelopeError"
)

// ArchiveError is a structured error with the offending location attached.
type ArchiveError struct {
	Code     ErrorCode
	Message  string
	Location string
	Cause    error
}

func (e *ArchiveError) Error() string { return e.Message }
func (e *ArchiveError) Unwrap() error { return e.Cause }

// Load reads a HAR 1.2 capture from disk and checks its outer envelope.
// All failures here are fatal to a conversion run: an unreadable file,
// text that is not valid JSON, or a document without a log.entries list.
func Load(path string) (*Archive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ArchiveError{Code: InputError, Message: "har: input path is empty"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ArchiveError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: path, Cause: err}
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, &ArchiveError{Code: InputError, Message: fmt.Sprintf("read file %s: %v", abs, err), Location: abs, Cause: err}
	}

	return Parse(raw, abs)
}

// Parse decodes raw HAR bytes. location is used only for error messages.
func Parse(raw []byte, location string) (*Archive, error) {
	// Probe the envelope before the full decode so a capture missing the
	// entry list is reported as such rather than as a zero-value archive.
	var probe struct {
		Log *struct {
			Entries *json.RawMessage `json:"entries"`
		} `json:"log"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &ArchiveError{Code: ParseError, Message: fmt.Sprintf("parse har: %v", err), Location: location, Cause: err}
	}
	if probe.Log == nil {
		return nil, &ArchiveError{Code: EnvelopeError, Message: "har: missing top-level log object", Location: location}
	}
	if probe.Log.Entries == nil {
		return nil, &ArchiveError{Code: EnvelopeError, Message: "har: log has no entries list", Location: location}
	}

	var arc Archive
	if err := json.Unmarshal(raw, &arc); err != nil {
		return nil, &ArchiveError{Code: ParseError, Message: fmt.Sprintf("parse har entries: %v", err), Location: location, Cause: err}
	}
	return &arc, nil
}
