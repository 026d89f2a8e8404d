package country

import (
	"errors"
	"fmt"
)

var (
	// ErrNotArray is wrapped by DecodeError when the document is valid JSON but not an array.
	ErrNotArray = errors.New("top-level value is not an array")
	// ErrInvalidJSON is wrapped by DecodeError when the document cannot be parsed.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNoSnapshot is returned when a snapshot replay finds nothing to replay.
	ErrNoSnapshot = errors.New("no snapshot found")
	// ErrImportRunning is returned when an import is requested while another one runs.
	ErrImportRunning = errors.New("import already running")
)

// FetchError reports a transport failure or a non-2xx response.
type FetchError struct {
	URL string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError reports a body that is not a JSON array.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RecordMappingError reports every problem found in one fetched record.
type RecordMappingError struct {
	Index int
	// Name is the record's common name when it could be read.
	Name string
	Err  error
}

func (e *RecordMappingError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordMappingError) Unwrap() error {
	return e.Err
}
