package internal

import "fmt"

// TransportError represents a failed call to the assistant service
type TransportError struct {
	Endpoint string
	Op       string // "query", "items", "search", "item", "health", "history"
	Status   int    // HTTP status, 0 when no response was received
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error: %s %s: status %d: %v", e.Op, e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("transport error: %s %s: %v", e.Op, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError represents a response body that could not be parsed
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s]: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StorageError represents errors accessing tab storage
type StorageError struct {
	Path string
	Op   string // "open", "get", "set", "delete"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during transcript export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

var errEmptyResult = fmt.Errorf("assistant returned no result")

// panicError carries a recovered panic value as an error
type panicError struct {
	value interface{}
}

func (e panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
