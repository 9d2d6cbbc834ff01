package errors

import (
	"errors"
	"fmt"
)

// TransportError represents a network or HTTP level failure reaching the
// remote analysis service. It is fatal to the current poll session and is
// never retried automatically.
type TransportError struct {
	Operation string
	Detail    string
	Err       error
}

// Error implements the error interface for TransportError.
func (e *TransportError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed: %s", e.Operation, e.Detail)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying cause, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError for the named remote operation.
func NewTransportError(operation, detail string, err error) error {
	return &TransportError{Operation: operation, Detail: detail, Err: err}
}

// MalformedResponseError indicates the remote payload was missing required
// fields or could not be decoded. Sessions treat it like a transport failure.
type MalformedResponseError struct {
	Operation string
	Reason    string
}

// Error implements the error interface for MalformedResponseError.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Operation, e.Reason)
}

// NewMalformedResponseError creates a MalformedResponseError.
func NewMalformedResponseError(operation, reason string) error {
	return &MalformedResponseError{Operation: operation, Reason: reason}
}

// RemoteFailureError indicates the analysis job itself entered the failed
// state. The message is the job's own error text, surfaced verbatim.
type RemoteFailureError struct {
	ScanID  int
	Message string
}

// Error implements the error interface for RemoteFailureError.
func (e *RemoteFailureError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("scan %d failed", e.ScanID)
	}
	return fmt.Sprintf("scan %d failed: %s", e.ScanID, e.Message)
}

// NewRemoteFailureError creates a RemoteFailureError for the given scan.
func NewRemoteFailureError(scanID int, message string) error {
	return &RemoteFailureError{ScanID: scanID, Message: message}
}

// NotReadyError indicates an operation that requires a completed scan was
// invoked before the scan reached that state.
type NotReadyError struct {
	ScanID int
	Status string
}

// Error implements the error interface for NotReadyError.
func (e *NotReadyError) Error() string {
	return fmt.Sprintf("scan %d is not completed (status %q)", e.ScanID, e.Status)
}

// NewNotReadyError creates a NotReadyError for the given scan and status.
func NewNotReadyError(scanID int, status string) error {
	return &NotReadyError{ScanID: scanID, Status: status}
}

// ExportUnavailableError indicates the remote report fetch failed for a scan
// that is otherwise completed.
type ExportUnavailableError struct {
	ScanID int
	Err    error
}

// Error implements the error interface for ExportUnavailableError.
func (e *ExportUnavailableError) Error() string {
	return fmt.Sprintf("report export for scan %d is unavailable: %v", e.ScanID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExportUnavailableError) Unwrap() error {
	return e.Err
}

// NewExportUnavailableError creates an ExportUnavailableError wrapping err.
func NewExportUnavailableError(scanID int, err error) error {
	return &ExportUnavailableError{ScanID: scanID, Err: err}
}

// IsNotReady reports whether err is a NotReadyError.
func IsNotReady(err error) bool {
	var target *NotReadyError
	return errors.As(err, &target)
}

// IsTransport reports whether err is a TransportError or a
// MalformedResponseError, which sessions handle the same way.
func IsTransport(err error) bool {
	var transport *TransportError
	var malformed *MalformedResponseError
	return errors.As(err, &transport) || errors.As(err, &malformed)
}
