package services

import "fmt"

// ReportError is the error type every report service returns. Code maps to
// an HTTP status in the handler layer.
type ReportError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
