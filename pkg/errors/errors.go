package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeBlocked represents repeated 403/429 blocking by a source
	ErrorTypeBlocked ErrorType = "blocked"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, source, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(source, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, source, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewBlocked creates a new blocked error
func NewBlocked(source, message string, err error) *ScrapeError {
	return New(ErrorTypeBlocked, source, message, err)
}

// NewValidation creates a new validation error
func NewValidation(source, message string) *ScrapeError {
	return New(ErrorTypeValidation, source, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// IsBlocked reports whether err is (or wraps) a blocked error
func IsBlocked(err error) bool {
	var se *ScrapeError
	if stderrors.As(err, &se) {
		return se.Type == ErrorTypeBlocked
	}
	return false
}
