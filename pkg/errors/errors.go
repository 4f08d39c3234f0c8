package errors

import "fmt"

// Error codes
const (
	CodeSiteError  = "SITE_ERROR"
	CodeFetch      = "FETCH_ERROR"
	CodeSubmission = "SUBMISSION_ERROR"
	CodeValidation = "VALIDATION_ERROR"
)

type SiteError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *SiteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SiteError) Unwrap() error {
	return e.Cause
}

func NewSiteError(message, code string, statusCode int, context map[string]any) *SiteError {
	return &SiteError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *SiteError) WithCause(cause error) *SiteError {
	e.Cause = cause
	return e
}

// FetchError means the remote repository list could not be retrieved.
// StatusCode is the upstream HTTP status, or 0 for transport failures.
type FetchError struct {
	*SiteError
	Source string
}

func NewFetchError(message, source string, statusCode int, cause error) *FetchError {
	return &FetchError{
		SiteError: &SiteError{
			Message:    message,
			Code:       CodeFetch,
			StatusCode: statusCode,
			Context: map[string]any{
				"source": source,
			},
			Cause: cause,
		},
		Source: source,
	}
}

// SubmissionError means outbound contact mail could not be delivered.
type SubmissionError struct {
	*SiteError
	Delivery string
}

func NewSubmissionError(message, delivery string, statusCode int, cause error) *SubmissionError {
	return &SubmissionError{
		SiteError: &SiteError{
			Message:    message,
			Code:       CodeSubmission,
			StatusCode: statusCode,
			Context: map[string]any{
				"delivery": delivery,
			},
			Cause: cause,
		},
		Delivery: delivery,
	}
}

type ValidationError struct {
	*SiteError
	Field string
}

func NewValidationError(message, field string) *ValidationError {
	return &ValidationError{
		SiteError: &SiteError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
			},
		},
		Field: field,
	}
}
