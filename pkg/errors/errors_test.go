package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchErrorUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NewFetchError("could not load repositories", "github", 0, cause)

	wrapped := fmt.Errorf("portfolio: %w", err)

	var fe *FetchError
	require.True(t, stderrors.As(wrapped, &fe))
	assert.Equal(t, CodeFetch, fe.Code)
	assert.Equal(t, "github", fe.Source)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "could not load repositories: dial tcp: connection refused", err.Error())
}

func TestSubmissionErrorWithoutCause(t *testing.T) {
	err := NewSubmissionError("email service rejected the message", "emailjs", 400, nil)

	assert.Equal(t, "email service rejected the message", err.Error())
	assert.Equal(t, "emailjs", err.Context["delivery"])
	assert.Nil(t, err.Unwrap())
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("subject is required", "subject")

	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, "subject", err.Field)
}
