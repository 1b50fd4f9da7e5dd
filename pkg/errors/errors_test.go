package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsCodeAndStatus(t *testing.T) {
	err := Clone(ErrPreconditionFailed, "college has courses")

	assert.Equal(t, "PRECONDITION_FAILED", err.Code)
	assert.Equal(t, http.StatusPreconditionFailed, err.Status)
	assert.Equal(t, "college has courses", err.Message)
	assert.Equal(t, "precondition failed", ErrPreconditionFailed.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(errors.New("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.EqualError(t, appErr, "internal server error: boom")
}

func TestIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", Clone(ErrMissingRange, "dateTo missing"))

	assert.True(t, Is(wrapped, ErrMissingRange))
	assert.False(t, Is(wrapped, ErrInvalidPeriod))
	assert.False(t, Is(nil, ErrMissingRange))
}
