package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeConfigError, "missing required field"),
			expected: "[CONFIG_ERROR] missing required field",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeSourceError, "source read failed", errors.New("connection reset")),
			expected: "[SOURCE_ERROR] source read failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodePipelineError, "pipeline build failed", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeConfigError, "error 1")
	err2 := New(CodeConfigError, "error 2")
	err3 := New(CodeSourceError, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsSourceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "source error",
			err:      ErrSourceError,
			expected: true,
		},
		{
			name:     "wrapped source error",
			err:      Wrap(CodeSourceError, "source closed", errors.New("eof")),
			expected: true,
		},
		{
			name:     "other error",
			err:      ErrConfigError,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSourceError(tt.err))
		})
	}
}

func TestIsPipelineError(t *testing.T) {
	assert.True(t, IsPipelineError(ErrPipelineError))
	assert.False(t, IsPipelineError(ErrConfigError))
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, IsConfigError(ErrConfigError))
	assert.False(t, IsConfigError(ErrSourceError))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeConfigError, "bad config"),
			expected: CodeConfigError,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeSourceError, "source", errors.New("inner")),
			expected: CodeSourceError,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeConfigError, "config load failed"),
			expected: "config load failed",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}
