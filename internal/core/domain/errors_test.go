package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotConfigured", ErrNotConfigured},
		{"ErrProviderRequest", ErrProviderRequest},
		{"ErrEnrichmentFailed", ErrEnrichmentFailed},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrUnauthorized", ErrUnauthorized},
		{"ErrQueryRejected", ErrQueryRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that sentinel errors do not match each other
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrInvalidInput, ErrNotConfigured, ErrProviderRequest, ErrEnrichmentFailed, ErrUnsupportedType,
		ErrRateLimited, ErrUnauthorized, ErrQueryRejected,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestSearchError_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewSearchError("github search", ErrProviderRequest, cause)

	assert.True(t, errors.Is(err, ErrProviderRequest))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, "github search: provider request failed: connection reset", err.Error())
}

func TestSearchError_WithoutCause(t *testing.T) {
	err := NewSearchError("exa search", ErrNotConfigured, nil)

	assert.True(t, IsConfiguration(err))
	assert.Equal(t, "exa search: provider not configured", err.Error())
}

func TestSearchError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewSearchError("op", ErrInvalidInput, nil))

	var se *SearchError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "op", se.Op)
	assert.True(t, IsValidation(err))
	assert.False(t, IsNetwork(err))
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, IsValidation(NewSearchError("x", ErrInvalidInput, nil)))
	assert.True(t, IsConfiguration(NewSearchError("x", ErrNotConfigured, nil)))
	assert.True(t, IsNetwork(NewSearchError("x", ErrProviderRequest, nil)))
	assert.False(t, IsNetwork(nil))
}

func TestRefusalClassifiers(t *testing.T) {
	// a transport error that unwraps to a refusal cause
	cause := fmt.Errorf("github: API error 422: %w", ErrQueryRejected)
	err := NewSearchError("github search", ErrProviderRequest, cause)

	assert.True(t, IsNetwork(err))
	assert.True(t, IsQueryRejected(err))
	assert.False(t, IsRateLimited(err))
	assert.False(t, IsUnauthorized(err))

	assert.True(t, IsRateLimited(NewSearchError("x", ErrProviderRequest, ErrRateLimited)))
	assert.True(t, IsUnauthorized(NewSearchError("x", ErrProviderRequest, ErrUnauthorized)))
	assert.False(t, IsRateLimited(errors.New("plain")))
}
