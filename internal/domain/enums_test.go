package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelayOutcomeIsValid(t *testing.T) {
	assert.True(t, RelayOutcomeSubmitted.IsValid())
	assert.True(t, RelayOutcomeAlreadySubmitted.IsValid())
	assert.True(t, RelayOutcomeVendorMismatch.IsValid())
	assert.True(t, RelayOutcomeOutOfStock.IsValid())
	assert.False(t, RelayOutcome("bogus").IsValid())
}

func TestRelayOutcomeIsSkip(t *testing.T) {
	assert.True(t, RelayOutcomeVendorMismatch.IsSkip())
	assert.True(t, RelayOutcomeOutOfStock.IsSkip())
	assert.False(t, RelayOutcomeSubmitted.IsSkip())
	assert.False(t, RelayOutcomeAlreadySubmitted.IsSkip())
}
