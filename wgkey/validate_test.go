package wgkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validKey = "0GqXOe3DvkUbvltmZYxV2qfOH7UkrLCMe/mXc+2AqAg="

func TestValidatePubkey(t *testing.T) {
	got, err := ValidatePubkey(validKey)
	assert.NoError(t, err)
	assert.Equal(t, validKey, got)
}

func TestValidatePubkeyRejectsBadTrailer(t *testing.T) {
	// Flip the last significant character to one outside the allowed
	// low-bits-zero set.
	bad := validKey[:42] + "B="
	_, err := ValidatePubkey(bad)
	assert.Error(t, err)
}

func TestValidatePubkeyRejectsWrongLength(t *testing.T) {
	_, err := ValidatePubkey("short")
	assert.Error(t, err)
}

func TestValidatePubkeyRejectsMissingPadding(t *testing.T) {
	bad := validKey[:43] + "A"
	_, err := ValidatePubkey(bad)
	assert.Error(t, err)
}

func TestIsValidDomain(t *testing.T) {
	domains := map[string]struct{}{"ffda": {}}
	assert.True(t, IsValidDomain("ffda", domains))
	assert.False(t, IsValidDomain("nope", domains))
}
