package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	n, err := NormalizeName("  Residencial Flores \t")
	require.NoError(t, err)
	assert.Equal(t, "Residencial Flores", n)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := NormalizeName(in)
		assert.ErrorIs(t, err, ErrInvalidName, "input %q", in)
	}
}

func TestNewPublicID(t *testing.T) {
	id, err := NewPublicID("obra")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^obra-[2-9a-hjkmnp-z]{8}$`), id)
}
