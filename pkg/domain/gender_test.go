package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "roster/pkg/domain-errors"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		input string
		want  Gender
	}{
		{"Male", GenderMale},
		{"female", GenderFemale},
		{" OTHER ", GenderOther},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGender(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown value", func(t *testing.T) {
		_, err := ParseGender("robot")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestGender_String(t *testing.T) {
	assert.Equal(t, "Female", Gender("FEMALE").String())
	assert.Equal(t, "", Gender("robot").String())
	assert.True(t, Gender("").IsValid())
	assert.False(t, Gender("robot").IsValid())
}
