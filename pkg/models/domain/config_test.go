package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		identifier string
		valid      bool
	}{
		{identifier: "ABC123", valid: true},
		{identifier: "AB", valid: false},
		{identifier: "", valid: false},
		{identifier: "ABCDEFG", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.identifier, func(t *testing.T) {
			err := Record{Identifier: tc.identifier}.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidIdentifier)
			}
		})
	}
}

func TestConfiguration_Validate(t *testing.T) {
	cfg := &Configuration{Records: []Record{
		{Message: "ok", Identifier: "OK0001"},
		{Message: "short", Identifier: "AB"},
	}}

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.ErrorContains(t, err, "record 1")
}
