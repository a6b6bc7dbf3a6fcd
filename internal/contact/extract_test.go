package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Email(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "you can reach me at jane.doe@example.com thanks", "jane.doe@example.com"},
		{"with plus tag", "mail me: dev+test@sub.example.co.uk", "dev+test@sub.example.co.uk"},
		{"first of several", "a@one.com or b@two.com", "a@one.com"},
		{"none", "no contact info here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).Email)
		})
	}
}

func TestExtract_Phone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dashed", "call me at 555-123-4567", "+15551234567"},
		{"parens", "my number is (555) 123-4567", "+15551234567"},
		{"dots", "555.123.4567 works best", "+15551234567"},
		{"spaces", "it's 555 123 4567", "+15551234567"},
		{"with country code", "1-555-123-4567 any time", "+15551234567"},
		{"already normalized", "+15551234567", "+15551234567"},
		{"none", "no phone here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).Phone)
		})
	}
}

func TestExtract_NormalizationIdempotent(t *testing.T) {
	// Feeding an already-normalized number back through yields it unchanged.
	first := Extract("reach me at 555-123-4567")
	second := Extract(first.Phone)
	assert.Equal(t, first.Phone, second.Phone)
}

func TestExtract_Both(t *testing.T) {
	info := Extract("email a@b.com or call 555-123-4567")
	assert.Equal(t, "a@b.com", info.Email)
	assert.Equal(t, "+15551234567", info.Phone)
	assert.False(t, info.Empty())
}

func TestExtract_Empty(t *testing.T) {
	assert.True(t, Extract("just chatting about the weather").Empty())
}
