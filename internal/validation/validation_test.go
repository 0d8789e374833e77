package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "watchmore42", false},
		{"Exactly Min Length", "abcdefg1", false},
		{"Exactly Max Length", strings.Repeat("a", 127) + "1", false},
		{"Too Short", "abc12", true},
		{"Too Long", strings.Repeat("a", 128) + "1", true},
		{"No Digit", "onlyletters", true},
		{"No Letter", "1234567890", true},
		{"Unicode Letters", "Ångström2024", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "chai_aur.code", false},
		{"Minimum", "abc", false},
		{"Too Short", "ab", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Upper Case", "Chai", true},
		{"Illegal Chars", "user@123", true},
		{"Starts Underscore", "_user", true},
		{"Ends Dot", "user.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Display Name", "Bob <bob@example.com>", true},
		{"Multiple At Symbols", "user@@example.com", true},
		{"No TLD", "user@localhost", true},
		{"Trailing Dot In Domain", "user@example.com.", true},
		{"Too Long", strings.Repeat("a", 250) + "@x.io", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequiredAndMaxLength(t *testing.T) {
	v, err := Required("title", "  hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = Required("title", "   ")
	assert.EqualError(t, err, "title is required")

	assert.NoError(t, MaxLength("content", "abc", 3))
	assert.Error(t, MaxLength("content", "abcd", 3))
}
