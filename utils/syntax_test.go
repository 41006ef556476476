package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mailtrust/utils"
)

func TestValidEmailFormat(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"plain address", "user@example.com", true},
		{"dots and plus in local part", "first.last+tag@example.com", true},
		{"percent and hyphen", "a%b-c_d@example.co.uk", true},
		{"upper case preserved", "User@Example.COM", true},
		{"not an email", "not-an-email", false},
		{"missing local part", "@example.com", false},
		{"missing domain", "user@", false},
		{"no dot in domain", "user@localhost", false},
		{"one letter TLD", "user@example.c", false},
		{"digit TLD", "user@example.c0", false},
		{"space in local part", "us er@example.com", false},
		{"empty string", "", false},
		{"double at", "user@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ValidEmailFormat(tt.email))
		})
	}
}
