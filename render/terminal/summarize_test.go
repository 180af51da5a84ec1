package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastLine(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"empty", "", ""},
		{"single", "boom", "boom"},
		{"trailing newline", "a\nb\n", "b"},
		{"trailing blank lines", "a\nlast entry\n\n\n", "last entry"},
		{"crlf", "a\r\nb\r\n", "b"},
		{"indented", "a\n    at main.go:12\n", "at main.go:12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, lastLine(tt.input))
		})
	}
}
