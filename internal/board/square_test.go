package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Square
	}{
		{"e2", Square{Row: 6, Col: 4}},
		{"a1", Square{Row: 7, Col: 0}},
		{"h8", Square{Row: 0, Col: 7}},
		{"d5", Square{Row: 3, Col: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sq, err := ParseSquare(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sq)
			assert.Equal(t, tt.in, sq.String())
		})
	}
}

func TestParseSquareRejects(t *testing.T) {
	for _, in := range []string{"i1", "e9", "e", "e22", "e0", "E2", "", "2e", "ex"} {
		_, err := ParseSquare(in)
		assert.True(t, errors.Is(err, ErrInvalidSquare), "input %q", in)
	}
}

func TestParseMoveInput(t *testing.T) {
	tests := []struct {
		in       string
		from, to string
		ok       bool
	}{
		{"e2 e4", "e2", "e4", true},
		{"e2e4", "e2", "e4", true},
		{"  g8f6  ", "g8", "f6", true},
		{"e2-e4", "e2", "e4", true},
		{"e2>e4", "e2", "e4", true},
		{"e2,e4", "e2", "e4", true},
		{"e2 - e4", "e2", "e4", true},
		{"e2   e4", "e2", "e4", true},
		{"e2 e4 e6", "", "", false},
		{"e2e", "", "", false},
		{"e2e4e6", "", "", false},
		{"", "", "", false},
		{"xx yy", "xx", "yy", true}, // squares are checked later
		{"é2e4", "é2", "e4", true},
		{"e2é", "", "", false},
	}
	for _, tt := range tests {
		from, to, ok := ParseMoveInput(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.from, from, "input %q", tt.in)
		assert.Equal(t, tt.to, to, "input %q", tt.in)
	}
}
