package board

import (
	"errors"
	"fmt"
)

const files = "abcdefgh"

var ErrInvalidSquare = errors.New("invalid square")

// Square addresses the grid, row 0 is rank 8
type Square struct {
	Row int
	Col int
}

// ParseSquare converts "e2" into {6, 4}
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '0' || rank > '9' {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	r := int(rank - '0')
	if r < 1 || r > 8 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square{Row: 8 - r, Col: int(file - 'a')}, nil
}

func (sq Square) InBounds() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

func (sq Square) String() string {
	if !sq.InBounds() {
		return "-"
	}
	return fmt.Sprintf("%c%d", files[sq.Col], 8-sq.Row)
}
