package board

import (
	"fmt"
	"strings"
)

// Board is a position value; assigning it copies every square
type Board [8][8]Piece

var startRanks = [8]string{
	"rnbqkbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBQKBNR",
}

// New returns the standard starting position
func New() Board {
	var b Board
	for r, rank := range startRanks {
		for f := 0; f < 8; f++ {
			b[r][f] = Piece(rank[f])
		}
	}
	return b
}

// NewEmpty returns a board with no pieces
func NewEmpty() Board {
	var b Board
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			b[r][f] = Empty
		}
	}
	return b
}

func (b Board) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// Apply moves without validation, promoting pawns that reach the last rank.
// captured is Empty when the destination was empty.
func (b *Board) Apply(from, to Square) (captured Piece, promoted bool) {
	piece := b.At(from)
	captured = b.At(to)
	b.Set(to, piece)
	b.Set(from, Empty)

	if piece.Kind() == Pawn {
		if (piece.IsWhite() && to.Row == 0) || (piece.IsBlack() && to.Row == 7) {
			b.Set(to, NewPiece(Queen, piece.Color()))
			promoted = true
		}
	}
	return captured, promoted
}

// ToASCII creates an ASCII representation of the board
func (b Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("   a b c d e f g h\n")
	sb.WriteString("  +" + strings.Repeat("--", 8) + "+\n")

	for r := 0; r < 8; r++ {
		rank := 8 - r
		cells := make([]string, 8)
		for f := 0; f < 8; f++ {
			cells[f] = b[r][f].String()
		}
		sb.WriteString(fmt.Sprintf("%d |%s | %d\n", rank, strings.Join(cells, " "), rank))
	}
	sb.WriteString("  +" + strings.Repeat("--", 8) + "+\n")
	sb.WriteString("   a b c d e f g h")

	return sb.String()
}
