package board

import "chesstools/internal/core"

// Piece is a single board cell: Empty or a FEN letter, uppercase for white
type Piece byte

const Empty Piece = '.'

type Kind byte

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	NoKind: "",
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return ""
}

// Kind maps the letter, ignoring case
func (p Piece) Kind() Kind {
	switch p | 0x20 {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	default:
		return NoKind
	}
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

func (p Piece) IsWhite() bool {
	return p >= 'A' && p <= 'Z'
}

func (p Piece) IsBlack() bool {
	return p >= 'a' && p <= 'z'
}

// Color is only meaningful for non-empty pieces
func (p Piece) Color() core.Color {
	if p.IsWhite() {
		return core.ColorWhite
	}
	return core.ColorBlack
}

// Belongs reports whether the piece is on the given side
func (p Piece) Belongs(c core.Color) bool {
	if c == core.ColorWhite {
		return p.IsWhite()
	}
	return p.IsBlack()
}

// SameColor is false whenever either side is empty
func SameColor(a, b Piece) bool {
	if a == Empty || b == Empty {
		return false
	}
	return (a.IsWhite() && b.IsWhite()) || (a.IsBlack() && b.IsBlack())
}

// NewPiece builds the letter for a kind and side
func NewPiece(k Kind, c core.Color) Piece {
	var letter Piece
	switch k {
	case Pawn:
		letter = 'P'
	case Knight:
		letter = 'N'
	case Bishop:
		letter = 'B'
	case Rook:
		letter = 'R'
	case Queen:
		letter = 'Q'
	case King:
		letter = 'K'
	default:
		return Empty
	}
	if c == core.ColorBlack {
		letter |= 0x20
	}
	return letter
}

func (p Piece) String() string {
	return string(p)
}
