package board

import (
	"chesstools/internal/core"
)

// MoveError carries the reason a move was rejected
type MoveError struct {
	Reason string
}

func (e *MoveError) Error() string {
	return e.Reason
}

const (
	ReasonOutOfBounds  = "Out of bounds."
	ReasonEmptySource  = "No piece at source square."
	ReasonSelfCapture  = "Can't capture your own piece."
	ReasonIllegalPiece = "Illegal move for that piece."
)

func wrongSideReason(turn core.Color) string {
	if turn == core.ColorWhite {
		return "That's not your piece (white to move)."
	}
	return "That's not your piece (black to move)."
}

// rule reports whether piece may travel from -> to on an otherwise valid request
type rule func(b *Board, from, to Square, piece Piece) bool

var rules = map[Kind]rule{
	Pawn:   pawnMove,
	Knight: knightMove,
	Bishop: bishopMove,
	Rook:   rookMove,
	Queen:  queenMove,
	King:   kingMove,
}

// Validate checks a move for the side to play. A nil error means legal.
// There is no check detection: leaving the own king en prise is allowed.
func Validate(b *Board, from, to Square, turn core.Color) error {
	if !from.InBounds() || !to.InBounds() {
		return &MoveError{Reason: ReasonOutOfBounds}
	}

	piece := b.At(from)
	if piece.IsEmpty() {
		return &MoveError{Reason: ReasonEmptySource}
	}
	if !piece.Belongs(turn) {
		return &MoveError{Reason: wrongSideReason(turn)}
	}

	target := b.At(to)
	if !target.IsEmpty() && SameColor(piece, target) {
		return &MoveError{Reason: ReasonSelfCapture}
	}

	fn, ok := rules[piece.Kind()]
	if !ok || !fn(b, from, to, piece) {
		return &MoveError{Reason: ReasonIllegalPiece}
	}
	return nil
}

func pawnMove(b *Board, from, to Square, piece Piece) bool {
	forward, startRow := 1, 1
	if piece.IsWhite() {
		forward, startRow = -1, 6
	}

	if from.Col == to.Col {
		if to.Row == from.Row+forward && b.At(to).IsEmpty() {
			return true
		}
		if from.Row == startRow && to.Row == from.Row+2*forward {
			mid := Square{Row: from.Row + forward, Col: from.Col}
			return b.At(mid).IsEmpty() && b.At(to).IsEmpty()
		}
		return false
	}

	// diagonal capture only
	if abs(to.Col-from.Col) == 1 && to.Row == from.Row+forward {
		target := b.At(to)
		return !target.IsEmpty() && !SameColor(piece, target)
	}
	return false
}

func knightMove(_ *Board, from, to Square, _ Piece) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	return (dr == 1 && dc == 2) || (dr == 2 && dc == 1)
}

func bishopMove(b *Board, from, to Square, _ Piece) bool {
	if abs(to.Row-from.Row) != abs(to.Col-from.Col) {
		return false
	}
	return pathClear(b, from, to)
}

func rookMove(b *Board, from, to Square, _ Piece) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	return pathClear(b, from, to)
}

func queenMove(b *Board, from, to Square, piece Piece) bool {
	return rookMove(b, from, to, piece) || bishopMove(b, from, to, piece)
}

func kingMove(_ *Board, from, to Square, _ Piece) bool {
	return max(abs(to.Row-from.Row), abs(to.Col-from.Col)) == 1
}

// pathClear walks unit steps between from and to, both ends excluded
func pathClear(b *Board, from, to Square) bool {
	stepR, stepC := sign(to.Row-from.Row), sign(to.Col-from.Col)
	sq := Square{Row: from.Row + stepR, Col: from.Col + stepC}
	for sq != to {
		if !b.At(sq).IsEmpty() {
			return false
		}
		sq.Row += stepR
		sq.Col += stepC
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
