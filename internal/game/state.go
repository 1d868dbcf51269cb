package game

import (
	"chesstools/internal/board"
	"chesstools/internal/core"
)

// State is a complete position: board, side to move and move counter
type State struct {
	Board      board.Board
	Turn       core.Color
	MoveNumber int
}

// Outcome describes one applied move
type Outcome struct {
	Move     string // canonical "e2e4"
	Player   core.Color
	Piece    board.Piece
	Captured board.Piece // board.Empty when nothing was taken
	Promoted bool
}

func Initial() State {
	return State{
		Board:      board.New(),
		Turn:       core.ColorWhite,
		MoveNumber: 1,
	}
}

// Step is the transition function. The returned state is independent of s;
// on error it is s itself.
func Step(s State, from, to board.Square) (State, Outcome, error) {
	if err := board.Validate(&s.Board, from, to, s.Turn); err != nil {
		return s, Outcome{}, err
	}

	next := s
	piece := next.Board.At(from)
	captured, promoted := next.Board.Apply(from, to)

	next.Turn = core.OppositeColor(s.Turn)
	if s.Turn == core.ColorBlack {
		next.MoveNumber++
	}

	return next, Outcome{
		Move:     from.String() + to.String(),
		Player:   s.Turn,
		Piece:    piece,
		Captured: captured,
		Promoted: promoted,
	}, nil
}

func (s State) FEN() string {
	return s.Board.FEN(s.Turn, s.MoveNumber)
}

// FromFEN builds a state from a FEN string
func FromFEN(fen string) (State, error) {
	b, turn, n, err := board.ParseFEN(fen)
	if err != nil {
		return State{}, err
	}
	return State{Board: b, Turn: turn, MoveNumber: n}, nil
}
