package game

import (
	"errors"
	"fmt"

	"chesstools/internal/board"
)

var ErrUnparsable = errors.New("unparsable move")

type Snapshot struct {
	State        State
	PreviousMove string // Move that created this position (empty for initial)
}

type Game struct {
	snapshots  []Snapshot
	lastResult *Outcome
}

func New(initial State) *Game {
	return &Game{
		snapshots: []Snapshot{
			{State: initial},
		},
	}
}

// NewStandard starts from the usual opening position
func NewStandard() *Game {
	return New(Initial())
}

func (g *Game) Current() State {
	return g.snapshots[len(g.snapshots)-1].State
}

// Play runs the full text pipeline: input split, square parsing, validation
// and application. Errors leave the game untouched.
func (g *Game) Play(text string) (Outcome, error) {
	fromText, toText, ok := board.ParseMoveInput(text)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
	}

	from, err := board.ParseSquare(fromText)
	if err != nil {
		return Outcome{}, err
	}
	to, err := board.ParseSquare(toText)
	if err != nil {
		return Outcome{}, err
	}

	return g.Move(from, to)
}

// Move validates and applies a move between two squares
func (g *Game) Move(from, to board.Square) (Outcome, error) {
	next, outcome, err := Step(g.Current(), from, to)
	if err != nil {
		return Outcome{}, err
	}

	g.snapshots = append(g.snapshots, Snapshot{State: next, PreviousMove: outcome.Move})
	g.lastResult = &outcome
	return outcome, nil
}

func (g *Game) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	availableMoves := len(g.snapshots) - 1
	if availableMoves < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, availableMoves)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]
	g.lastResult = nil
	return nil
}

// Reset returns to the initial snapshot
func (g *Game) Reset() {
	g.snapshots = g.snapshots[:1]
	g.lastResult = nil
}

func (g *Game) LastResult() *Outcome {
	return g.lastResult
}

func (g *Game) Moves() []string {
	moves := []string{}
	for i := 1; i < len(g.snapshots); i++ {
		if g.snapshots[i].PreviousMove != "" {
			moves = append(moves, g.snapshots[i].PreviousMove)
		}
	}
	return moves
}

func (g *Game) Snapshots() []Snapshot {
	out := make([]Snapshot, len(g.snapshots))
	copy(out, g.snapshots)
	return out
}

func (g *Game) InitialFEN() string {
	return g.snapshots[0].State.FEN()
}

func (g *Game) CurrentFEN() string {
	return g.Current().FEN()
}
