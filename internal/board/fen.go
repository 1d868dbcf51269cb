package board

import (
	"fmt"
	"strconv"
	"strings"

	"chesstools/internal/core"

	"github.com/corentings/chess/v2"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
)

// FEN encodes the placement, side to move and fullmove counter.
// Castling and en passant do not exist here, so both fields are "-".
func (b Board) FEN(turn core.Color, moveNumber int) string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		run := 0
		for f := 0; f < 8; f++ {
			p := b[r][f]
			if p.IsEmpty() {
				run++
				continue
			}
			if run > 0 {
				sb.WriteString(strconv.Itoa(run))
				run = 0
			}
			sb.WriteByte(byte(p))
		}
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
		}
	}
	return fmt.Sprintf("%s %s - - 0 %d", sb.String(), turn.Code(), moveNumber)
}

// ParseFEN decodes a position. Syntax and placement are checked by the
// chess library; castling and en passant fields are accepted and ignored.
func ParseFEN(fen string) (Board, core.Color, int, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return Board{}, 0, 0, fmt.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	opt, err := chess.FEN(strings.Join(parts, " "))
	if err != nil {
		return Board{}, 0, 0, fmt.Errorf("invalid FEN: %w", err)
	}
	pos := chess.NewGame(opt).Position()

	b := NewEmpty()
	for sq, p := range pos.Board().SquareMap() {
		kind := kindFromLibrary(p.Type())
		if kind == NoKind {
			continue
		}
		color := core.ColorBlack
		if p.Color() == chess.White {
			color = core.ColorWhite
		}
		// library ranks count up from rank 1
		b[7-int(sq.Rank())][int(sq.File())] = NewPiece(kind, color)
	}

	turn := core.ColorWhite
	if pos.Turn() == chess.Black {
		turn = core.ColorBlack
	}

	moveNumber, err := strconv.Atoi(parts[5])
	if err != nil || moveNumber < 1 {
		return Board{}, 0, 0, fmt.Errorf("invalid FEN: fullmove counter %q", parts[5])
	}

	return b, turn, moveNumber, nil
}

func kindFromLibrary(t chess.PieceType) Kind {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	default:
		return NoKind
	}
}
