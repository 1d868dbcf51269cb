package core

// Request types

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,min=4,max=12"` // "e2e4", "e2 e4", "e2-e4"
}

type UndoRequest struct {
	Count int `json:"count,omitempty" validate:"omitempty,min=1,max=300"` // default: 1
}

type PrimeDayRequest struct {
	Date string `json:"date" validate:"required,datetime=01-02-2006"`
}

// Response types

type GameResponse struct {
	GameID     string    `json:"gameId"`
	FEN        string    `json:"fen"`
	Turn       string    `json:"turn"` // "w" or "b"
	MoveNumber int       `json:"moveNumber"`
	Moves      []string  `json:"moves"`
	LastMove   *MoveInfo `json:"lastMove,omitempty"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Piece       string `json:"piece"`
	Captured    string `json:"captured,omitempty"`
	Promoted    bool   `json:"promoted,omitempty"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type PrimeDayResponse struct {
	Date  string `json:"date"`
	Day   int    `json:"day"`
	Prime bool   `json:"prime"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
