package entity

import (
	"fmt"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/board"
)

// Game is one client's live session: the board cells in Redis wire
// form plus a running count of concluded rounds, kept for the ad
// schedule surfaced to the client.
type Game struct {
	ID        string                  `json:"id"`
	Cells     [board.Cells]board.Mark `json:"cells"`
	Concluded int                     `json:"concluded_games"`
}

func NewGame(id string) *Game {
	return &Game{ID: id}
}

// Board inflates the stored cells into a playable board, rejecting
// state no legal game could have produced.
func (that *Game) Board() (*board.Board, error) {
	b, err := board.Restore(that.Cells)
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	return b, nil
}

// Sync copies the board's cells back into the session for persistence.
func (that *Game) Sync(b *board.Board) {
	that.Cells = b.Snapshot()
}
