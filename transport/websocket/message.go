package websocket

import (
	"fmt"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/board"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/entity"
	"github.com/mitchellh/mapstructure"
)

// Message is the envelope for everything crossing the socket, in both
// directions: an action name plus an action-specific payload.
type Message struct {
	Action  string                 `json:"action"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

const (
	ActionConnect = "connect"
	ActionState   = "game:state"
	ActionTurn    = "game:turn"
	ActionReset   = "game:reset"

	ActionRenderMark   = "render:mark"
	ActionRenderLine   = "render:line"
	ActionRenderClear  = "render:clear"
	ActionInterstitial = "ad:interstitial"

	ActionError = "error"
)

type ConnectPayload struct {
	PlayerID string `mapstructure:"player_id"`
}

type TurnPayload struct {
	Row int `mapstructure:"row"`
	Col int `mapstructure:"col"`
}

// StateResponse mirrors the session back to the client.
type StateResponse struct {
	Player *PlayerResponse `json:"player"`
	Game   *GameResponse   `json:"game"`
}

type PlayerResponse struct {
	ID string `json:"id"`
}

type GameResponse struct {
	ID     string                  `json:"id"`
	Cells  [board.Cells]board.Mark `json:"cells"`
	Turn   board.Mark              `json:"turn,omitempty"`
	Status board.Status            `json:"status"`
}

type MarkResponse struct {
	Position board.Position `json:"position"`
	Mark     board.Mark     `json:"mark"`
}

type LineResponse struct {
	Line board.Line `json:"line"`
}

type ErrorResponse struct {
	Reason string `json:"reason"`
}

// decodePayload maps a raw payload onto an action-specific struct.
func decodePayload(payload map[string]interface{}, out interface{}) error {
	if err := mapstructure.Decode(payload, out); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	return nil
}

// stateResponse builds the session view, recomputing turn and status
// from the stored cells.
func stateResponse(player *entity.Player, game *entity.Game) (*StateResponse, error) {
	b, err := game.Board()
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	status := b.Status()

	response := &GameResponse{
		ID:     game.ID,
		Cells:  game.Cells,
		Status: status,
	}
	if status.State == board.StateInProgress {
		response.Turn = b.Turn()
	}

	return &StateResponse{
		Player: &PlayerResponse{ID: player.ID},
		Game:   response,
	}, nil
}
