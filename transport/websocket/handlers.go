package websocket

import (
	"context"
	"errors"
	"fmt"
)

var errNotConnected = errors.New("no session: send connect first")

// handleConnect resolves the caller's session (creating it on first
// contact), attaches this connection as the game's renderer, and
// replies with the current state.
func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	var payload ConnectPayload
	if err := decodePayload(msg.Payload, &payload); err != nil {
		return err
	}

	player, game, err := that.gameplay.Current(ctx, payload.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}

	if conn.gameID != "" && conn.gameID != game.ID {
		that.hub.Detach(conn.gameID)
	}

	conn.playerID = player.ID
	conn.gameID = game.ID
	that.hub.Attach(game.ID, conn)

	if payload.PlayerID == player.ID {
		that.logger.Info("player connected", "playerID", player.ID)
	} else {
		that.logger.Info("registered new player", "playerID", player.ID)
	}

	response, err := stateResponse(player, game)
	if err != nil {
		return err
	}

	return conn.send(msg.Action, response)
}

// handleState replies with the connection's current session view.
func (that *Server) handleState(ctx context.Context, conn *connection, msg *Message) error {
	if conn.playerID == "" {
		return errNotConnected
	}

	player, game, err := that.gameplay.Current(ctx, conn.playerID)
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}

	response, err := stateResponse(player, game)
	if err != nil {
		return err
	}

	return conn.send(msg.Action, response)
}

// handleTurn maps a tap to a move. Render directives go out through
// the hub as side effects of the gameplay flow; the action response
// carries the resulting state, and a displayed interstitial is
// announced separately.
func (that *Server) handleTurn(ctx context.Context, conn *connection, msg *Message) error {
	if conn.playerID == "" {
		return errNotConnected
	}

	var payload TurnPayload
	if err := decodePayload(msg.Payload, &payload); err != nil {
		return err
	}

	result, err := that.gameplay.Tap(ctx, conn.playerID, payload.Row, payload.Col)
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	player, game, err := that.gameplay.Current(ctx, conn.playerID)
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}

	response, err := stateResponse(player, game)
	if err != nil {
		return err
	}

	if err = conn.send(msg.Action, response); err != nil {
		return err
	}

	if result.AdShown {
		return conn.send(ActionInterstitial, nil)
	}

	return nil
}

// handleReset clears the board and replies with the fresh state.
func (that *Server) handleReset(ctx context.Context, conn *connection, msg *Message) error {
	if conn.playerID == "" {
		return errNotConnected
	}

	if _, err := that.gameplay.Reset(ctx, conn.playerID); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	player, game, err := that.gameplay.Current(ctx, conn.playerID)
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}

	response, err := stateResponse(player, game)
	if err != nil {
		return err
	}

	return conn.send(msg.Action, response)
}
