package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/board"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/entity"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/render"
)

// TurnResult is what one accepted tap produced: the updated session,
// the board status after the move, and whether an interstitial was
// displayed for a concluded game.
type TurnResult struct {
	Game    *entity.Game
	Status  board.Status
	AdShown bool
}

type GameplayService interface {
	Current(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error)
	Tap(ctx context.Context, playerID string, row, col int) (*TurnResult, error)
	Reset(ctx context.Context, playerID string) (*entity.Game, error)
	EndSession(ctx context.Context, playerID string)
}

// adSchedule is the ad trigger collaborator: it receives one signal
// per concluded game and owns the show/threshold policy.
type adSchedule interface {
	GameConcluded(ctx context.Context) bool
}

type gameplayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	hub           *render.Hub
	ads           adSchedule
}

func NewGameplayService(logger *slog.Logger, playerService PlayerService, gameService GameService, hub *render.Hub, ads adSchedule) GameplayService {
	return &gameplayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		hub:           hub,
		ads:           ads,
	}
}

// Current resolves the caller's session, creating the player and an
// empty game on first contact.
func (that *gameplayService) Current(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.getOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	if player.GameID == "" {
		game, err := that.gameService.CreateGame(ctx, player)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create game: %w", err)
		}

		if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
			return nil, nil, fmt.Errorf("failed to update player: %w", err)
		}

		return player, game, nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	return player, game, nil
}

// Tap maps one touch on a board cell to a move. On success the mark is
// drawn, a winning line is highlighted, and a concluded game is
// reported to the ad schedule. A rejected move mutates nothing.
func (that *gameplayService) Tap(ctx context.Context, playerID string, row, col int) (*TurnResult, error) {
	game, err := that.gameForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	b, err := game.Board()
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	status, err := b.PlaceMark(row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to place mark: %w", err)
	}

	game.Sync(b)

	result := &TurnResult{Game: game, Status: status}

	concluded := status.State != board.StateInProgress
	if concluded {
		game.Concluded++
		that.logger.With("component", "gameplay").Info("game concluded", "gameID", game.ID, "state", status.State, "winner", status.Winner)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	renderer := that.hub.ForGame(game.ID)

	mark, err := b.Cell(row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to read placed cell: %w", err)
	}
	renderer.DrawMark(board.Position{Row: row, Col: col}, mark)

	if status.State == board.StateWon {
		renderer.DrawWinningLine(*status.Line)
	}

	if concluded {
		result.AdShown = that.ads.GameConcluded(ctx)
	}

	return result, nil
}

// Reset clears the session's board back to nine empty cells and tells
// the renderer to wipe the scene. It works from any state.
func (that *gameplayService) Reset(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.gameForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	b, err := game.Board()
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	b.Reset()
	game.Sync(b)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.hub.ForGame(game.ID).Clear()

	return game, nil
}

// EndSession releases a client's session on disconnect. A concluded
// game has nothing left to resume, so it is deleted and the player
// unbound; an unfinished game is kept so a reconnect picks it up.
func (that *gameplayService) EndSession(ctx context.Context, playerID string) {
	log := that.logger.With("method", "EndSession", "playerID", playerID)

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		log.Error("failed to get player by id", "error", err)
		return
	}

	if player.GameID == "" {
		return
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		log.Error("failed to get game by id", "error", err)
		return
	}

	b, err := game.Board()
	if err != nil {
		log.Error("failed to restore board", "error", err)
		return
	}

	if b.Status().State == board.StateInProgress {
		return
	}

	if err = that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	player.GameID = ""
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		log.Error("failed to update player", "error", err)
	}

	log.Info("session released", "gameID", game.ID)
}

func (that *gameplayService) getOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gameplayService) gameForPlayer(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}
