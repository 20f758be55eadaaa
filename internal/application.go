package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/ads"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/config"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/render"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/repository"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/repository/storage"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/service"
	"github.com/KevinTCoughlin/tictactoe-backend/transport/rest"
	"github.com/KevinTCoughlin/tictactoe-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - assembles and runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)

	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(gameRepo)

	hub := render.NewHub(render.NewLogRenderer(logger))

	scheduler := ads.NewScheduler(logger, adProvider(conf), nil, conf.Ads.GamesPerInterstitial, conf.Ads.LoadRetries)
	scheduler.Preload(ctx)

	gameplay := service.NewGameplayService(logger, playerService, gameService, hub, scheduler)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameplay, hub)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// adProvider picks the interstitial capability for this run: the real
// HTTP-backed provider only when ads are enabled and an endpoint is
// configured, the null provider otherwise.
func adProvider(conf *config.Config) ads.Provider {
	if !conf.Ads.Enabled || conf.Ads.Endpoint == "" {
		return ads.NoopProvider{}
	}

	return ads.NewHTTPProvider(conf.Ads.Endpoint, conf.Ads.UnitID)
}
