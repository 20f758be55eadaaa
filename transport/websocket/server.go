package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/render"
	"github.com/KevinTCoughlin/tictactoe-backend/internal/service"
	"github.com/gorilla/websocket"
)

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

// Server speaks the game protocol with the client UI: it receives tap
// and reset actions and pushes render and ad directives back.
type Server struct {
	logger   *slog.Logger
	gameplay service.GameplayService
	hub      *render.Hub
	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameplay service.GameplayService, hub *render.Hub) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		gameplay: gameplay,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionConnect] = server.handleConnect
	server.handlers[ActionState] = server.handleState
	server.handlers[ActionTurn] = server.handleTurn
	server.handlers[ActionReset] = server.handleReset

	return server
}

// Start - starts the WebSocket server and shuts it down when the
// context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades the request and pumps messages until the
// client goes away.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{ws: ws}
	defer func() {
		if conn.gameID != "" {
			that.hub.Detach(conn.gameID)
		}

		if conn.playerID != "" {
			that.gameplay.EndSession(ctx, conn.playerID)
		}

		if err = ws.Close(); err != nil {
			log.Error("failed to close connection", "error", err)
		}
	}()

	log.Info("connection established", "remote", ws.RemoteAddr().String())

	for {
		var msg Message
		if err = ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("connection dropped", "error", err)
			}
			return
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			that.sendError(conn, fmt.Sprintf("unknown action %q", msg.Action))
			continue
		}

		if err = handler(ctx, conn, &msg); err != nil {
			log.Error("failed to process message", "action", msg.Action, "error", err)
			that.sendError(conn, err.Error())
		}
	}
}

func (that *Server) sendError(conn *connection, reason string) {
	if err := conn.send(ActionError, ErrorResponse{Reason: reason}); err != nil {
		that.logger.Error("failed to send error response", "error", err)
	}
}

// connection wraps one client socket. The write mutex is needed
// because render directives and action responses can interleave.
type connection struct {
	mu sync.Mutex
	ws *websocket.Conn

	playerID string
	gameID   string
}

func (that *connection) send(action string, payload interface{}) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.WriteJSON(envelope{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// envelope is the outbound counterpart of Message, carrying a typed
// payload instead of a raw map.
type envelope struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}
