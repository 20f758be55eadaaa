package render

import (
	"log/slog"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/board"
)

// Renderer receives drawing directives for one game: a symbol for each
// successful placement, the highlighted line when the game is won, and
// a clear when the board resets. Implementations must not block the
// caller for long; the gameplay flow treats draws as fire-and-forget.
type Renderer interface {
	DrawMark(pos board.Position, mark board.Mark)
	DrawWinningLine(line board.Line)
	Clear()
}

// NopRenderer discards every directive. The hub hands it out for games
// with no attached client.
type NopRenderer struct{}

func (NopRenderer) DrawMark(_ board.Position, _ board.Mark) {}

func (NopRenderer) DrawWinningLine(_ board.Line) {}

func (NopRenderer) Clear() {}

// LogRenderer writes directives to the log. It is the assembly default
// and handy when poking at the service without a client attached.
type LogRenderer struct {
	logger *slog.Logger
}

func NewLogRenderer(logger *slog.Logger) *LogRenderer {
	return &LogRenderer{logger: logger.With("component", "renderer")}
}

func (that *LogRenderer) DrawMark(pos board.Position, mark board.Mark) {
	that.logger.Info("draw mark", "row", pos.Row, "col", pos.Col, "mark", string(mark))
}

func (that *LogRenderer) DrawWinningLine(line board.Line) {
	that.logger.Info("draw winning line", "from", line[0], "to", line[2])
}

func (that *LogRenderer) Clear() {
	that.logger.Info("clear board")
}
