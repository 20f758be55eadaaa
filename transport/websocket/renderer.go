package websocket

import (
	"github.com/KevinTCoughlin/tictactoe-backend/internal/board"
)

// The connection doubles as the render.Renderer for its game: drawing
// directives become pushed messages. Send failures are swallowed here;
// a dead socket surfaces in the read loop.
func (that *connection) DrawMark(pos board.Position, mark board.Mark) {
	_ = that.send(ActionRenderMark, MarkResponse{Position: pos, Mark: mark})
}

func (that *connection) DrawWinningLine(line board.Line) {
	_ = that.send(ActionRenderLine, LineResponse{Line: line})
}

func (that *connection) Clear() {
	_ = that.send(ActionRenderClear, nil)
}
