package board

import (
	"testing"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// When: creating a new board
	b := New()

	// Then: every cell is empty, X is up, and the game is in progress
	require.NotNil(t, b)
	require.Equal(t, [Cells]Mark{}, b.Snapshot())
	require.Equal(t, MarkX, b.Turn())
	require.Equal(t, Status{State: StateInProgress}, b.Status())
}

func TestBoard_PlaceMark(t *testing.T) {
	t.Run("Turns alternate starting with X", func(t *testing.T) {
		// Given: a fresh board
		b := New()

		// When: marks are placed in sequence
		moves := []Position{{0, 0}, {1, 1}, {0, 1}, {2, 0}}

		for i, move := range moves {
			// Then: the derived turn alternates, X first
			want := MarkX
			if i%2 == 1 {
				want = MarkO
			}
			require.Equal(t, want, b.Turn())

			_, err := b.PlaceMark(move.Row, move.Col)
			require.NoError(t, err)

			placed, err := b.Cell(move.Row, move.Col)
			require.NoError(t, err)
			require.Equal(t, want, placed)
		}
	})

	t.Run("Occupied cell is rejected without mutation", func(t *testing.T) {
		// Given: a board where X has taken (0,0)
		b := New()
		_, err := b.PlaceMark(0, 0)
		require.NoError(t, err)

		before := b.Snapshot()

		// When: the same cell is played again
		status, err := b.PlaceMark(0, 0)

		// Then: the move is rejected as invalid and occupied
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		// Then: the board and status are unchanged, O still to play
		assert.Equal(t, before, b.Snapshot())
		assert.Equal(t, StateInProgress, status.State)
		assert.Equal(t, MarkO, b.Turn())
	})

	t.Run("Out of range coordinates are rejected", func(t *testing.T) {
		b := New()

		for _, pos := range []Position{{3, 0}, {0, 3}, {-1, 0}, {0, -1}, {3, 3}} {
			// When: a coordinate outside [0,2] is played
			_, err := b.PlaceMark(pos.Row, pos.Col)

			// Then: the move is rejected and nothing is written
			require.ErrorIs(t, err, apperror.ErrInvalidMove)
			require.Equal(t, [Cells]Mark{}, b.Snapshot())
		}
	})

	t.Run("Move after a win is rejected", func(t *testing.T) {
		// Given: a board O has won
		b := playOut(t, []Position{{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 1}, {2, 1}})
		require.Equal(t, StateWon, b.Status().State)

		before := b.Snapshot()

		// When: X tries to keep playing
		_, err := b.PlaceMark(0, 2)

		// Then: the move is rejected and the board stays frozen
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrGameConcluded)
		assert.Equal(t, before, b.Snapshot())
	})

	t.Run("Move after a draw is rejected", func(t *testing.T) {
		// Given: a drawn board
		b := drawnBoard(t)
		require.Equal(t, StateDraw, b.Status().State)

		// When: another move is attempted
		_, err := b.PlaceMark(1, 1)

		// Then: it is rejected as concluded
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrGameConcluded)
	})
}

func TestBoard_Status(t *testing.T) {
	t.Run("O wins the bottom row", func(t *testing.T) {
		// Given: X plays (0,0),(1,1),(0,1) while O plays (2,0),(2,2),(2,1)
		b := playOut(t, []Position{{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 1}, {2, 1}})

		// Then: O has won with the bottom row reported in order
		status := b.Status()
		require.Equal(t, StateWon, status.State)
		require.Equal(t, MarkO, status.Winner)
		require.NotNil(t, status.Line)
		assert.Equal(t, Line{{2, 0}, {2, 1}, {2, 2}}, *status.Line)
	})

	t.Run("Full board with no line is a draw", func(t *testing.T) {
		// Given: a full board with no three-in-a-row
		b := drawnBoard(t)

		// Then: the game is a draw with no winner
		status := b.Status()
		require.Equal(t, StateDraw, status.State)
		assert.Equal(t, MarkEmpty, status.Winner)
		assert.Nil(t, status.Line)
	})

	t.Run("Status is pure", func(t *testing.T) {
		// Given: a board mid-game
		b := playOut(t, []Position{{0, 0}, {1, 1}})

		// When: status is computed repeatedly without mutation
		first := b.Status()

		// Then: every call yields the identical result
		for i := 0; i < 5; i++ {
			require.Equal(t, first, b.Status())
		}
	})

	t.Run("Each winning line is detected", func(t *testing.T) {
		lines := []Line{
			{{0, 0}, {0, 1}, {0, 2}},
			{{1, 0}, {1, 1}, {1, 2}},
			{{2, 0}, {2, 1}, {2, 2}},
			{{0, 0}, {1, 0}, {2, 0}},
			{{0, 1}, {1, 1}, {2, 1}},
			{{0, 2}, {1, 2}, {2, 2}},
			{{0, 0}, {1, 1}, {2, 2}},
			{{0, 2}, {1, 1}, {2, 0}},
		}

		for _, line := range lines {
			// Given: X occupying exactly one winning triple
			var cells [Cells]Mark
			for _, pos := range line {
				cells[pos.Row*Size+pos.Col] = MarkX
			}
			// two O marks off the line keep the mark counts legal
			placed := 0
			for i := 0; i < Cells && placed < 2; i++ {
				if cells[i] == MarkEmpty {
					cells[i] = MarkO
					placed++
				}
			}
			b, err := Restore(cells)
			require.NoError(t, err)

			// Then: that triple is reported as the winning line
			status := b.Status()
			require.Equal(t, StateWon, status.State)
			require.Equal(t, MarkX, status.Winner)
			require.NotNil(t, status.Line)
			assert.Equal(t, line, *status.Line)
		}
	})
}

func TestBoard_Reset(t *testing.T) {
	t.Run("Reset reopens a won board", func(t *testing.T) {
		// Given: a concluded game
		b := playOut(t, []Position{{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 1}, {2, 1}})
		require.Equal(t, StateWon, b.Status().State)

		// When: the board is reset
		b.Reset()

		// Then: play reopens from a fresh initial state
		require.Equal(t, Status{State: StateInProgress}, b.Status())
		require.Equal(t, [Cells]Mark{}, b.Snapshot())
		require.Equal(t, MarkX, b.Turn())

		_, err := b.PlaceMark(1, 1)
		require.NoError(t, err)
	})

	t.Run("Reset is idempotent", func(t *testing.T) {
		// Given: a board with a few marks
		b := playOut(t, []Position{{0, 0}, {1, 1}})

		// When: reset is called twice in a row
		b.Reset()
		once := b.Snapshot()
		b.Reset()

		// Then: the second reset changes nothing
		require.Equal(t, once, b.Snapshot())
		require.Equal(t, Status{State: StateInProgress}, b.Status())
	})
}

func TestRestore(t *testing.T) {
	t.Run("Round trip through a snapshot", func(t *testing.T) {
		// Given: a board mid-game
		b := playOut(t, []Position{{0, 0}, {2, 0}, {1, 1}})

		// When: restoring from its snapshot
		restored, err := Restore(b.Snapshot())

		// Then: the restored board matches in contents, turn, and status
		require.NoError(t, err)
		require.Equal(t, b.Snapshot(), restored.Snapshot())
		require.Equal(t, b.Turn(), restored.Turn())
		require.Equal(t, b.Status(), restored.Status())
	})

	t.Run("Unknown cell contents are rejected", func(t *testing.T) {
		var cells [Cells]Mark
		cells[4] = "Z"

		// When: restoring a snapshot with a foreign mark
		_, err := Restore(cells)

		// Then: the snapshot is rejected as corrupt
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Impossible mark counts are rejected", func(t *testing.T) {
		// Given: two X marks and no O, which strict alternation forbids
		var cells [Cells]Mark
		cells[0] = MarkX
		cells[1] = MarkX

		// When: restoring
		_, err := Restore(cells)

		// Then: the snapshot is rejected as corrupt
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}

// playOut applies the moves in order, failing the test on any rejection.
func playOut(t *testing.T, moves []Position) *Board {
	t.Helper()

	b := New()
	for _, move := range moves {
		_, err := b.PlaceMark(move.Row, move.Col)
		require.NoError(t, err)
	}

	return b
}

// drawnBoard fills the grid with no three-in-a-row:
//
//	X O X
//	X O O
//	O X X
func drawnBoard(t *testing.T) *Board {
	t.Helper()

	return playOut(t, []Position{
		{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2},
	})
}
