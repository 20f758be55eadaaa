package board

import (
	"errors"
	"fmt"

	"github.com/KevinTCoughlin/tictactoe-backend/internal/apperror"
)

var ErrCorruptSnapshot = errors.New("corrupt board snapshot")

const (
	Size  = 3
	Cells = Size * Size
)

type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateDraw       State = "draw"
)

// Position addresses a single cell, row and column each in [0,2].
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line is one of the eight fixed winning triples.
type Line [3]Position

// winLines enumerates the winning triples in a fixed order: rows,
// then columns, then diagonals. Status reports the first match, so
// the order is part of the contract.
var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Status describes derived game progress. Winner and Line are set
// only when State is StateWon.
type Status struct {
	State  State `json:"state"`
	Winner Mark  `json:"winner,omitempty"`
	Line   *Line `json:"line,omitempty"`
}

// Board owns the 3x3 grid. Cells are only mutated through PlaceMark
// and Reset, so the alternation invariant always holds: the count of
// X marks minus the count of O marks is 0 or 1.
type Board struct {
	cells [Cells]Mark
}

func New() *Board {
	return &Board{}
}

// Restore rebuilds a board from a snapshot, rejecting cell contents
// or mark counts no sequence of legal moves could have produced.
func Restore(cells [Cells]Mark) (*Board, error) {
	countX, countO := 0, 0

	for i, cell := range cells {
		switch cell {
		case MarkEmpty:
		case MarkX:
			countX++
		case MarkO:
			countO++
		default:
			return nil, fmt.Errorf("%w: cell %d holds %q", ErrCorruptSnapshot, i, cell)
		}
	}

	if diff := countX - countO; diff != 0 && diff != 1 {
		return nil, fmt.Errorf("%w: %d X marks against %d O marks", ErrCorruptSnapshot, countX, countO)
	}

	return &Board{cells: cells}, nil
}

// Turn reports whose mark the next PlaceMark will set. It is derived,
// not stored: X moves first, so X is up whenever the counts are even.
func (that *Board) Turn() Mark {
	countX, countO := 0, 0

	for _, cell := range that.cells {
		switch cell {
		case MarkX:
			countX++
		case MarkO:
			countO++
		}
	}

	if countX == countO {
		return MarkX
	}

	return MarkO
}

// PlaceMark sets the current player's mark at (row, col) and returns
// the resulting status. The move is rejected, with no mutation, when
// the coordinates are out of range, the cell is occupied, or the game
// has already concluded. Every rejection wraps apperror.ErrInvalidMove.
func (that *Board) PlaceMark(row, col int) (Status, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return that.Status(), fmt.Errorf("%w: position (%d,%d) is off the board", apperror.ErrInvalidMove, row, col)
	}

	status := that.Status()
	if status.State != StateInProgress {
		return status, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameConcluded)
	}

	idx := row*Size + col
	if that.cells[idx] != MarkEmpty {
		return status, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrCellOccupied)
	}

	that.cells[idx] = that.Turn()

	return that.Status(), nil
}

// Status computes progress from cell contents alone: the first
// winning line in the fixed enumeration order, a draw once the board
// is full, otherwise in progress.
func (that *Board) Status() Status {
	for _, combo := range winLines {
		a, b, c := that.cells[combo[0]], that.cells[combo[1]], that.cells[combo[2]]
		if a != MarkEmpty && a == b && b == c {
			line := lineOf(combo)

			return Status{State: StateWon, Winner: a, Line: &line}
		}
	}

	for _, cell := range that.cells {
		if cell == MarkEmpty {
			return Status{State: StateInProgress}
		}
	}

	return Status{State: StateDraw}
}

// Reset clears every cell, reopening the board for play. Resetting an
// already empty board is a no-op.
func (that *Board) Reset() {
	that.cells = [Cells]Mark{}
}

// Cell returns the mark at (row, col).
func (that *Board) Cell(row, col int) (Mark, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return MarkEmpty, fmt.Errorf("%w: position (%d,%d) is off the board", apperror.ErrInvalidMove, row, col)
	}

	return that.cells[row*Size+col], nil
}

// Snapshot returns the flat cell contents in row-major order.
func (that *Board) Snapshot() [Cells]Mark {
	return that.cells
}

func lineOf(combo [3]int) Line {
	var line Line
	for i, idx := range combo {
		line[i] = Position{Row: idx / Size, Col: idx % Size}
	}

	return line
}
