package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const BoardSize = 3

// Cell is the state of one board slot.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

func (that Cell) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the other mark. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

// Move is a zero-based (row, column) coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Line is one of the eight winning lines, listed in board order.
type Line [BoardSize]Move

// WinLines is checked rows first, then columns, then the main and anti diagonals.
var WinLines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a row-major 3x3 grid. The zero value is an empty board.
type Board [BoardSize][BoardSize]Cell

// Place puts mark on an empty, in-range cell. On failure the board is unchanged.
func (that *Board) Place(move Move, mark Cell) error {
	if !move.InRange() {
		return fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidMove, move)
	}

	if that[move.Row][move.Col] != Empty {
		return fmt.Errorf("%w: cell %s is occupied", apperror.ErrInvalidMove, move)
	}

	that[move.Row][move.Col] = mark

	return nil
}

// Clear resets a cell to Empty. Only the search uses it, to undo speculative moves.
func (that *Board) Clear(move Move) {
	that[move.Row][move.Col] = Empty
}

func (that *Board) At(move Move) Cell {
	return that[move.Row][move.Col]
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// EmptyCells lists the free cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for r, row := range that {
		for c, cell := range row {
			if cell == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}

	return moves
}

// Count returns how many cells hold mark.
func (that *Board) Count(mark Cell) int {
	n := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				n++
			}
		}
	}

	return n
}

func (that *Board) Winner(mark Cell) bool {
	_, ok := that.WinningLine(mark)
	return ok
}

// WinningLine returns the first complete line owned by mark.
func (that *Board) WinningLine(mark Cell) (Line, bool) {
	if mark == Empty {
		return Line{}, false
	}

	for _, line := range WinLines {
		if that.At(line[0]) == mark && that.At(line[1]) == mark && that.At(line[2]) == mark {
			return line, true
		}
	}

	return Line{}, false
}

// Outcome derives the game state. X is checked before O; a reachable board is never won by both.
func (that *Board) Outcome() Outcome {
	for _, mark := range [...]Cell{MarkX, MarkO} {
		if line, ok := that.WinningLine(mark); ok {
			return Outcome{State: StateWin, Winner: mark, Line: line}
		}
	}

	if that.IsFull() {
		return Outcome{State: StateDraw}
	}

	return Outcome{State: StateInProgress}
}

func (that *Board) IsTerminal() bool {
	return that.Outcome().State != StateInProgress
}

// Key encodes the board as nine characters, row-major, "." for empty cells.
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)
	for _, row := range that {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

// ParseBoard is the inverse of Key.
func ParseBoard(key string) (Board, error) {
	var board Board
	if len(key) != BoardSize*BoardSize {
		return board, fmt.Errorf("%w: %q", apperror.ErrInvalidBoardKey, key)
	}

	for i, ch := range key {
		var cell Cell
		switch ch {
		case '.':
			cell = Empty
		case 'X':
			cell = MarkX
		case 'O':
			cell = MarkO
		default:
			return Board{}, fmt.Errorf("%w: %q", apperror.ErrInvalidBoardKey, key)
		}
		board[i/BoardSize][i%BoardSize] = cell
	}

	return board, nil
}

func (that *Board) String() string {
	var sb strings.Builder
	for r, row := range that {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}
