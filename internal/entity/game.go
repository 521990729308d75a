package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const (
	StateInProgress = "in_progress"
	StateWin        = "win"
	StateDraw       = "draw"
)

// HumanMark moves first; the computer always answers with ComputerMark.
const (
	HumanMark    = MarkX
	ComputerMark = MarkO
)

// Outcome is derived from a Board and never stored. Winner and Line are set only for StateWin.
type Outcome struct {
	State  string
	Winner Cell
	Line   Line
}

func (that Outcome) IsFinished() bool {
	return that.State != StateInProgress
}

// Game is one human-vs-computer session.
type Game struct {
	ID    string `json:"id"`
	Board Board  `json:"board"`
	Turn  Cell   `json:"turn"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:   id,
		Turn: HumanMark,
	}
}

// GameFromBoard resumes play at board. X moves first, so the mark counts decide whose turn it is.
func GameFromBoard(id string, board Board) (*Game, error) {
	diff := board.Count(MarkX) - board.Count(MarkO)
	if diff != 0 && diff != 1 {
		return nil, fmt.Errorf("%w: %d X against %d O", apperror.ErrUnreachablePosition, board.Count(MarkX), board.Count(MarkO))
	}

	xWon, oWon := board.Winner(MarkX), board.Winner(MarkO)
	switch {
	case xWon && oWon:
		return nil, fmt.Errorf("%w: both sides have a line", apperror.ErrUnreachablePosition)
	case xWon && diff == 0:
		return nil, fmt.Errorf("%w: O moved after X won", apperror.ErrUnreachablePosition)
	case oWon && diff == 1:
		return nil, fmt.Errorf("%w: X moved after O won", apperror.ErrUnreachablePosition)
	}

	game := &Game{ID: id, Board: board, Turn: HumanMark}
	if diff == 1 {
		game.Turn = ComputerMark
	}

	return game, nil
}

func (that *Game) Outcome() Outcome {
	return that.Board.Outcome()
}

func (that *Game) IsFinished() bool {
	return that.Board.IsTerminal()
}

func (that *Game) IsComputerTurn() bool {
	return !that.IsFinished() && that.Turn == ComputerMark
}
