// Package minimax picks the computer's move by exhaustive minimax search.
//
// MarkO is the maximizing side and MarkX the minimizing side. Scores are
// 1 (O wins), -1 (X wins) and 0 (draw); there is no depth cutoff.
package minimax

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	ScoreWin  = 1
	ScoreDraw = 0
	ScoreLoss = -1

	// below and above every reachable score
	lowerBound = ScoreLoss - 1
	upperBound = ScoreWin + 1
)

// Result is one search decision.
type Result struct {
	Move  entity.Move
	Score int
	// Nodes is the number of positions evaluated, root children included.
	Nodes int
}

type Option func(*Engine)

// WithTranspositionTable memoizes scores per (board, side to move) during one search.
// The chosen move does not change.
func WithTranspositionTable() Option {
	return func(e *Engine) {
		e.transposition = true
	}
}

type Engine struct {
	transposition bool
}

func New(options ...Option) *Engine {
	engine := &Engine{}
	for _, option := range options {
		option(engine)
	}

	return engine
}

// BestMove returns the first row-major empty cell with the highest score for MarkO.
func BestMove(board *entity.Board) (entity.Move, error) {
	result, err := New().Search(board)
	if err != nil {
		return entity.Move{}, err
	}

	return result.Move, nil
}

// Score evaluates board with the given side to move. The board is restored before it returns.
func Score(board *entity.Board, maximizing bool) int {
	s := &search{board: board}
	return s.score(maximizing)
}

// Search evaluates every empty cell for MarkO and keeps the first strictly better one.
func (that *Engine) Search(board *entity.Board) (Result, error) {
	if board.IsTerminal() {
		return Result{}, fmt.Errorf("%w: board is terminal", apperror.ErrNoMoveAvailable)
	}

	s := &search{board: board}
	if that.transposition {
		s.table = make(map[tableKey]int)
	}

	best := Result{Score: lowerBound}
	found := false
	for _, move := range board.EmptyCells() {
		score := s.try(move, entity.MarkO, false)
		if score > best.Score {
			best.Score = score
			best.Move = move
			found = true
		}
	}

	if !found {
		return Result{}, fmt.Errorf("%w: no empty cell", apperror.ErrNoMoveAvailable)
	}

	best.Nodes = s.nodes

	return best, nil
}

type tableKey struct {
	board      entity.Board
	maximizing bool
}

type search struct {
	board *entity.Board
	table map[tableKey]int
	nodes int
}

// try places mark on move, scores the position for the next side and undoes the placement.
func (that *search) try(move entity.Move, mark entity.Cell, maximizing bool) int {
	that.board[move.Row][move.Col] = mark
	defer that.board.Clear(move)

	return that.score(maximizing)
}

func (that *search) score(maximizing bool) int {
	that.nodes++

	switch {
	case that.board.Winner(entity.MarkO):
		return ScoreWin
	case that.board.Winner(entity.MarkX):
		return ScoreLoss
	case that.board.IsFull():
		return ScoreDraw
	}

	var key tableKey
	if that.table != nil {
		key = tableKey{board: *that.board, maximizing: maximizing}
		if score, ok := that.table[key]; ok {
			return score
		}
	}

	var best int
	if maximizing {
		best = lowerBound
		for _, move := range that.board.EmptyCells() {
			best = max(best, that.try(move, entity.MarkO, false))
		}
	} else {
		best = upperBound
		for _, move := range that.board.EmptyCells() {
			best = min(best, that.try(move, entity.MarkX, true))
		}
	}

	if that.table != nil {
		that.table[key] = best
	}

	return best
}
