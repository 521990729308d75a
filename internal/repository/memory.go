package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type memMove struct {
	mu    sync.RWMutex
	moves map[entity.Board]entity.Move
}

// NewMemoryMoveRepository keeps moves in process memory for the lifetime of the app.
func NewMemoryMoveRepository() MoveRepository {
	return &memMove{
		moves: make(map[entity.Board]entity.Move),
	}
}

func (that *memMove) Save(_ context.Context, board *entity.Board, move entity.Move) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves[*board] = move

	return nil
}

func (that *memMove) GetByBoard(_ context.Context, board *entity.Board) (entity.Move, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	move, ok := that.moves[*board]
	if !ok {
		return entity.Move{}, ErrMoveNotFound
	}

	return move, nil
}

type noMove struct{}

// NewNoopMoveRepository never remembers anything; every decision is searched.
func NewNoopMoveRepository() MoveRepository {
	return noMove{}
}

func (noMove) Save(context.Context, *entity.Board, entity.Move) error {
	return nil
}

func (noMove) GetByBoard(context.Context, *entity.Board) (entity.Move, error) {
	return entity.Move{}, ErrMoveNotFound
}
