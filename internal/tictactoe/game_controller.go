package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// MakeTurn applies a move for mark and passes the turn. Rejected moves leave the game unchanged.
func MakeTurn(gameInstance *entity.Game, mark entity.Cell, move entity.Move) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if gameInstance.Turn != mark {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, gameInstance.Turn)
	}

	if err := gameInstance.Board.Place(move, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	updateGameStatus(gameInstance, mark)

	return nil
}

// updateGameStatus - passes the turn unless the move ended the game.
func updateGameStatus(gameInstance *entity.Game, mark entity.Cell) {
	if gameInstance.IsFinished() {
		return
	}

	gameInstance.Turn = mark.Opponent()
}
