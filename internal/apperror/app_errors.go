package apperror

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrNoMoveAvailable = errors.New("no move available")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")

	ErrInvalidBoardKey     = errors.New("invalid board key")
	ErrUnreachablePosition = errors.New("position cannot arise in play")
)
