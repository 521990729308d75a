package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solo/testing/suite"
)

func TestGameManager_RedisMoveCache(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a session caching moves in Redis
	manager := NewGameManager(st.Logger, st.MoveRepo, minimax.New())
	_, err := manager.HumanTurn(ctx, entity.Move{Row: 0, Col: 0})
	require.NoError(t, err)
	board := manager.Game().Board

	// When: the computer moves
	move, err := manager.ComputerTurn(ctx)
	require.NoError(t, err)

	// Then: the decision is stored under the board it was made for
	raw, err := st.CachedMove(ctx, &board)
	require.NoError(t, err)
	assert.JSONEq(t, `{"row":1,"col":1}`, raw)
	assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)

	// When: a second session reaches the same board
	second := NewGameManager(st.Logger, st.MoveRepo, minimax.New())
	_, err = second.HumanTurn(ctx, entity.Move{Row: 0, Col: 0})
	require.NoError(t, err)

	cached, err := second.ComputerTurn(ctx)

	// Then: it plays the cached move
	require.NoError(t, err)
	assert.Equal(t, move, cached)
}
