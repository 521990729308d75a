package console

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

func (that *Server) render(game *entity.Game) {
	that.printf("%s\n", renderBoard(&game.Board))
}

func (that *Server) reportOutcome(game *entity.Game) {
	outcome := game.Outcome()

	switch outcome.State {
	case entity.StateWin:
		who := "Computer wins"
		if outcome.Winner == entity.HumanMark {
			who = "You win"
		}
		that.printf("%s on %s! Type 'new' to play again.\n", who, lineName(outcome.Line))
	case entity.StateDraw:
		that.printf("Draw! Type 'new' to play again.\n")
	}
}

// renderBoard draws the grid with 1-based row and column labels.
func renderBoard(board *entity.Board) string {
	var sb strings.Builder

	sb.WriteString("    1   2   3\n")
	for r, row := range board {
		if r > 0 {
			sb.WriteString("   ---+---+---\n")
		}

		sb.WriteByte(byte('1' + r))
		sb.WriteString("  ")
		for c, cell := range row {
			if c > 0 {
				sb.WriteString(" |")
			}
			sb.WriteByte(' ')
			if cell == entity.Empty {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(cell.String())
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func lineName(line entity.Line) string {
	first, last := line[0], line[len(line)-1]

	switch {
	case first.Row == last.Row:
		return "row " + string(rune('1'+first.Row))
	case first.Col == last.Col:
		return "column " + string(rune('1'+first.Col))
	case first.Col == 0:
		return "the diagonal"
	default:
		return "the anti-diagonal"
	}
}
