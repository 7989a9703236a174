// bot.go
package bots

import "chessPro/rules"

// ChessBot picks a move for the side to move, or nil when there is none.
type ChessBot interface {
	BestMove(pos rules.Position) rules.Move
	Name() string
}

// PositionEvaluator scores a position from White's point of view.
type PositionEvaluator interface {
	Evaluate(pos rules.Position) int
}
