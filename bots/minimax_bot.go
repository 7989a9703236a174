package bots

import (
	"fmt"

	"chessPro/rules"
)

// Score bounds. The largest legitimate evaluation is two kings plus a full
// set of promoted material with table bonuses, well below MaxScore.
const (
	// MaxScore seeds the running best of a node before any child is seen.
	MaxScore = 99999
	// Infinity bounds the root alpha-beta window.
	Infinity = 100000
	// MateScore is returned for a mated side when Searcher.ScoreTerminals is set.
	MateScore = 90000
)

// Stats counts the work done by a Searcher since it was created or Reset.
type Stats struct {
	Nodes    int
	Leaves   int
	Cutoffs  int
	Rejected int
	// Depth is the depth requested by the last BestMove call.
	Depth int
}

// Searcher runs depth-limited minimax with alpha-beta pruning over a
// position it borrows for the duration of a call. A Searcher runs one
// search at a time.
type Searcher struct {
	Evaluator PositionEvaluator
	// ScoreTerminals scores positions without legal moves as mate or
	// stalemate. When false a node without moves keeps its seed value.
	ScoreTerminals bool
	Stats          Stats
}

func NewSearcher() *Searcher {
	return &Searcher{Evaluator: DefaultEvaluator{}}
}

func (s *Searcher) Reset() {
	s.Stats = Stats{}
}

// Search returns the minimax value of pos for the side that moved at the
// root of the search. That side is to move in pos when maximizing is true.
// Cutoffs are fail-hard: a pruned node returns the best value found so far.
func (s *Searcher) Search(pos rules.Position, depth, alpha, beta int, maximizing bool) int {
	s.Stats.Nodes++
	if depth <= 0 {
		s.Stats.Leaves++
		return s.leaf(pos, maximizing)
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 && s.ScoreTerminals {
		return terminalScore(pos, maximizing)
	}

	if maximizing {
		best := -MaxScore
		for _, move := range moves {
			score, ok := s.try(pos, move, depth-1, alpha, beta, false)
			if !ok {
				continue
			}
			best = max(best, score)
			alpha = max(alpha, best)
			if beta <= alpha {
				s.Stats.Cutoffs++
				return best
			}
		}
		return best
	}

	best := MaxScore
	for _, move := range moves {
		score, ok := s.try(pos, move, depth-1, alpha, beta, true)
		if !ok {
			continue
		}
		best = min(best, score)
		beta = min(beta, best)
		if beta <= alpha {
			s.Stats.Cutoffs++
			return best
		}
	}
	return best
}

// try plays move, searches the resulting position and takes the move back
// before returning. A move the engine refuses is reported with ok == false.
func (s *Searcher) try(pos rules.Position, move rules.Move, depth, alpha, beta int, maximizing bool) (score int, ok bool) {
	if err := pos.Apply(move); err != nil {
		s.Stats.Rejected++
		return 0, false
	}
	defer pos.Undo()
	return s.Search(pos, depth, alpha, beta, maximizing), true
}

// BestMove searches every legal move to depth and returns the one with the
// highest score. Ties keep the move generated first. It returns nil only
// when no move can be played.
func (s *Searcher) BestMove(pos rules.Position, depth int) rules.Move {
	depth = max(depth, 1)
	s.Stats.Depth = depth

	var bestMove, firstMove rules.Move
	bestScore := -MaxScore
	for _, move := range pos.LegalMoves() {
		score, ok := s.try(pos, move, depth-1, -Infinity, Infinity, false)
		if !ok {
			continue
		}
		if firstMove == nil {
			firstMove = move
		}
		if score > bestScore {
			bestScore, bestMove = score, move
		}
	}
	if bestMove == nil {
		// Every line scored at the floor; any playable move will do.
		return firstMove
	}
	return bestMove
}

// Minimax is the same search without pruning.
func (s *Searcher) Minimax(pos rules.Position, depth int, maximizing bool) int {
	s.Stats.Nodes++
	if depth <= 0 {
		s.Stats.Leaves++
		return s.leaf(pos, maximizing)
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 && s.ScoreTerminals {
		return terminalScore(pos, maximizing)
	}

	best := MaxScore
	if maximizing {
		best = -MaxScore
	}
	for _, move := range moves {
		if err := pos.Apply(move); err != nil {
			s.Stats.Rejected++
			continue
		}
		score := s.Minimax(pos, depth-1, !maximizing)
		pos.Undo()
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// leaf scores pos for the side that moved at the root: -Evaluate when that
// side is Black, +Evaluate when it is White.
func (s *Searcher) leaf(pos rules.Position, maximizing bool) int {
	eval := s.Evaluator
	if eval == nil {
		eval = DefaultEvaluator{}
	}
	score := eval.Evaluate(pos)
	if rootSide(pos, maximizing) == rules.Black {
		return -score
	}
	return score
}

func rootSide(pos rules.Position, maximizing bool) rules.Color {
	if maximizing {
		return pos.SideToMove()
	}
	return pos.SideToMove().Other()
}

func terminalScore(pos rules.Position, maximizing bool) int {
	if !pos.InCheck() {
		return 0
	}
	if maximizing {
		return -MateScore
	}
	return MateScore
}

// MinimaxBot always searches to a fixed depth.
type MinimaxBot struct {
	Depth    int
	Searcher *Searcher
}

func NewMinimaxBot(depth int) *MinimaxBot {
	return &MinimaxBot{
		Depth:    depth,
		Searcher: NewSearcher(),
	}
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.Depth)
}

func (b *MinimaxBot) BestMove(pos rules.Position) rules.Move {
	if pos == nil {
		return nil
	}
	return b.Searcher.BestMove(pos, b.Depth)
}
