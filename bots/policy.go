package bots

import "fmt"

// Strategy is how a rated bot chooses its move.
type Strategy int

const (
	StrategyRandom Strategy = iota
	StrategyDepth1
	StrategyDepth2
	StrategyDepth3
)

// Lower rating bounds of each band; a band runs up to the next bound.
const (
	Depth1Rating = 600
	Depth2Rating = 1200
	Depth3Rating = 2000
)

// PolicyFor maps any rating to a strategy.
func PolicyFor(rating int) Strategy {
	switch {
	case rating < Depth1Rating:
		return StrategyRandom
	case rating < Depth2Rating:
		return StrategyDepth1
	case rating < Depth3Rating:
		return StrategyDepth2
	}
	return StrategyDepth3
}

// Depth is the search depth of the strategy, 0 for random play.
func (s Strategy) Depth() int {
	return int(s)
}

func (s Strategy) String() string {
	if s == StrategyRandom {
		return "random"
	}
	return fmt.Sprintf("depth %d", s.Depth())
}
