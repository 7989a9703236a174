package bots

import (
	"fmt"

	"chessPro/rules"
)

// RatedBot plays at the strength PolicyFor assigns to its rating.
type RatedBot struct {
	Rating   int
	Random   *RandomBot
	Searcher *Searcher
}

func NewRatedBot(rating int) *RatedBot {
	return &RatedBot{
		Rating:   rating,
		Random:   NewRandomBot(nil),
		Searcher: NewSearcher(),
	}
}

func (b *RatedBot) Name() string {
	return fmt.Sprintf("Rated %d (%s)", b.Rating, PolicyFor(b.Rating))
}

func (b *RatedBot) BestMove(pos rules.Position) rules.Move {
	return b.MoveByRating(pos, b.Rating)
}

// MoveByRating picks a move at rating without changing b.Rating.
func (b *RatedBot) MoveByRating(pos rules.Position, rating int) rules.Move {
	if pos == nil || len(pos.LegalMoves()) == 0 {
		return nil
	}
	strategy := PolicyFor(rating)
	if strategy == StrategyRandom {
		return b.Random.BestMove(pos)
	}
	return b.Searcher.BestMove(pos, strategy.Depth())
}

// MoveByRating is a one-shot RatedBot.
func MoveByRating(pos rules.Position, rating int) rules.Move {
	return NewRatedBot(rating).BestMove(pos)
}
