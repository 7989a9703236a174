package bots

import (
	"math/rand"
	"time"

	"chessPro/rules"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot uses rng, or a time-seeded source when rng is nil.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomBot{rng: rng}
}

func (b *RandomBot) BestMove(pos rules.Position) rules.Move {
	moves := pos.LegalMoves()
	if len(moves) > 0 {
		return moves[b.rng.Intn(len(moves))]
	}
	return nil
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
