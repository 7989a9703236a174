package openings

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"chessPro/rules"
)

var (
	ErrNoOpening = errors.New("no opening selected")
	ErrNoMove    = errors.New("no legal move between those squares")
)

// Result is the outcome of one attempt in the trainer.
type Result int

const (
	Incorrect Result = iota
	Correct
	// Complete means the attempt was correct and finished the line.
	Complete
)

func (r Result) String() string {
	switch r {
	case Correct:
		return "correct"
	case Complete:
		return "complete"
	}
	return "incorrect"
}

// Trainer walks the player through one opening, accepting only the next
// move of the line.
type Trainer struct {
	opening *Opening
	game    *chess.Game
	step    int
}

func NewTrainer() *Trainer {
	return &Trainer{game: chess.NewGame()}
}

// Start resets the board and selects o.
func (t *Trainer) Start(o Opening) {
	t.opening = &o
	t.game = chess.NewGame()
	t.step = 0
}

func (t *Trainer) Opening() (Opening, bool) {
	if t.opening == nil {
		return Opening{}, false
	}
	return *t.opening, true
}

// Expected is the next move of the line in SAN.
func (t *Trainer) Expected() (string, bool) {
	if t.opening == nil || t.Done() {
		return "", false
	}
	return t.opening.Moves[t.step], true
}

// Step is the number of moves of the line played so far.
func (t *Trainer) Step() int { return t.step }

func (t *Trainer) Done() bool {
	return t.opening != nil && t.step >= len(t.opening.Moves)
}

func (t *Trainer) Position() *chess.Position {
	return t.game.Position()
}

// Targets lists the squares the piece on sq can move to.
func (t *Trainer) Targets(sq rules.Square) []rules.Square {
	var out []rules.Square
	for _, m := range t.game.ValidMoves() {
		if rules.Square(m.S1()) == sq {
			out = append(out, rules.Square(m.S2()))
		}
	}
	return out
}

// Play tries the move from -> to, promoting to a queen. A wrong move leaves
// the board unchanged.
func (t *Trainer) Play(from, to rules.Square) (Result, error) {
	if t.opening == nil {
		return Incorrect, ErrNoOpening
	}
	m, ok := rules.FindMove(rules.FromGame(t.game), from, to)
	if !ok {
		return Incorrect, fmt.Errorf("%w: %s%s", ErrNoMove, from, to)
	}
	san := chess.AlgebraicNotation{}.Encode(t.game.Position(), m.(*chess.Move))
	return t.PlaySAN(san)
}

// PlaySAN tries a move given in SAN.
func (t *Trainer) PlaySAN(san string) (Result, error) {
	want, ok := t.Expected()
	if !ok {
		if t.opening == nil {
			return Incorrect, ErrNoOpening
		}
		return Complete, nil
	}
	if trimSAN(san) != want {
		return Incorrect, nil
	}
	if err := t.game.MoveStr(want); err != nil {
		return Incorrect, fmt.Errorf("opening %q move %d: %w", t.opening.Name, t.step+1, err)
	}
	t.step++
	if t.Done() {
		return Complete, nil
	}
	return Correct, nil
}
