package openings

import (
	"sync"

	"github.com/notnil/chess"
	"github.com/notnil/chess/opening"
)

var (
	bookOnce sync.Once
	book     opening.Book
)

func ecoBook() opening.Book {
	bookOnce.Do(func() {
		book = opening.NewBookECO()
	})
	return book
}

// Name is an ECO classification.
type Name struct {
	Code  string
	Title string
}

func (n Name) String() string {
	return n.Code + " " + n.Title
}

// Identify names the deepest ECO line that moves follow.
func Identify(moves []*chess.Move) (Name, bool) {
	if len(moves) == 0 {
		return Name{}, false
	}
	o := ecoBook().Find(moves)
	if o == nil {
		return Name{}, false
	}
	return Name{Code: o.Code(), Title: o.Title()}, true
}

// Continuations counts the ECO lines still reachable from moves.
func Continuations(moves []*chess.Move) int {
	return len(ecoBook().Possible(moves))
}
