// Package openings holds the named opening lines the trainer drills and
// names positions through the ECO book that ships with notnil/chess.
package openings

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Opening is a named line in standard algebraic notation, starting from the
// initial position. Check and mate suffixes are never written.
type Opening struct {
	Name        string
	Moves       []string
	Description string
}

var catalogue = []Opening{
	{"Italian Game", []string{"e4", "e5", "Nf3", "Nc6", "Bc4"}, "Fast development and control of the centre."},
	{"Sicilian Defence", []string{"e4", "c5"}, "An aggressive, asymmetrical answer to 1.e4."},
	{"Ruy Lopez", []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}, "One of the oldest and deepest openings in chess."},
	{"French Defence", []string{"e4", "e6"}, "Solid and counter-attacking, built around the pawn chain."},
	{"Caro-Kann Defence", []string{"e4", "c6"}, "Very solid, aiming for a favourable endgame."},
	{"Queen's Gambit", []string{"d4", "d5", "c4"}, "A temporary pawn sacrifice for central control."},
	{"King's Indian Defence", []string{"d4", "Nf6", "c4", "g6"}, "Hypermodern: concede the centre now, strike at it later."},
	{"English Opening", []string{"c4"}, "Flexible and positional, controlling d5 from the flank."},
	{"Scandinavian Defence", []string{"e4", "d5"}, "Challenges the central pawn at once."},
	{"Pirc Defence", []string{"e4", "d6", "d4", "Nf6"}, "The King's Indian idea against 1.e4."},
	{"Alekhine's Defence", []string{"e4", "Nf6"}, "Provocative, inviting White's pawns forward."},
	{"Stonewall Attack", []string{"d4", "d5", "e3", "Nf6", "Bd3", "c6", "f4"}, "A rigid pawn wall on the dark squares."},
	{"London System", []string{"d4", "Nf6", "Bf4"}, "A universal and solid setup for White."},
	{"Bird's Opening", []string{"f4"}, "An aggressive flank opening on the kingside."},
	{"Vienna Game", []string{"e4", "e5", "Nc3"}, "Develops the queen's knight before pushing f4."},
}

// Catalogue returns a copy of the built-in lines in display order.
func Catalogue() []Opening {
	out := make([]Opening, len(catalogue))
	for i, o := range catalogue {
		o.Moves = slices.Clone(o.Moves)
		out[i] = o
	}
	return out
}

// Find looks an opening up by name, ignoring case.
func Find(name string) (Opening, bool) {
	i := slices.IndexFunc(catalogue, func(o Opening) bool {
		return strings.EqualFold(o.Name, name)
	})
	if i < 0 {
		return Opening{}, false
	}
	o := catalogue[i]
	o.Moves = slices.Clone(o.Moves)
	return o, true
}

// Matching returns the lines that history is a prefix of, or that are a
// prefix of history. Moves are compared without check suffixes.
func Matching(history []string) []Opening {
	played := make([]string, len(history))
	for i, san := range history {
		played[i] = trimSAN(san)
	}
	var out []Opening
	for _, o := range catalogue {
		n := min(len(played), len(o.Moves))
		if slices.Equal(played[:n], o.Moves[:n]) {
			out = append(out, o)
		}
	}
	return out
}

func trimSAN(san string) string {
	return strings.TrimRight(san, "+#")
}
