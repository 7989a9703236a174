// Package rules is the boundary between the bots and a chess rules engine.
// The bots never look at a move beyond applying it, undoing it and printing it.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrForeignMove    = errors.New("rules: move belongs to another engine")
	ErrIllegalMove    = errors.New("rules: illegal move")
	ErrInvalidFEN     = errors.New("rules: invalid FEN")
	ErrUnknownBackend = errors.New("rules: unknown backend")
)

type Color int8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "-"
}

// ParseColor accepts "white", "black", "w" or "b" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("unknown color %q", s)
}

type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	return [...]string{"", "p", "n", "b", "r", "q", "k"}[t]
}

// Piece is a (type, color) pair. The zero value is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

func (p Piece) String() string {
	if p.Color == White {
		return [...]string{"", "P", "N", "B", "R", "Q", "K"}[p.Type]
	}
	return p.Type.String()
}

// Square indexes the board from a1 (0) to h8 (63), rank-major.
type Square int8

const NoSquare Square = -1

func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (sq Square) Rank() int { return int(sq) / 8 }
func (sq Square) File() int { return int(sq) % 8 }

func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank()+1)
}

// Move is produced by a Position and may only be applied to a Position of
// the same engine. String returns UCI long algebraic notation (e2e4, e7e8q).
type Move interface {
	String() string
}

// Position is a mutable game state. Every successful Apply must be paired
// with exactly one Undo by the caller that made it.
type Position interface {
	LegalMoves() []Move
	LegalMovesFrom(sq Square) []Move
	Apply(m Move) error
	Undo()

	PieceAt(sq Square) (Piece, bool)
	SideToMove() Color

	InCheck() bool
	IsCheckmate() bool
	IsStalemate() bool
	IsDraw() bool
	IsGameOver() bool

	FEN() string
	// Depth counts the moves applied and not yet undone.
	Depth() int
}

// Backend names a rules engine adapter.
type Backend string

const (
	BackendNotnil Backend = "notnil"
	BackendDragon Backend = "dragon"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Open builds a position for backend. An empty fen means the start position.
func Open(backend Backend, fen string) (Position, error) {
	switch backend {
	case BackendNotnil, "":
		if fen == "" {
			return NewBoard(), nil
		}
		return ParseFEN(fen)
	case BackendDragon:
		if fen == "" {
			return NewFastBoard(), nil
		}
		return ParseFastFEN(fen)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// decodeFEN parses fen with notnil and requires one king per side, which
// notnil itself does not check.
func decodeFEN(fen string) (func(*chess.Game), error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	placement, _, _ := strings.Cut(strings.TrimSpace(fen), " ")
	if w, b := strings.Count(placement, "K"), strings.Count(placement, "k"); w != 1 || b != 1 {
		return nil, fmt.Errorf("%w: %d white and %d black kings", ErrInvalidFEN, w, b)
	}
	return opt, nil
}

// insufficientMaterial reports bare kings or a lone minor piece against a
// bare king.
func insufficientMaterial(pos Position) bool {
	minors := 0
	for sq := Square(0); sq < 64; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		switch p.Type {
		case King:
		case Knight, Bishop:
			minors++
			if minors > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Snapshot captures everything a caller can observe about a position. Two
// snapshots of an unchanged position compare equal with ==, except Moves
// which must be compared element-wise.
type Snapshot struct {
	FEN     string
	Side    Color
	Squares [64]Piece
	Moves   []string
}

func TakeSnapshot(pos Position) Snapshot {
	s := Snapshot{FEN: pos.FEN(), Side: pos.SideToMove()}
	for sq := Square(0); sq < 64; sq++ {
		s.Squares[sq], _ = pos.PieceAt(sq)
	}
	for _, m := range pos.LegalMoves() {
		s.Moves = append(s.Moves, m.String())
	}
	return s
}

// Equal compares two snapshots including the legal-move list order.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.FEN != o.FEN || s.Side != o.Side || s.Squares != o.Squares || len(s.Moves) != len(o.Moves) {
		return false
	}
	for i := range s.Moves {
		if s.Moves[i] != o.Moves[i] {
			return false
		}
	}
	return true
}

// FindMove returns the legal move from one square to another. A promotion
// picks the queen when several moves share the squares.
func FindMove(pos Position, from, to Square) (Move, bool) {
	var found Move
	for _, m := range pos.LegalMovesFrom(from) {
		s := m.String()
		if s[2:4] != to.String() {
			continue
		}
		if len(s) == 4 || s[4] == 'q' {
			return m, true
		}
		if found == nil {
			found = m
		}
	}
	return found, found != nil
}
