package rules

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// Board adapts notnil/chess. Positions in that library are immutable, so
// the board keeps a stack of them: Apply pushes pos.Update(m), Undo pops.
type Board struct {
	stack []*chess.Position
	moves []*chess.Move
	// rootCheck is computed lazily for the bottom of the stack.
	rootCheck *bool
}

func NewBoard() *Board {
	return FromPosition(chess.StartingPosition())
}

func ParseFEN(fen string) (*Board, error) {
	opt, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return FromPosition(chess.NewGame(opt).Position()), nil
}

func FromPosition(pos *chess.Position) *Board {
	return &Board{stack: []*chess.Position{pos}}
}

// FromGame starts a board at the current position of g. The game itself is
// never modified.
func FromGame(g *chess.Game) *Board {
	b := FromPosition(g.Position())
	if moves := g.Moves(); len(moves) > 0 {
		check := moves[len(moves)-1].HasTag(chess.Check)
		b.rootCheck = &check
	}
	return b
}

// Position returns the notnil position currently on top of the stack.
func (b *Board) Position() *chess.Position {
	return b.stack[len(b.stack)-1]
}

func (b *Board) LegalMoves() []Move {
	valid := b.Position().ValidMoves()
	moves := make([]Move, len(valid))
	for i, m := range valid {
		moves[i] = m
	}
	return moves
}

func (b *Board) LegalMovesFrom(sq Square) []Move {
	var moves []Move
	for _, m := range b.Position().ValidMoves() {
		if m.S1() == chess.Square(sq) {
			moves = append(moves, m)
		}
	}
	return moves
}

func (b *Board) Apply(m Move) error {
	cm, ok := m.(*chess.Move)
	if !ok || cm == nil {
		return fmt.Errorf("%w: %v", ErrForeignMove, m)
	}
	pos := b.Position()
	legal := b.match(pos, cm)
	if legal == nil {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, cm, pos)
	}
	b.stack = append(b.stack, pos.Update(legal))
	b.moves = append(b.moves, legal)
	return nil
}

// match returns the legal move equal to m, carrying the engine's own tags.
func (b *Board) match(pos *chess.Position, m *chess.Move) *chess.Move {
	valid := pos.ValidMoves()
	for _, v := range valid {
		if v == m {
			return v
		}
	}
	for _, v := range valid {
		if v.S1() == m.S1() && v.S2() == m.S2() && v.Promo() == m.Promo() {
			return v
		}
	}
	return nil
}

func (b *Board) Undo() {
	if len(b.moves) == 0 {
		return
	}
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
	b.moves = b.moves[:len(b.moves)-1]
}

func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.Position().Board().Piece(chess.Square(sq))
	if p == chess.NoPiece {
		return Piece{}, false
	}
	return Piece{Type: fromChessType(p.Type()), Color: fromChessColor(p.Color())}, true
}

func (b *Board) SideToMove() Color {
	return fromChessColor(b.Position().Turn())
}

func (b *Board) InCheck() bool {
	if n := len(b.moves); n > 0 {
		return b.moves[n-1].HasTag(chess.Check)
	}
	if b.rootCheck == nil {
		// notnil keeps the check flag private; ask dragontoothmg instead.
		db := dragontoothmg.ParseFen(b.Position().String())
		check := db.OurKingInCheck()
		b.rootCheck = &check
	}
	return *b.rootCheck
}

func (b *Board) IsCheckmate() bool {
	return b.Position().Status() == chess.Checkmate
}

func (b *Board) IsStalemate() bool {
	return b.Position().Status() == chess.Stalemate
}

func (b *Board) IsDraw() bool {
	return b.IsStalemate() || insufficientMaterial(b)
}

func (b *Board) IsGameOver() bool {
	return b.IsCheckmate() || b.IsDraw()
}

func (b *Board) FEN() string {
	return b.Position().String()
}

// Depth is the number of moves applied since the board was created.
func (b *Board) Depth() int {
	return len(b.moves)
}

func fromChessColor(c chess.Color) Color {
	switch c {
	case chess.White:
		return White
	case chess.Black:
		return Black
	}
	return NoColor
}

func fromChessType(t chess.PieceType) PieceType {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoPieceType
}

// ChessColor converts back to the notnil color.
func ChessColor(c Color) chess.Color {
	switch c {
	case White:
		return chess.White
	case Black:
		return chess.Black
	}
	return chess.NoColor
}
