package rules

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
)

// FastBoard adapts dragontoothmg. The board is mutated in place and every
// Apply keeps the unapply closure the library hands back.
type FastBoard struct {
	board   dragontoothmg.Board
	unapply []func()
}

// fastMove wraps dragontoothmg.Move so foreign moves can be told apart from
// an uint16 that happens to look valid.
type fastMove struct {
	m dragontoothmg.Move
}

func (f fastMove) String() string {
	m := f.m
	return m.String()
}

func (f fastMove) from() Square {
	m := f.m
	return Square(m.From())
}

func NewFastBoard() *FastBoard {
	fb, _ := ParseFastFEN(StartFEN)
	return fb
}

// ParseFastFEN validates fen the same way ParseFEN does before handing it
// to dragontoothmg, which does no checking of its own.
func ParseFastFEN(fen string) (*FastBoard, error) {
	if _, err := decodeFEN(fen); err != nil {
		return nil, err
	}
	return &FastBoard{board: dragontoothmg.ParseFen(fen)}, nil
}

func (b *FastBoard) LegalMoves() []Move {
	generated := b.board.GenerateLegalMoves()
	moves := make([]Move, len(generated))
	for i, m := range generated {
		moves[i] = fastMove{m}
	}
	return moves
}

func (b *FastBoard) LegalMovesFrom(sq Square) []Move {
	var moves []Move
	for _, m := range b.board.GenerateLegalMoves() {
		fm := fastMove{m}
		if fm.from() == sq {
			moves = append(moves, fm)
		}
	}
	return moves
}

func (b *FastBoard) Apply(m Move) error {
	fm, ok := m.(fastMove)
	if !ok {
		return fmt.Errorf("%w: %v", ErrForeignMove, m)
	}
	legal := false
	for _, v := range b.board.GenerateLegalMoves() {
		if v == fm.m {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, fm, b.board.ToFen())
	}
	b.unapply = append(b.unapply, b.board.Apply(fm.m))
	return nil
}

func (b *FastBoard) Undo() {
	n := len(b.unapply)
	if n == 0 {
		return
	}
	undo := b.unapply[n-1]
	b.unapply[n-1] = nil
	b.unapply = b.unapply[:n-1]
	undo()
}

func (b *FastBoard) PieceAt(sq Square) (Piece, bool) {
	bit := uint64(1) << uint(sq)
	if t := bitboardType(&b.board.White, bit); t != NoPieceType {
		return Piece{Type: t, Color: White}, true
	}
	if t := bitboardType(&b.board.Black, bit); t != NoPieceType {
		return Piece{Type: t, Color: Black}, true
	}
	return Piece{}, false
}

func bitboardType(bb *dragontoothmg.Bitboards, bit uint64) PieceType {
	if bb.All&bit == 0 {
		return NoPieceType
	}
	switch {
	case bb.Pawns&bit != 0:
		return Pawn
	case bb.Knights&bit != 0:
		return Knight
	case bb.Bishops&bit != 0:
		return Bishop
	case bb.Rooks&bit != 0:
		return Rook
	case bb.Queens&bit != 0:
		return Queen
	case bb.Kings&bit != 0:
		return King
	}
	return NoPieceType
}

func (b *FastBoard) SideToMove() Color {
	if b.board.Wtomove {
		return White
	}
	return Black
}

func (b *FastBoard) InCheck() bool {
	return b.board.OurKingInCheck()
}

func (b *FastBoard) IsCheckmate() bool {
	return b.board.OurKingInCheck() && len(b.board.GenerateLegalMoves()) == 0
}

func (b *FastBoard) IsStalemate() bool {
	return !b.board.OurKingInCheck() && len(b.board.GenerateLegalMoves()) == 0
}

func (b *FastBoard) IsDraw() bool {
	return b.IsStalemate() || insufficientMaterial(b)
}

func (b *FastBoard) IsGameOver() bool {
	return b.IsCheckmate() || b.IsDraw()
}

func (b *FastBoard) FEN() string {
	return b.board.ToFen()
}

func (b *FastBoard) Depth() int {
	return len(b.unapply)
}
