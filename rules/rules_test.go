package rules

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

const (
	foolsMateFEN  = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN  = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	knightOnlyFEN = "8/8/8/4k3/8/8/8/4K2N w - - 0 1"
	pawnFEN       = "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1"
)

var backends = []Backend{BackendNotnil, BackendDragon}

func open(t *testing.T, backend Backend, fen string) Position {
	t.Helper()
	pos, err := Open(backend, fen)
	if err != nil {
		t.Fatalf("Open(%s, %q) failed: %v", backend, fen, err)
	}
	return pos
}

func TestSquare(t *testing.T) {
	tests := []struct {
		file, rank int
		want       string
	}{
		{0, 0, "a1"},
		{7, 7, "h8"},
		{4, 1, "e2"},
		{3, 3, "d4"},
	}
	for _, tt := range tests {
		sq := NewSquare(tt.file, tt.rank)
		if sq.String() != tt.want {
			t.Errorf("NewSquare(%d, %d) = %s, want %s", tt.file, tt.rank, sq, tt.want)
		}
		if sq.File() != tt.file || sq.Rank() != tt.rank {
			t.Errorf("%s: file/rank = %d/%d, want %d/%d", sq, sq.File(), sq.Rank(), tt.file, tt.rank)
		}
		// Both engines index squares the same way.
		if chess.NewSquare(chess.File(tt.file), chess.Rank(tt.rank)) != chess.Square(sq) {
			t.Errorf("%s does not match the notnil square index", sq)
		}
	}
}

func TestStartingPosition(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			pos := open(t, backend, "")
			if n := len(pos.LegalMoves()); n != 20 {
				t.Errorf("expected 20 legal moves, got %d", n)
			}
			if pos.SideToMove() != White {
				t.Errorf("expected White to move, got %s", pos.SideToMove())
			}
			if p, ok := pos.PieceAt(NewSquare(4, 0)); !ok || p != (Piece{King, White}) {
				t.Errorf("e1 = %v, %v; want white king", p, ok)
			}
			if p, ok := pos.PieceAt(NewSquare(3, 7)); !ok || p != (Piece{Queen, Black}) {
				t.Errorf("d8 = %v, %v; want black queen", p, ok)
			}
			if _, ok := pos.PieceAt(NewSquare(4, 3)); ok {
				t.Error("e4 should be empty")
			}
			if pos.InCheck() || pos.IsGameOver() {
				t.Error("start position is neither check nor game over")
			}
			if got := len(pos.LegalMovesFrom(NewSquare(4, 1))); got != 2 {
				t.Errorf("expected 2 moves from e2, got %d", got)
			}
			if got := len(pos.LegalMovesFrom(NewSquare(4, 3))); got != 0 {
				t.Errorf("expected no moves from an empty square, got %d", got)
			}
		})
	}
}

func TestApplyUndoRestores(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			pos := open(t, backend, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
			before := TakeSnapshot(pos)

			for _, m := range pos.LegalMoves() {
				if err := pos.Apply(m); err != nil {
					t.Fatalf("Apply(%s) failed: %v", m, err)
				}
				if pos.SideToMove() != Black {
					t.Fatalf("after %s expected Black to move", m)
				}
				for _, reply := range pos.LegalMoves()[:3] {
					if err := pos.Apply(reply); err != nil {
						t.Fatalf("Apply(%s %s) failed: %v", m, reply, err)
					}
					if pos.Depth() != 2 {
						t.Fatalf("depth after %s %s = %d", m, reply, pos.Depth())
					}
					pos.Undo()
				}
				pos.Undo()
			}
			if pos.Depth() != 0 {
				t.Errorf("depth after undoing everything = %d", pos.Depth())
			}

			if after := TakeSnapshot(pos); !after.Equal(before) {
				t.Errorf("position changed:\nbefore %s\nafter  %s", before.FEN, after.FEN)
			}
		})
	}
}

func TestNewBoards(t *testing.T) {
	if got := NewBoard().FEN(); got != StartFEN {
		t.Errorf("NewBoard FEN = %q", got)
	}
	fb, err := ParseFastFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if got := NewFastBoard().FEN(); got != fb.FEN() {
		t.Errorf("NewFastBoard FEN = %q, want %q", got, fb.FEN())
	}
	for _, pos := range []Position{NewBoard(), NewFastBoard()} {
		if pos.Depth() != 0 || len(pos.LegalMoves()) != 20 {
			t.Errorf("%T: depth %d, %d moves", pos, pos.Depth(), len(pos.LegalMoves()))
		}
	}
}

func TestUndoOnEmptyStack(t *testing.T) {
	for _, backend := range backends {
		pos := open(t, backend, "")
		before := pos.FEN()
		pos.Undo()
		if pos.FEN() != before {
			t.Errorf("%s: Undo with nothing applied changed the position", backend)
		}
	}
}

func TestApplyRejects(t *testing.T) {
	notnil := open(t, BackendNotnil, "")
	dragon := open(t, BackendDragon, "")

	t.Run("foreign", func(t *testing.T) {
		if err := notnil.Apply(dragon.LegalMoves()[0]); !errors.Is(err, ErrForeignMove) {
			t.Errorf("notnil accepted a dragon move: %v", err)
		}
		if err := dragon.Apply(notnil.LegalMoves()[0]); !errors.Is(err, ErrForeignMove) {
			t.Errorf("dragon accepted a notnil move: %v", err)
		}
	})

	t.Run("illegal", func(t *testing.T) {
		for _, pos := range []Position{notnil, dragon} {
			e4, ok := FindMove(pos, NewSquare(4, 1), NewSquare(4, 3))
			if !ok {
				t.Fatal("e2e4 not found")
			}
			if err := pos.Apply(e4); err != nil {
				t.Fatalf("Apply(e2e4) failed: %v", err)
			}
			// Same move again: e2 is empty now.
			if err := pos.Apply(e4); !errors.Is(err, ErrIllegalMove) {
				t.Errorf("expected ErrIllegalMove, got %v", err)
			}
			pos.Undo()
			if pos.SideToMove() != White {
				t.Error("rejected move must not be pushed")
			}
		}
	})
}

func TestTerminalPositions(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			mate := open(t, backend, foolsMateFEN)
			if !mate.IsCheckmate() || !mate.InCheck() || !mate.IsGameOver() {
				t.Error("fool's mate not detected")
			}
			if len(mate.LegalMoves()) != 0 {
				t.Error("checkmated side has legal moves")
			}

			stale := open(t, backend, stalemateFEN)
			if !stale.IsStalemate() || stale.IsCheckmate() || stale.InCheck() {
				t.Error("stalemate not detected")
			}
			if !stale.IsDraw() || !stale.IsGameOver() {
				t.Error("stalemate should be a draw")
			}

			if !open(t, backend, knightOnlyFEN).IsDraw() {
				t.Error("king and knight against king is a draw")
			}
			if open(t, backend, pawnFEN).IsDraw() {
				t.Error("a pawn is mating material")
			}
		})
	}
}

func TestCheckAfterMove(t *testing.T) {
	for _, backend := range backends {
		pos := open(t, backend, "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
		qh4, ok := FindMove(pos, NewSquare(3, 7), NewSquare(7, 3))
		if !ok {
			t.Fatalf("%s: Qh4 not found", backend)
		}
		if err := pos.Apply(qh4); err != nil {
			t.Fatalf("%s: %v", backend, err)
		}
		if !pos.InCheck() || !pos.IsCheckmate() {
			t.Errorf("%s: Qh4 should mate", backend)
		}
		pos.Undo()
		if pos.InCheck() {
			t.Errorf("%s: check flag leaked after Undo", backend)
		}
	}
}

func TestFindMovePromotion(t *testing.T) {
	for _, backend := range backends {
		pos := open(t, backend, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
		m, ok := FindMove(pos, NewSquare(4, 6), NewSquare(4, 7))
		if !ok {
			t.Fatalf("%s: e7e8 not found", backend)
		}
		if m.String() != "e7e8q" {
			t.Errorf("%s: expected queen promotion, got %s", backend, m)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open("stockfish", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
	bad := []string{
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"rnbqkxnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/4k3/8/8/8/R7 w - - 0 1",
		"4k3/8/8/4k3/8/8/8/4K3 w - - 0 1",
	}
	for _, backend := range backends {
		for _, fen := range bad {
			if _, err := Open(backend, fen); !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("%s %q: expected ErrInvalidFEN, got %v", backend, fen, err)
			}
		}
	}
}

func TestFromGame(t *testing.T) {
	g := chess.NewGame()
	for _, san := range []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6", "Qxf7"} {
		if err := g.MoveStr(san); err != nil {
			t.Fatalf("MoveStr(%s): %v", san, err)
		}
	}
	b := FromGame(g)
	if !b.IsCheckmate() || !b.InCheck() {
		t.Error("scholar's mate not detected from game")
	}
	if b.FEN() != g.Position().String() {
		t.Errorf("FEN mismatch: %s vs %s", b.FEN(), g.Position().String())
	}
	if b.Depth() != 0 {
		t.Errorf("fresh board depth = %d", b.Depth())
	}
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]Color{"white": White, "W": White, "Black": Black, "b": Black} {
		if got, err := ParseColor(in); err != nil || got != want {
			t.Errorf("ParseColor(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseColor("green"); err == nil {
		t.Error("accepted green")
	}
}
