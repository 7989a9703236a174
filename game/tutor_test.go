package game

import (
	"testing"

	"chessPro/rules"
)

const freeQueenFEN = "4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1"

func TestGrade(t *testing.T) {
	tests := []struct {
		loss int
		want Verdict
	}{
		{0, Good},
		{40, Good},
		{41, Inaccurate},
		{100, Inaccurate},
		{101, Bad},
		{5000, Bad},
	}
	for _, tt := range tests {
		if got := grade(tt.loss); got != tt.want {
			t.Errorf("grade(%d) = %s, want %s", tt.loss, got, tt.want)
		}
	}
}

func TestReview(t *testing.T) {
	tests := []struct {
		name    string
		from    rules.Square
		to      rules.Square
		verdict Verdict
	}{
		{"takes the queen", rules.NewSquare(2, 2), rules.NewSquare(3, 4), Good},
		{"ignores the queen", rules.NewSquare(4, 0), rules.NewSquare(5, 0), Bad},
	}
	for _, tt := range tests {
		for _, backend := range []rules.Backend{rules.BackendNotnil, rules.BackendDragon} {
			t.Run(tt.name+"/"+string(backend), func(t *testing.T) {
				pos, err := rules.Open(backend, freeQueenFEN)
				if err != nil {
					t.Fatal(err)
				}
				before := rules.TakeSnapshot(pos)
				played, ok := rules.FindMove(pos, tt.from, tt.to)
				if !ok {
					t.Fatalf("move %s%s not found", tt.from, tt.to)
				}

				fb, err := NewTutor().Review(pos, played)
				if err != nil {
					t.Fatal(err)
				}
				if fb.Verdict != tt.verdict {
					t.Errorf("verdict %s (loss %d), want %s", fb.Verdict, fb.Loss, tt.verdict)
				}
				if fb.Best == nil || fb.Best.String() != "c3d5" {
					t.Errorf("best = %v", fb.Best)
				}
				if fb.Reply == nil {
					t.Error("no expected reply")
				}
				if fb.Message() == "" {
					t.Error("empty message")
				}
				if after := rules.TakeSnapshot(pos); !after.Equal(before) {
					t.Errorf("review changed the position: %s", after.FEN)
				}
			})
		}
	}
}

func TestTutorSession(t *testing.T) {
	ts := NewTutorSession(rules.White)
	if _, ok := ts.LastFeedback(); ok {
		t.Error("feedback before any move")
	}

	m, fb, err := ts.PlayerMove(e2, e4)
	if err != nil || m == nil {
		t.Fatalf("PlayerMove = %v, %v", m, err)
	}
	if fb.Best == nil || fb.Reply == nil {
		t.Errorf("incomplete feedback %+v", fb)
	}
	if got, ok := ts.LastFeedback(); !ok || got.Verdict != fb.Verdict {
		t.Error("feedback not kept")
	}
	if ts.Strategy().Depth() != TutorDepth {
		t.Errorf("tutor opponent plays %s", ts.Strategy())
	}

	reply, err := ts.ComputerMove()
	if err != nil || reply == nil {
		t.Fatalf("ComputerMove = %v, %v", reply, err)
	}
	if reply.String() != fb.Reply.String() {
		t.Errorf("computer played %s, tutor expected %s", reply, fb.Reply)
	}

	ts.Reset()
	if _, ok := ts.LastFeedback(); ok {
		t.Error("Reset kept feedback")
	}
	if len(ts.History()) != 0 {
		t.Error("Reset kept moves")
	}
}
