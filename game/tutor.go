package game

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"chessPro/bots"
	"chessPro/rules"
)

// Review thresholds, in centipawns of lost evaluation.
const (
	InaccurateLoss = 40
	BadLoss        = 100
	// TutorDepth is the depth of every search the tutor runs.
	TutorDepth = 2
	// tutorWindow is the window used to score a played move.
	tutorWindow = 10000
)

// Verdict grades a move against the best move the tutor found.
type Verdict int

const (
	Good Verdict = iota
	Inaccurate
	Bad
)

func (v Verdict) String() string {
	switch v {
	case Inaccurate:
		return "inaccurate"
	case Bad:
		return "bad"
	}
	return "good"
}

// Message is the text shown to the player for the verdict.
func (v Verdict) Message() string {
	switch v {
	case Inaccurate:
		return "Inaccuracy. There were better moves."
	case Bad:
		return "Dangerous move! You gave away a significant advantage."
	}
	return "Excellent move!"
}

// Feedback is the tutor's review of one move.
type Feedback struct {
	Verdict Verdict
	// Loss is |best - played| as scored by the tutor.
	Loss     int
	Played   rules.Move
	Best     rules.Move
	UserEval int
	BestEval int
	// Reply is the move the tutor expects next, nil when there is none.
	Reply rules.Move
}

func (f Feedback) Message() string {
	return f.Verdict.Message()
}

// Tutor grades moves with a depth-2 search.
type Tutor struct {
	Searcher *bots.Searcher
}

func NewTutor() *Tutor {
	return &Tutor{Searcher: bots.NewSearcher()}
}

// Review grades played in before and leaves before as it found it.
func (t *Tutor) Review(before rules.Position, played rules.Move) (Feedback, error) {
	fb := Feedback{Played: played}
	fb.Best = t.Searcher.BestMove(before, TutorDepth)
	if fb.Best == nil {
		return fb, fmt.Errorf("review %s: %w", played, ErrGameOver)
	}

	var err error
	if fb.UserEval, fb.Reply, err = t.score(before, played, true); err != nil {
		return fb, err
	}
	if fb.BestEval, _, err = t.score(before, fb.Best, false); err != nil {
		return fb, err
	}

	fb.Loss = fb.BestEval - fb.UserEval
	if fb.Loss < 0 {
		fb.Loss = -fb.Loss
	}
	fb.Verdict = grade(fb.Loss)
	return fb, nil
}

func grade(loss int) Verdict {
	switch {
	case loss > BadLoss:
		return Bad
	case loss > InaccurateLoss:
		return Inaccurate
	}
	return Good
}

// score plays m, searches the reply side at TutorDepth and optionally finds
// the best reply before taking m back.
func (t *Tutor) score(pos rules.Position, m rules.Move, withReply bool) (int, rules.Move, error) {
	if err := pos.Apply(m); err != nil {
		return 0, nil, fmt.Errorf("review %s: %w", m, err)
	}
	defer pos.Undo()

	eval := t.Searcher.Search(pos, TutorDepth, -tutorWindow, tutorWindow, false)
	if !withReply {
		return eval, nil, nil
	}
	return eval, t.Searcher.BestMove(pos, TutorDepth), nil
}

// TutorSession is a game where every player move is reviewed before the
// computer answers at the tutor's depth.
type TutorSession struct {
	*Session
	Tutor *Tutor
	last  *Feedback
}

func NewTutorSession(player rules.Color) *TutorSession {
	// Depth 2 is the band starting at bots.Depth2Rating.
	return &TutorSession{
		Session: NewSession(player, bots.Depth2Rating),
		Tutor:   NewTutor(),
	}
}

// PlayerMove reviews from -> to and then plays it.
func (ts *TutorSession) PlayerMove(from, to rules.Square) (*chess.Move, Feedback, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if err := ts.checkPlayerTurn(); err != nil {
		return nil, Feedback{}, err
	}

	before := rules.FromGame(ts.game)
	m, ok := rules.FindMove(before, from, to)
	if !ok {
		return nil, Feedback{}, fmt.Errorf("%w: %s%s", ErrNoSuchMove, from, to)
	}
	fb, err := ts.Tutor.Review(before, m)
	if err != nil && !errors.Is(err, ErrGameOver) {
		return nil, Feedback{}, err
	}
	played, err := ts.play(m.String())
	if err != nil {
		return nil, Feedback{}, err
	}
	ts.last = &fb
	return played, fb, nil
}

// LastFeedback is the review of the player's latest move.
func (ts *TutorSession) LastFeedback() (Feedback, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.last == nil {
		return Feedback{}, false
	}
	return *ts.last, true
}

func (ts *TutorSession) Reset() {
	ts.Session.Reset()
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.last = nil
}
