// Package game drives a human against the rated bot over a notnil/chess game
// and reviews the human's moves in the tutor.
package game

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/notnil/chess"

	"chessPro/bots"
	"chessPro/openings"
	"chessPro/rules"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("it is the computer's turn")
	ErrPlayersTurn = errors.New("it is the player's turn")
	ErrNoSuchMove  = errors.New("no legal move between those squares")
	ErrStale       = errors.New("game changed during the search")
)

// Session is one game between the player and the computer. It is safe to
// run ComputerMove on another goroutine while the UI reads the state.
type Session struct {
	mu      sync.Mutex
	game    *chess.Game
	player  rules.Color
	rating  int
	backend rules.Backend
	bot     *bots.RatedBot
}

func NewSession(player rules.Color, rating int) *Session {
	return &Session{
		game:    chess.NewGame(),
		player:  player,
		rating:  rating,
		backend: rules.BackendNotnil,
		bot:     bots.NewRatedBot(rating),
	}
}

// SetBackend chooses the rules engine the computer searches with. The game
// record itself always stays in notnil/chess.
func (s *Session) SetBackend(backend rules.Backend) error {
	if _, err := rules.Open(backend, ""); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = backend
	return nil
}

// Reset starts a new game. The player's color and the rating are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = chess.NewGame()
}

func (s *Session) SetRating(rating int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rating = rating
	s.bot.Rating = rating
}

func (s *Session) Rating() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rating
}

// SetPlayerColor switches sides and starts a new game.
func (s *Session) SetPlayerColor(c rules.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = c
	s.game = chess.NewGame()
}

func (s *Session) PlayerColor() rules.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

func (s *Session) Strategy() bots.Strategy {
	return bots.PolicyFor(s.Rating())
}

func (s *Session) Position() *chess.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Position()
}

func (s *Session) IsGameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver()
}

func (s *Session) gameOver() bool {
	return s.game.Outcome() != chess.NoOutcome || claimableDraw(s.game) || rules.FromGame(s.game).IsGameOver()
}

// claimableDraw reports a threefold repetition or a fifty-move draw. notnil
// only ends the game by itself at fivefold and seventy-five moves.
func claimableDraw(g *chess.Game) bool {
	for _, m := range g.EligibleDraws() {
		if m == chess.ThreefoldRepetition || m == chess.FiftyMoveRule {
			return true
		}
	}
	return false
}

func (s *Session) IsPlayerTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerTurn()
}

func (s *Session) playerTurn() bool {
	return !s.gameOver() && s.game.Position().Turn() == rules.ChessColor(s.player)
}

// SelectableTargets lists where the player's piece on sq may go. It is empty
// when it is not the player's turn.
func (s *Session) SelectableTargets(sq rules.Square) []rules.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playerTurn() {
		return nil
	}
	var out []rules.Square
	for _, m := range rules.FromGame(s.game).LegalMovesFrom(sq) {
		out = append(out, targetOf(m))
	}
	return out
}

func targetOf(m rules.Move) rules.Square {
	str := m.String()
	return rules.NewSquare(int(str[2]-'a'), int(str[3]-'1'))
}

// PlayerMove plays from -> to for the player, promoting to a queen.
func (s *Session) PlayerMove(from, to rules.Square) (*chess.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPlayerTurn(); err != nil {
		return nil, err
	}
	m, ok := rules.FindMove(rules.FromGame(s.game), from, to)
	if !ok {
		return nil, fmt.Errorf("%w: %s%s", ErrNoSuchMove, from, to)
	}
	return s.play(m.String())
}

// PlayerMoveSAN plays a move given in standard algebraic notation.
func (s *Session) PlayerMoveSAN(san string) (*chess.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPlayerTurn(); err != nil {
		return nil, err
	}
	m, err := chess.AlgebraicNotation{}.Decode(s.game.Position(), san)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSuchMove, err)
	}
	return m, s.game.Move(m)
}

func (s *Session) checkPlayerTurn() error {
	if s.gameOver() {
		return ErrGameOver
	}
	if s.game.Position().Turn() != rules.ChessColor(s.player) {
		return ErrNotYourTurn
	}
	return nil
}

// play finds the game's own move for a UCI string and plays it.
func (s *Session) play(uci string) (*chess.Move, error) {
	for _, m := range s.game.ValidMoves() {
		if m.String() == uci {
			return m, s.game.Move(m)
		}
	}
	return nil, fmt.Errorf("%w: %s", rules.ErrIllegalMove, uci)
}

// ComputerMove asks the rated bot for a move and plays it. It returns nil
// without error when the bot has no move. The search runs without holding
// the session lock; only one ComputerMove may run at a time.
func (s *Session) ComputerMove() (*chess.Move, error) {
	s.mu.Lock()
	if err := s.checkComputerTurn(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	g, plies, rating := s.game, len(s.game.Moves()), s.rating
	pos, err := s.searchPosition()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	m := s.bot.MoveByRating(pos, rating)
	if m == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game != g || len(g.Moves()) != plies {
		return nil, ErrStale
	}
	played, err := s.play(m.String())
	if err != nil {
		log.Printf("computer move %s rejected: %v", m, err)
		return nil, err
	}
	return played, nil
}

func (s *Session) checkComputerTurn() error {
	if s.gameOver() {
		return ErrGameOver
	}
	if s.game.Position().Turn() == rules.ChessColor(s.player) {
		return ErrPlayersTurn
	}
	return nil
}

func (s *Session) searchPosition() (rules.Position, error) {
	if s.backend == rules.BackendNotnil {
		return rules.FromGame(s.game), nil
	}
	return rules.Open(s.backend, s.game.Position().String())
}

// History returns the moves played so far in SAN.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return history(s.game)
}

func history(g *chess.Game) []string {
	positions := g.Positions()
	moves := g.Moves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = chess.AlgebraicNotation{}.Encode(positions[i], m)
	}
	return out
}

// Moves returns the moves played so far.
func (s *Session) Moves() []*chess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Moves()
}

// Status is the one-line state shown above the board.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return status(s.game)
}

func status(g *chess.Game) string {
	b := rules.FromGame(g)
	switch {
	case b.IsCheckmate():
		return fmt.Sprintf("Checkmate! %s wins.", b.SideToMove().Other())
	case b.IsDraw() || g.Outcome() == chess.Draw || claimableDraw(g):
		return "Draw!"
	case b.InCheck():
		return "Check!"
	}
	return fmt.Sprintf("%s to move", b.SideToMove())
}

// Outcome reports the result once the game is over. Won is from the
// player's side.
func (s *Session) Outcome() (over, won, draw bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gameOver() {
		return false, false, false
	}
	b := rules.FromGame(s.game)
	if b.IsCheckmate() {
		return true, b.SideToMove() != s.player, false
	}
	return true, false, true
}

// Opening names the ECO line the game has followed, if any.
func (s *Session) Opening() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := openings.Identify(s.game.Moves())
	if !ok {
		return ""
	}
	return name.String()
}

// BookLines counts the ECO lines that still continue from the game's moves.
func (s *Session) BookLines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return openings.Continuations(s.game.Moves())
}

// PGN is the game record in PGN movetext.
func (s *Session) PGN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.game.String())
}
