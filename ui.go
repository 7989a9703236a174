package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"

	"chessPro/bots"
	"chessPro/game"
	"chessPro/openings"
	"chessPro/rules"
	"chessPro/storage"
)

const (
	screenWidth  = 1000
	screenHeight = 720
	squareSize   = 80
	boardOffsetX = 20
	boardOffsetY = 60
	panelX       = boardOffsetX + 8*squareSize + 30
	tabWidth     = 120
	tabHeight    = 32

	maxRating  = 3000
	ratingStep = 100
)

var (
	lightSquare  = color.RGBA{240, 217, 181, 255}
	darkSquare   = color.RGBA{181, 136, 99, 255}
	selectColor  = color.RGBA{255, 255, 0, 100}
	hintColor    = color.RGBA{0, 0, 0, 40}
	suggestColor = color.RGBA{255, 255, 0, 70}
	panelColor   = color.RGBA{24, 24, 27, 255}
	textColor    = color.RGBA{228, 228, 231, 255}
	mutedColor   = color.RGBA{161, 161, 170, 255}
	accentColor  = color.RGBA{79, 70, 229, 255}
	goodColor    = color.RGBA{52, 211, 153, 255}
	warnColor    = color.RGBA{251, 191, 36, 255}
	badColor     = color.RGBA{248, 113, 113, 255}
)

type view int

const (
	viewPlay view = iota
	viewTutor
	viewOpenings
)

var viewNames = [...]string{"Play", "Tutor", "Openings"}

// Game is the ebiten application: one board shared by three views.
type Game struct {
	view view

	play    *game.Session
	tutor   *game.TutorSession
	trainer *openings.Trainer
	lines   []openings.Opening

	sprites  *spriteSet
	selected rules.Square
	targets  []rules.Square
	message  string
	feedback *game.Feedback
	result   openings.Result
	tried    bool

	botThinking bool
	botMutex    sync.Mutex

	store    *storage.Storage
	prefs    *storage.Preferences
	stats    *storage.Stats
	recorded bool
}

func NewGame(prefs *storage.Preferences, store *storage.Storage) *Game {
	side, err := rules.ParseColor(prefs.PlayerColor)
	if err != nil {
		side = rules.White
	}
	g := &Game{
		play:     game.NewSession(side, prefs.Rating),
		tutor:    game.NewTutorSession(rules.White),
		trainer:  openings.NewTrainer(),
		lines:    openings.Catalogue(),
		sprites:  newSpriteSet(squareSize),
		selected: rules.NoSquare,
		store:    store,
		prefs:    prefs,
	}
	if err := g.play.SetBackend(rules.Backend(prefs.Backend)); err != nil {
		log.Printf("backend %q: %v, using notnil", prefs.Backend, err)
	}
	if store != nil {
		if g.stats, err = store.LoadStats(); err != nil {
			log.Printf("load stats: %v", err)
		}
	}
	return g
}

// session is the game on screen in the play and tutor views.
func (g *Game) session() *game.Session {
	if g.view == viewTutor {
		return g.tutor.Session
	}
	return g.play
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case y < boardOffsetY-10:
			g.clickTab(x)
		case x >= panelX:
			g.clickPanel(x, y)
		default:
			if sq, ok := squareAt(x, y, g.flipped()); ok {
				g.clickSquare(sq)
			}
		}
	}

	if g.view == viewPlay {
		g.updateRatingKeys()
		g.recordFinishedGame()
	}
	if g.view != viewOpenings {
		g.maybeStartBot()
	}
	return nil
}

func (g *Game) clickTab(x int) {
	i := (x - boardOffsetX) / (tabWidth + 10)
	if x < boardOffsetX || i >= len(viewNames) {
		return
	}
	g.view = view(i)
	g.clearSelection()
	g.message = ""
}

func (g *Game) updateRatingKeys() {
	rating := g.play.Rating()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		rating = min(rating+ratingStep, maxRating)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		rating = max(rating-ratingStep, 0)
	default:
		return
	}
	g.play.SetRating(rating)
	g.prefs.Rating = rating
	g.savePreferences()
}

// flipped draws Black at the bottom.
func (g *Game) flipped() bool {
	return g.view == viewPlay && g.play.PlayerColor() == rules.Black
}

func squareAt(x, y int, flipped bool) (rules.Square, bool) {
	x -= boardOffsetX
	y -= boardOffsetY
	if x < 0 || x >= squareSize*8 || y < 0 || y >= squareSize*8 {
		return rules.NoSquare, false
	}
	file, rank := x/squareSize, 7-y/squareSize
	if flipped {
		file, rank = 7-file, 7-rank
	}
	return rules.NewSquare(file, rank), true
}

func squareOrigin(sq rules.Square, flipped bool) (float32, float32) {
	file, row := sq.File(), 7-sq.Rank()
	if flipped {
		file, row = 7-file, 7-row
	}
	return float32(boardOffsetX + file*squareSize), float32(boardOffsetY + row*squareSize)
}

func (g *Game) clearSelection() {
	g.selected = rules.NoSquare
	g.targets = nil
}

func (g *Game) isTarget(sq rules.Square) bool {
	for _, t := range g.targets {
		if t == sq {
			return true
		}
	}
	return false
}

func (g *Game) clickSquare(sq rules.Square) {
	if sq == g.selected {
		g.clearSelection()
		return
	}
	if g.selected != rules.NoSquare && g.isTarget(sq) {
		from := g.selected
		g.clearSelection()
		g.move(from, sq)
		return
	}
	g.selected = sq
	g.targets = g.selectableTargets(sq)
	if len(g.targets) == 0 {
		g.clearSelection()
	}
}

func (g *Game) selectableTargets(sq rules.Square) []rules.Square {
	if g.view == viewOpenings {
		if g.trainer.Done() {
			return nil
		}
		return g.trainer.Targets(sq)
	}
	if g.isBotThinking() {
		return nil
	}
	return g.session().SelectableTargets(sq)
}

func (g *Game) move(from, to rules.Square) {
	switch g.view {
	case viewPlay:
		if _, err := g.play.PlayerMove(from, to); err != nil {
			log.Printf("player move: %v", err)
		}
	case viewTutor:
		_, fb, err := g.tutor.PlayerMove(from, to)
		if err != nil {
			log.Printf("tutor move: %v", err)
			return
		}
		g.feedback = &fb
	case viewOpenings:
		res, err := g.trainer.Play(from, to)
		if err != nil {
			g.message = err.Error()
			return
		}
		g.result, g.tried = res, true
		g.message = g.trainerMessage()
	}
}

func (g *Game) trainerMessage() string {
	switch g.result {
	case openings.Complete:
		return "Line complete!"
	case openings.Correct:
		next, _ := g.trainer.Expected()
		return "Correct! Next: " + next
	}
	want, _ := g.trainer.Expected()
	return "Incorrect. Expected " + want + "."
}

func (g *Game) isBotThinking() bool {
	g.botMutex.Lock()
	defer g.botMutex.Unlock()
	return g.botThinking
}

func (g *Game) maybeStartBot() {
	s := g.session()
	if s.IsGameOver() || s.IsPlayerTurn() {
		return
	}
	g.botMutex.Lock()
	defer g.botMutex.Unlock()
	if g.botThinking {
		return
	}
	g.botThinking = true
	delay := 300 * time.Millisecond
	if g.view == viewTutor {
		delay = 800 * time.Millisecond
	}
	go func() {
		time.Sleep(delay)
		g.makeBotMove(s)
	}()
}

func (g *Game) makeBotMove(s *game.Session) {
	defer func() {
		g.botMutex.Lock()
		g.botThinking = false
		g.botMutex.Unlock()
	}()
	if _, err := s.ComputerMove(); err != nil && !errors.Is(err, game.ErrPlayersTurn) && !errors.Is(err, game.ErrStale) {
		log.Printf("bot move error: %v", err)
	}
}

func (g *Game) clickPanel(x, y int) {
	switch g.view {
	case viewPlay:
		switch {
		case button(x, y, 0):
			g.play.Reset()
			g.recorded = false
		case button(x, y, 1):
			next := g.play.PlayerColor().Other()
			g.play.SetPlayerColor(next)
			g.recorded = false
			g.prefs.PlayerColor = strings.ToLower(next.String())
			g.savePreferences()
		}
	case viewTutor:
		if button(x, y, 0) {
			g.tutor.Reset()
			g.feedback = nil
		}
	case viewOpenings:
		i := (y - boardOffsetY - 40) / 28
		if y >= boardOffsetY+40 && i < len(g.lines) {
			g.trainer.Start(g.lines[i])
			g.tried = false
			g.message = "Training: " + g.lines[i].Name
		}
	}
	g.clearSelection()
}

// Panel buttons sit at the bottom of the panel, one per row.
func buttonRect(row int) (x, y, w, h int) {
	return panelX, boardOffsetY + 8*squareSize - (row+1)*44, 200, 36
}

func button(x, y, row int) bool {
	bx, by, bw, bh := buttonRect(row)
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}

func (g *Game) recordFinishedGame() {
	over, won, draw := g.play.Outcome()
	if !over || g.recorded {
		return
	}
	g.recorded = true
	if g.store == nil {
		return
	}
	stats, err := g.store.RecordGame(storage.Result{
		Won:      won,
		Draw:     draw,
		Strategy: g.play.Strategy().String(),
	})
	if err != nil {
		log.Printf("record game: %v", err)
		return
	}
	g.stats = stats
}

func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	if err := g.store.SavePreferences(g.prefs); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(panelColor)
	g.drawTabs(screen)
	g.drawBoard(screen)
	switch g.view {
	case viewPlay:
		g.drawPlayPanel(screen)
	case viewTutor:
		g.drawTutorPanel(screen)
	case viewOpenings:
		g.drawOpeningsPanel(screen)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()), screenWidth-70, screenHeight-20)
}

func (g *Game) drawTabs(screen *ebiten.Image) {
	for i, name := range viewNames {
		x := float32(boardOffsetX + i*(tabWidth+10))
		clr := color.Color(color.RGBA{39, 39, 42, 255})
		if view(i) == g.view {
			clr = accentColor
		}
		vector.DrawFilledRect(screen, x, 12, tabWidth, tabHeight, clr, true)
		text.Draw(screen, name, regularFace, int(x)+14, 33, textColor)
	}
}

func (g *Game) position() *chess.Position {
	if g.view == viewOpenings {
		return g.trainer.Position()
	}
	return g.session().Position()
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	flipped := g.flipped()
	suggested := g.suggestedSquares()
	board := g.position().Board()

	for sq := rules.Square(0); sq < 64; sq++ {
		x, y := squareOrigin(sq, flipped)
		clr := lightSquare
		if (sq.File()+sq.Rank())%2 == 0 {
			clr = darkSquare
		}
		vector.DrawFilledRect(screen, x, y, squareSize, squareSize, clr, false)
		if sq == g.selected {
			vector.DrawFilledRect(screen, x, y, squareSize, squareSize, selectColor, false)
		}
		if suggested[sq] {
			vector.DrawFilledRect(screen, x, y, squareSize, squareSize, suggestColor, false)
		}

		if p := board.Piece(chess.Square(sq)); p != chess.NoPiece {
			g.sprites.draw(screen, pieceOf(p), float64(x), float64(y))
		}
		if g.isTarget(sq) {
			vector.DrawFilledCircle(screen, x+squareSize/2, y+squareSize/2, squareSize/8, hintColor, true)
		}
	}
}

func pieceOf(p chess.Piece) rules.Piece {
	c := rules.White
	if p.Color() == chess.Black {
		c = rules.Black
	}
	return rules.Piece{Type: pieceTypes[p.Type()], Color: c}
}

var pieceTypes = map[chess.PieceType]rules.PieceType{
	chess.Pawn:   rules.Pawn,
	chess.Knight: rules.Knight,
	chess.Bishop: rules.Bishop,
	chess.Rook:   rules.Rook,
	chess.Queen:  rules.Queen,
	chess.King:   rules.King,
}

// suggestedSquares marks the tutor's expected reply.
func (g *Game) suggestedSquares() map[rules.Square]bool {
	if g.view != viewTutor || g.feedback == nil || g.feedback.Reply == nil {
		return nil
	}
	uci := g.feedback.Reply.String()
	return map[rules.Square]bool{
		rules.NewSquare(int(uci[0]-'a'), int(uci[1]-'1')): true,
		rules.NewSquare(int(uci[2]-'a'), int(uci[3]-'1')): true,
	}
}

func (g *Game) drawPlayPanel(screen *ebiten.Image) {
	y := boardOffsetY + 20
	rating := g.play.Rating()
	text.Draw(screen, fmt.Sprintf("Computer (rating %d)", rating), boldFace, panelX, y, textColor)
	y += 24
	text.Draw(screen, fmt.Sprintf("Plays %s. Up/Down to change.", bots.PolicyFor(rating)), regularFace, panelX, y, mutedColor)
	y += 30

	status := g.play.Status()
	if g.isBotThinking() {
		status = "Computer is thinking..."
	}
	text.Draw(screen, status, boldFace, panelX, y, textColor)
	y += 24
	if name := g.play.Opening(); name != "" {
		name = fmt.Sprintf("%s (%d book lines)", name, g.play.BookLines())
		text.Draw(screen, name, regularFace, panelX, y, mutedColor)
	}
	y += 30

	y = drawHistory(screen, g.play.History(), y)

	if g.stats != nil {
		text.Draw(screen, fmt.Sprintf("Games %d  W %d  L %d  D %d  (%.0f%%)",
			g.stats.GamesPlayed, g.stats.Wins, g.stats.Losses, g.stats.Draws, g.stats.WinRate()),
			regularFace, panelX, y+10, mutedColor)
	}

	drawButton(screen, 0, "New game")
	drawButton(screen, 1, "Play as "+g.play.PlayerColor().Other().String())
}

func drawHistory(screen *ebiten.Image, history []string, y int) int {
	const rows = 12
	text.Draw(screen, "Moves", boldFace, panelX, y, textColor)
	y += 22
	start := 0
	if pairs := (len(history) + 1) / 2; pairs > rows {
		start = (pairs - rows) * 2
	}
	for i := start; i < len(history); i += 2 {
		line := fmt.Sprintf("%d. %s", i/2+1, history[i])
		if i+1 < len(history) {
			line += "  " + history[i+1]
		}
		text.Draw(screen, line, regularFace, panelX, y, textColor)
		y += 18
	}
	return y
}

func drawButton(screen *ebiten.Image, row int, label string) {
	x, y, w, h := buttonRect(row)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), accentColor, true)
	text.Draw(screen, label, regularFace, x+12, y+23, textColor)
}

func (g *Game) drawTutorPanel(screen *ebiten.Image) {
	y := boardOffsetY + 20
	text.Draw(screen, "Tutor", boldFace, panelX, y, textColor)
	y += 30

	if g.feedback == nil {
		text.Draw(screen, "Make a move to have it reviewed.", regularFace, panelX, y, mutedColor)
	} else {
		clr := goodColor
		switch g.feedback.Verdict {
		case game.Inaccurate:
			clr = warnColor
		case game.Bad:
			clr = badColor
		}
		text.Draw(screen, g.feedback.Message(), boldFace, panelX, y, clr)
		y += 24
		text.Draw(screen, fmt.Sprintf("Best was %s, loss %d", g.feedback.Best, g.feedback.Loss), regularFace, panelX, y, mutedColor)
		if g.feedback.Reply != nil {
			y += 20
			text.Draw(screen, "Expected reply: "+g.feedback.Reply.String(), regularFace, panelX, y, mutedColor)
		}
	}
	y += 40
	text.Draw(screen, g.tutor.Status(), regularFace, panelX, y, textColor)
	y += 30
	drawHistory(screen, g.tutor.History(), y)

	drawButton(screen, 0, "Start over")
}

func (g *Game) drawOpeningsPanel(screen *ebiten.Image) {
	y := boardOffsetY + 20
	text.Draw(screen, "Openings", boldFace, panelX, y, textColor)
	current, selected := g.trainer.Opening()
	for i, o := range g.lines {
		ry := boardOffsetY + 40 + i*28
		if selected && o.Name == current.Name {
			vector.DrawFilledRect(screen, panelX-4, float32(ry), 300, 26, accentColor, true)
		}
		text.Draw(screen, o.Name, regularFace, panelX, ry+18, textColor)
	}

	y = boardOffsetY + 40 + len(g.lines)*28 + 24
	if !selected {
		text.Draw(screen, "Pick an opening.", regularFace, panelX, y, mutedColor)
		return
	}
	clr := textColor
	if g.tried {
		switch g.result {
		case openings.Complete:
			clr = goodColor
		case openings.Incorrect:
			clr = badColor
		}
	}
	text.Draw(screen, g.message, boldFace, panelX, y, clr)
	y += 22
	text.Draw(screen, current.Description, regularFace, panelX, y, mutedColor)
	y += 22
	x := panelX
	for i, san := range current.Moves {
		clr := mutedColor
		switch {
		case i < g.trainer.Step():
			clr = goodColor
		case i == g.trainer.Step():
			clr = textColor
		}
		text.Draw(screen, san, regularFace, x, y, clr)
		x += text.BoundString(regularFace, san).Dx() + 10
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
