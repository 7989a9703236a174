package main

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"chessPro/rules"
)

// Piece outlines on a 45x45 canvas.
var pieceShapes = map[rules.PieceType]string{
	rules.Pawn: `<circle cx="22.5" cy="14" r="5.5"/>
<path d="M17 22 Q22.5 17 28 22 L30 34 L15 34 Z"/>
<rect x="11" y="34" width="23" height="5" rx="1.5"/>`,
	rules.Knight: `<path d="M14 38 L14 31 Q16 24 21 20 L12 22 Q9 19 13 14 L20 8 L22 5 L24 8 Q34 12 33 24 L32 38 Z"/>
<circle cx="19" cy="13" r="1.4" fill="none"/>
<rect x="10" y="36" width="25" height="4" rx="1.5"/>`,
	rules.Bishop: `<circle cx="22.5" cy="7" r="2.5"/>
<path d="M22.5 9 Q31 15 29 25 L16 25 Q14 15 22.5 9 Z"/>
<path d="M16 25 L29 25 L31 33 L14 33 Z"/>
<rect x="10" y="33" width="25" height="5" rx="1.5"/>`,
	rules.Rook: `<path d="M11 9 L15 9 L15 12 L20 12 L20 9 L25 9 L25 12 L30 12 L30 9 L34 9 L34 16 L30 18 L31 31 L14 31 L15 18 L11 16 Z"/>
<rect x="10" y="31" width="25" height="7" rx="1.5"/>`,
	rules.Queen: `<circle cx="8" cy="11" r="2.5"/><circle cx="15.5" cy="8" r="2.5"/><circle cx="22.5" cy="7" r="2.5"/><circle cx="29.5" cy="8" r="2.5"/><circle cx="37" cy="11" r="2.5"/>
<path d="M9 13 L13 29 L15 12 L19 27 L22.5 10 L26 27 L30 12 L32 29 L36 13 L33 32 L12 32 Z"/>
<rect x="11" y="32" width="23" height="6" rx="1.5"/>`,
	rules.King: `<path d="M21 3 L24 3 L24 6 L27 6 L27 9 L24 9 L24 12 L21 12 L21 9 L18 9 L18 6 L21 6 Z"/>
<path d="M22.5 13 Q37 10 34 22 L31 31 L14 31 L11 22 Q8 10 22.5 13 Z"/>
<rect x="11" y="31" width="23" height="7" rx="1.5"/>`,
}

func pieceSVG(p rules.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Color == rules.Black {
		fill, stroke = "#1e1e1e", "#e0e0e0"
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">%s</g></svg>`,
		fill, stroke, pieceShapes[p.Type])
}

// spriteSet holds one rasterised image per piece.
type spriteSet struct {
	pieces      map[rules.Piece]*ebiten.Image
	size        int
	renderScale float64
}

func newSpriteSet(size int) *spriteSet {
	s := &spriteSet{
		pieces:      make(map[rules.Piece]*ebiten.Image),
		size:        size,
		renderScale: 2,
	}
	s.load()
	return s
}

func (s *spriteSet) load() {
	renderSize := int(float64(s.size) * s.renderScale)
	for _, c := range []rules.Color{rules.White, rules.Black} {
		for t := rules.Pawn; t <= rules.King; t++ {
			p := rules.Piece{Type: t, Color: c}
			icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(p)))
			if err != nil {
				log.Printf("piece %s: %v", p, err)
				continue
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			icon.Draw(rasterx.NewDasher(renderSize, renderSize, scanner), 1.0)
			s.pieces[p] = ebiten.NewImageFromImage(rgba)
		}
	}
}

func (s *spriteSet) draw(screen *ebiten.Image, p rules.Piece, x, y float64) {
	img := s.pieces[p]
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/s.renderScale, 1/s.renderScale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
