package bots

import "chessPro/rules"

// MaterialValues is indexed by rules.PieceType.
var MaterialValues = [rules.King + 1]int{
	rules.Pawn:   100,
	rules.Knight: 320,
	rules.Bishop: 330,
	rules.Rook:   500,
	rules.Queen:  900,
	rules.King:   20000,
}

// Piece-square tables are written as White sees the board, eighth rank on
// top. White reads row 7-rank, Black reads row rank.
var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var pieceSquareTables = [rules.King + 1]*[8][8]int{
	rules.Pawn:   &pawnTable,
	rules.Knight: &knightTable,
}

type DefaultEvaluator struct{}

func (DefaultEvaluator) Evaluate(pos rules.Position) int {
	return Evaluate(pos)
}

// Evaluate sums material and piece-square bonuses, White minus Black.
func Evaluate(pos rules.Position) int {
	score := 0
	for sq := rules.Square(0); sq < 64; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		if p.Color == rules.White {
			score += pieceValue(p, sq)
		} else {
			score -= pieceValue(p, sq)
		}
	}
	return score
}

func pieceValue(p rules.Piece, sq rules.Square) int {
	if p.Type <= rules.NoPieceType || int(p.Type) >= len(MaterialValues) {
		return 0
	}
	v := MaterialValues[p.Type]
	if table := pieceSquareTables[p.Type]; table != nil {
		row := sq.Rank()
		if p.Color == rules.White {
			row = 7 - row
		}
		v += table[row][sq.File()]
	}
	return v
}
