package game

// GomokuBoard is the 15x15 five-in-a-row game.
type GomokuBoard struct {
	Cells []Player `json:"cells"`
	Moves []uint8  `json:"moves"`
}

func NewGomokuBoard() *GomokuBoard {
	return &GomokuBoard{
		Cells: make([]Player, 225),
		Moves: []uint8{},
	}
}

func (b *GomokuBoard) Type() GameType { return Gomoku }

// MakeMove places at pos. Returns false for out-of-range or occupied cells.
func (b *GomokuBoard) MakeMove(pos int, player Player) bool {
	if pos < 0 || pos >= 225 || b.Cells[pos] != 0 {
		return false
	}
	b.Cells[pos] = player
	b.Moves = append(b.Moves, uint8(pos))
	return true
}

// CheckWinner scans for five in a line in the four directions.
func (b *GomokuBoard) CheckWinner() *Player {
	for row := 0; row < 15; row++ {
		for col := 0; col < 15; col++ {
			player := b.Cells[row*15+col]
			if player == 0 {
				continue
			}
			if col <= 10 && b.line(row, col, 0, 1, player) {
				return &player
			}
			if row <= 10 && b.line(row, col, 1, 0, player) {
				return &player
			}
			if row <= 10 && col <= 10 && b.line(row, col, 1, 1, player) {
				return &player
			}
			if row >= 4 && col <= 10 && b.line(row, col, -1, 1, player) {
				return &player
			}
		}
	}
	return nil
}

func (b *GomokuBoard) line(row, col, dr, dc int, player Player) bool {
	for i := 1; i < 5; i++ {
		if b.Cells[(row+i*dr)*15+(col+i*dc)] != player {
			return false
		}
	}
	return true
}

// IsFull reports a draw board.
func (b *GomokuBoard) IsFull() bool {
	for _, cell := range b.Cells {
		if cell == 0 {
			return false
		}
	}
	return true
}
