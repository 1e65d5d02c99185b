package game

// MancalaBoard holds the 14-slot layout: player one's pits 0-5 and store
// at 6, player two's pits 7-12 and store at 13. The total stone count
// across all 14 slots stays 48 for the whole game.
type MancalaBoard struct {
	Pits  []uint8 `json:"pits"`
	Moves []uint8 `json:"moves"`
}

func NewMancalaBoard() *MancalaBoard {
	pits := make([]uint8, 14)
	for i := range pits {
		pits[i] = 4
	}
	pits[6] = 0
	pits[13] = 0

	return &MancalaBoard{
		Pits:  pits,
		Moves: []uint8{},
	}
}

func (b *MancalaBoard) Type() GameType { return Mancala }

// MakeMove sows from the mover's pit (0-5 relative to their side).
// again reports whether the final stone landed in the mover's own store,
// granting another turn. ok is false for an out-of-range or empty pit.
func (b *MancalaBoard) MakeMove(pit int, player Player) (again, ok bool) {
	if pit < 0 || pit > 5 {
		return false, false
	}

	idx := pit
	myStore, oppStore := 6, 13
	if player == PlayerTwo {
		idx = pit + 7
		myStore, oppStore = 13, 6
	}

	if b.Pits[idx] == 0 {
		return false, false
	}

	stones := int(b.Pits[idx])
	b.Pits[idx] = 0
	b.Moves = append(b.Moves, uint8(idx))

	// Sow counter-clockwise, skipping the opponent's store.
	cur := idx
	for remaining := stones; remaining > 0; remaining-- {
		cur = (cur + 1) % 14
		if cur == oppStore {
			cur = (cur + 1) % 14
		}
		b.Pits[cur]++
	}

	// Landing exactly-one in an empty own-side pit captures the opposite
	// pit plus the landing stone, when the opposite pit holds anything.
	ownPit := cur >= 0 && cur < 6
	if player == PlayerTwo {
		ownPit = cur >= 7 && cur < 13
	}
	if ownPit && b.Pits[cur] == 1 {
		opposite := 12 - cur
		if b.Pits[opposite] > 0 {
			captured := b.Pits[opposite] + 1
			b.Pits[opposite] = 0
			b.Pits[cur] = 0
			b.Pits[myStore] += captured
		}
	}

	return cur == myStore, true
}

// IsGameOver reports whether either side's six pits are all empty.
func (b *MancalaBoard) IsGameOver() bool {
	p1Empty, p2Empty := true, true
	for i := 0; i < 6; i++ {
		if b.Pits[i] != 0 {
			p1Empty = false
		}
		if b.Pits[7+i] != 0 {
			p2Empty = false
		}
	}
	return p1Empty || p2Empty
}

// Finalize sweeps each side's remaining stones into its store and returns
// the winner, or nil on a tie.
func (b *MancalaBoard) Finalize() *Player {
	for i := 0; i < 6; i++ {
		b.Pits[6] += b.Pits[i]
		b.Pits[i] = 0
		b.Pits[13] += b.Pits[7+i]
		b.Pits[7+i] = 0
	}

	switch {
	case b.Pits[6] > b.Pits[13]:
		w := PlayerOne
		return &w
	case b.Pits[13] > b.Pits[6]:
		w := PlayerTwo
		return &w
	}
	return nil
}

// PlayerPits returns the six pits on the given slot's side.
func (b *MancalaBoard) PlayerPits(slot int) []uint8 {
	pits := make([]uint8, 6)
	if slot == 0 {
		copy(pits, b.Pits[0:6])
	} else {
		copy(pits, b.Pits[7:13])
	}
	return pits
}

// Stores returns both store totals.
func (b *MancalaBoard) Stores() (p1, p2 uint8) {
	return b.Pits[6], b.Pits[13]
}
