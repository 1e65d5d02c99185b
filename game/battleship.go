package game

import (
	"strconv"
	"strings"
)

// Hit-layout cell states.
const (
	hitUnknown uint8 = 0
	hitMiss    uint8 = 1
	hitStruck  uint8 = 2
)

// shipSizes maps ship id 1..5 to its length: carrier, battleship, cruiser,
// submarine, destroyer.
var shipSizes = [5]int{5, 4, 3, 3, 2}

// BattleshipBoard holds both players' 10x10 grids. Ship layouts store
// 0 for water or the ship id; hit layouts store unknown/miss/hit.
type BattleshipBoard struct {
	P1Ships []uint8 `json:"p1_ships"`
	P1Hits  []uint8 `json:"p1_hits"`
	P2Ships []uint8 `json:"p2_ships"`
	P2Hits  []uint8 `json:"p2_hits"`
	// SetupPhase stays true until both fleets are placed.
	SetupPhase bool `json:"setup_phase"`
	P1Ready    bool `json:"p1_ready"`
	P2Ready    bool `json:"p2_ready"`
	// Attack history (positions).
	Moves []uint8 `json:"moves"`
	// Ships sunk per defender: [p1 losses, p2 losses].
	ShipsSunk []uint8 `json:"ships_sunk"`
}

func NewBattleshipBoard() *BattleshipBoard {
	return &BattleshipBoard{
		P1Ships:    make([]uint8, 100),
		P1Hits:     make([]uint8, 100),
		P2Ships:    make([]uint8, 100),
		P2Hits:     make([]uint8, 100),
		SetupPhase: true,
		Moves:      []uint8{},
		ShipsSunk:  []uint8{0, 0},
	}
}

func (b *BattleshipBoard) Type() GameType { return Battleship }

// PlaceShips parses a fleet list of the form "shipId,startPos,h|v;..." and
// places it for the player. All five ships (ids 1-5) must appear exactly
// once, in bounds and non-overlapping; any violation rejects the whole
// fleet. Marks the player ready, and ends the setup phase once both are.
func (b *BattleshipBoard) PlaceShips(player Player, fleet string) bool {
	ships := b.P1Ships
	if player == PlayerTwo {
		ships = b.P2Ships
	}

	for i := range ships {
		ships[i] = 0
	}

	var placed [5]bool
	for _, entry := range strings.Split(fleet, ";") {
		parts := strings.Split(entry, ",")
		if len(parts) != 3 {
			return false
		}

		shipID, err := strconv.Atoi(parts[0])
		if err != nil || shipID < 1 || shipID > 5 || placed[shipID-1] {
			return false
		}
		startPos, err := strconv.Atoi(parts[1])
		if err != nil || startPos < 0 || startPos >= 100 {
			return false
		}
		horizontal := parts[2] == "h"

		size := shipSizes[shipID-1]
		startRow, startCol := startPos/10, startPos%10

		if horizontal {
			if startCol+size > 10 {
				return false
			}
		} else if startRow+size > 10 {
			return false
		}

		for i := 0; i < size; i++ {
			pos := startPos + i
			if !horizontal {
				pos = startPos + i*10
			}
			if ships[pos] != 0 {
				return false
			}
			ships[pos] = uint8(shipID)
		}
		placed[shipID-1] = true
	}

	for _, ok := range placed {
		if !ok {
			return false
		}
	}

	if player == PlayerOne {
		b.P1Ready = true
	} else {
		b.P2Ready = true
	}
	if b.P1Ready && b.P2Ready {
		b.SetupPhase = false
	}
	return true
}

// Attack fires at pos on the opponent's grid. ok is false when the attack
// is rejected (setup phase, out of range, or already attacked); hit and
// sunkID describe an accepted attack, sunkID being the ship id when this
// shot finished a ship.
func (b *BattleshipBoard) Attack(attacker Player, pos int) (ok, hit bool, sunkID uint8) {
	if pos < 0 || pos >= 100 || b.SetupPhase {
		return false, false, 0
	}

	targetShips, targetHits := b.P2Ships, b.P2Hits
	sunkIdx := 1 // defender's loss counter
	if attacker == PlayerTwo {
		targetShips, targetHits = b.P1Ships, b.P1Hits
		sunkIdx = 0
	}

	if targetHits[pos] != hitUnknown {
		return false, false, 0
	}

	b.Moves = append(b.Moves, uint8(pos))

	if targetShips[pos] == 0 {
		targetHits[pos] = hitMiss
		return true, false, 0
	}

	targetHits[pos] = hitStruck
	shipID := targetShips[pos]

	// A ship is sunk once no cell bearing its id remains unhit.
	for i := 0; i < 100; i++ {
		if targetShips[i] == shipID && targetHits[i] != hitStruck {
			return true, true, 0
		}
	}

	b.ShipsSunk[sunkIdx]++
	return true, true, shipID
}

// CheckWinner reports the attacker that sank the full opposing fleet.
func (b *BattleshipBoard) CheckWinner() *Player {
	if b.ShipsSunk[0] >= 5 {
		w := PlayerTwo
		return &w
	}
	if b.ShipsSunk[1] >= 5 {
		w := PlayerOne
		return &w
	}
	return nil
}
