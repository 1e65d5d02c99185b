package game

import (
	"encoding/json"
	"errors"
)

// Room is the shared state of one two-party match. Both participants'
// chains hold a copy; snapshots of the whole struct are what the
// replication protocol ships, so every field is part of the wire format.
type Room struct {
	// HostID is the host chain's context id (the room code).
	HostID string
	// PlayerIDs, Wallets and Usernames are parallel rosters, host first.
	PlayerIDs []string
	Wallets   []string
	Usernames []string

	GameType GameType
	Board    Board

	Status      Status
	CurrentTurn Player
	Winner      *Player
	EndReason   string

	CreatedAt  int64
	LastMoveAt int64
}

// NewRoom creates a waiting room hosted by the given context, with the
// board at its canonical start position.
func NewRoom(hostID, hostWallet, hostUsername string, gameType GameType, now int64) *Room {
	return &Room{
		HostID:      hostID,
		PlayerIDs:   []string{hostID},
		Wallets:     []string{hostWallet},
		Usernames:   []string{hostUsername},
		GameType:    gameType,
		Board:       NewBoard(gameType),
		Status:      StatusWaitingForPlayer,
		CurrentTurn: PlayerOne,
		CreatedAt:   now,
	}
}

// AddJoiner seats the joiner in slot two and starts the game.
func (r *Room) AddJoiner(joinerID, joinerWallet, joinerUsername string, now int64) {
	r.PlayerIDs = append(r.PlayerIDs, joinerID)
	r.Wallets = append(r.Wallets, joinerWallet)
	r.Usernames = append(r.Usernames, joinerUsername)
	r.Status = StatusInProgress
	r.LastMoveAt = now
}

// PlayerFor resolves a wallet to its seat. ok is false for wallets not in
// the roster.
func (r *Room) PlayerFor(wallet string) (Player, bool) {
	for i, w := range r.Wallets {
		if w == wallet {
			return Player(i + 1), true
		}
	}
	return 0, false
}

// OpponentID returns the peer chain id of the given seat, or "" while the
// room is still waiting for a second player.
func (r *Room) OpponentID(player Player) string {
	idx := player.Other().Index()
	if idx < 0 || idx >= len(r.PlayerIDs) {
		return ""
	}
	return r.PlayerIDs[idx]
}

// roomJSON is the wire layout: the board union is spread over six optional
// fields, exactly one of which is set, tagged by game_type.
type roomJSON struct {
	HostID    string   `json:"host_id"`
	PlayerIDs []string `json:"player_ids"`
	Wallets   []string `json:"player_wallets"`
	Usernames []string `json:"usernames"`

	GameType GameType `json:"game_type"`

	ChessBoard       *ChessBoard       `json:"chess_board,omitempty"`
	ConnectFourBoard *ConnectFourBoard `json:"connect_four_board,omitempty"`
	ReversiBoard     *ReversiBoard     `json:"reversi_board,omitempty"`
	GomokuBoard      *GomokuBoard      `json:"gomoku_board,omitempty"`
	BattleshipBoard  *BattleshipBoard  `json:"battleship_board,omitempty"`
	MancalaBoard     *MancalaBoard     `json:"mancala_board,omitempty"`

	Status      Status  `json:"status"`
	CurrentTurn Player  `json:"current_turn"`
	Winner      *Player `json:"winner,omitempty"`
	EndReason   string  `json:"end_reason,omitempty"`

	CreatedAt  int64 `json:"created_at"`
	LastMoveAt int64 `json:"last_move_at"`
}

func (r *Room) MarshalJSON() ([]byte, error) {
	out := roomJSON{
		HostID:      r.HostID,
		PlayerIDs:   r.PlayerIDs,
		Wallets:     r.Wallets,
		Usernames:   r.Usernames,
		GameType:    r.GameType,
		Status:      r.Status,
		CurrentTurn: r.CurrentTurn,
		Winner:      r.Winner,
		EndReason:   r.EndReason,
		CreatedAt:   r.CreatedAt,
		LastMoveAt:  r.LastMoveAt,
	}

	switch b := r.Board.(type) {
	case *ChessBoard:
		out.ChessBoard = b
	case *ConnectFourBoard:
		out.ConnectFourBoard = b
	case *ReversiBoard:
		out.ReversiBoard = b
	case *GomokuBoard:
		out.GomokuBoard = b
	case *BattleshipBoard:
		out.BattleshipBoard = b
	case *MancalaBoard:
		out.MancalaBoard = b
	}

	return json.Marshal(out)
}

func (r *Room) UnmarshalJSON(data []byte) error {
	var in roomJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	r.HostID = in.HostID
	r.PlayerIDs = in.PlayerIDs
	r.Wallets = in.Wallets
	r.Usernames = in.Usernames
	r.GameType = in.GameType
	r.Status = in.Status
	r.CurrentTurn = in.CurrentTurn
	r.Winner = in.Winner
	r.EndReason = in.EndReason
	r.CreatedAt = in.CreatedAt
	r.LastMoveAt = in.LastMoveAt

	switch in.GameType {
	case Chess:
		r.Board = in.ChessBoard
	case ConnectFour:
		r.Board = in.ConnectFourBoard
	case Reversi:
		r.Board = in.ReversiBoard
	case Gomoku:
		r.Board = in.GomokuBoard
	case Battleship:
		r.Board = in.BattleshipBoard
	case Mancala:
		r.Board = in.MancalaBoard
	default:
		return errors.New("unknown game type in room snapshot")
	}

	if r.Board == nil || isNilBoard(r.Board) {
		return errors.New("room snapshot missing board for its game type")
	}

	return nil
}

// isNilBoard guards against a typed-nil pointer inside the interface when
// a snapshot tags one game but carries another game's board.
func isNilBoard(b Board) bool {
	switch v := b.(type) {
	case *ChessBoard:
		return v == nil
	case *ConnectFourBoard:
		return v == nil
	case *ReversiBoard:
		return v == nil
	case *GomokuBoard:
		return v == nil
	case *BattleshipBoard:
		return v == nil
	case *MancalaBoard:
		return v == nil
	}
	return b == nil
}
