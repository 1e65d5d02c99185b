package ws

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openarcade/arcade-server/game"
)

// Event is the envelope every inter-chain message travels in.
type Event struct {
	Type    string          `json:"type"`
	TraceID string          `json:"trace_id"`
	Payload json.RawMessage `json:"payload"`
}

// Message types exchanged between peer chains.
const (
	EventJoinRequest   = "join_request"
	EventGameStateSync = "game_state_sync"
	EventGameMoveSync  = "game_move_sync"
	EventMatchEnded    = "match_ended"
	EventPlayerLeft    = "player_left"
	EventRewardSync    = "reward_sync"
)

// PayloadJoinRequest asks a host to seat the sender in its room.
type PayloadJoinRequest struct {
	JoinerID       string `json:"joiner_id"`
	JoinerWallet   string `json:"joiner_wallet"`
	JoinerUsername string `json:"joiner_username"`
}

// PayloadRoomSync carries a full room snapshot. The receiver overwrites
// its local copy unconditionally, which makes redelivery harmless. Used
// by both game_state_sync and game_move_sync.
type PayloadRoomSync struct {
	Room *game.Room `json:"room"`
}

// PayloadMatchEnded announces a finished match with its final snapshot.
type PayloadMatchEnded struct {
	Winner    *game.Player `json:"winner,omitempty"`
	Reason    string       `json:"reason"`
	FinalRoom *game.Room   `json:"final_room"`
}

// PayloadPlayerLeft is the best-effort leave notice.
type PayloadPlayerLeft struct {
	PlayerID     string `json:"player_id"`
	PlayerWallet string `json:"player_wallet"`
}

// PayloadRewardSync delivers one participant's payout to their own chain.
type PayloadRewardSync struct {
	PlayerWallet string `json:"player_wallet"`
	XPEarned     uint64 `json:"xp_earned"`
	CoinsEarned  uint64 `json:"coins_earned"`
	IsWinner     bool   `json:"is_winner"`
}

// NewEvent wraps a payload in an envelope with a fresh trace id.
func NewEvent(evtType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Type:    evtType,
		TraceID: uuid.NewString(),
		Payload: b,
	}, nil
}
