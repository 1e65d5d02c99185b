package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openarcade/arcade-server/game"
	"github.com/openarcade/arcade-server/store"
	"github.com/openarcade/arcade-server/ws"
)

type messageHandler func(ctx context.Context, evt ws.Event) error

// HandleMessage routes one inbound peer event. It takes the executor
// lock, so peer messages interleave with operations one at a time.
func (n *Node) HandleMessage(ctx context.Context, evt ws.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	handlers := map[string]messageHandler{
		ws.EventJoinRequest:   n.onJoinRequest,
		ws.EventGameStateSync: n.onRoomSync,
		ws.EventGameMoveSync:  n.onRoomSync,
		ws.EventMatchEnded:    n.onMatchEnded,
		ws.EventPlayerLeft:    n.onPlayerLeft,
		ws.EventRewardSync:    n.onRewardSync,
	}

	handler, ok := handlers[evt.Type]
	if !ok {
		return fmt.Errorf("no handler for event type %q", evt.Type)
	}
	return handler(ctx, evt)
}

// onJoinRequest seats a joiner in the hosted room. Requests against a
// missing, started or full room are dropped without a reply; the host
// never argues with stale joiners.
func (n *Node) onJoinRequest(ctx context.Context, evt ws.Event) error {
	var payload ws.PayloadJoinRequest
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}

	room, err := n.store.Room(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if room.Status != game.StatusWaitingForPlayer || len(room.PlayerIDs) >= 2 {
		return nil
	}

	room.AddJoiner(payload.JoinerID, payload.JoinerWallet, payload.JoinerUsername, n.now())

	if err := n.store.SetRoom(ctx, room); err != nil {
		return err
	}

	sync, err := ws.NewEvent(ws.EventGameStateSync, ws.PayloadRoomSync{Room: room})
	if err != nil {
		return err
	}
	n.sender.Send(payload.JoinerID, sync)
	return nil
}

// onRoomSync overwrites the local room with the peer's snapshot. The
// snapshot is authoritative, so redelivery and reordering within one
// connection are harmless.
func (n *Node) onRoomSync(ctx context.Context, evt ws.Event) error {
	var payload ws.PayloadRoomSync
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}
	if payload.Room == nil {
		return errors.New("room sync without a room")
	}
	return n.store.SetRoom(ctx, payload.Room)
}

func (n *Node) onMatchEnded(ctx context.Context, evt ws.Event) error {
	var payload ws.PayloadMatchEnded
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}
	if payload.FinalRoom == nil {
		return errors.New("match ended without a final room")
	}
	return n.store.SetRoom(ctx, payload.FinalRoom)
}

// onPlayerLeft marks a running match abandoned. It never clears the
// room: only the local player decides when their copy goes away.
func (n *Node) onPlayerLeft(ctx context.Context, evt ws.Event) error {
	room, err := n.store.Room(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if room.Status != game.StatusInProgress {
		return nil
	}

	room.Status = game.StatusAbandoned
	room.EndReason = "opponent_left"
	return n.store.SetRoom(ctx, room)
}

func (n *Node) onRewardSync(ctx context.Context, evt ws.Event) error {
	var payload ws.PayloadRewardSync
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return err
	}
	return n.applyReward(ctx, payload.PlayerWallet, payload.XPEarned, payload.CoinsEarned)
}
