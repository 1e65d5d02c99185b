package node

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openarcade/arcade-server/game"
	"github.com/openarcade/arcade-server/store"
	"github.com/openarcade/arcade-server/ws"
)

type sentEvent struct {
	target string
	evt    ws.Event
}

// fakeSender records outbound events instead of dialing peers.
type fakeSender struct {
	sent        []sentEvent
	unreachable map[string]bool
}

func (f *fakeSender) Send(target string, evt ws.Event) {
	f.sent = append(f.sent, sentEvent{target: target, evt: evt})
}

func (f *fakeSender) Reachable(target string) bool {
	return !f.unreachable[target]
}

func (f *fakeSender) lastTo(t *testing.T, target string) ws.Event {
	t.Helper()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].target == target {
			return f.sent[i].evt
		}
	}
	t.Fatalf("no event sent to %v", target)
	return ws.Event{}
}

const (
	hostID   = "host:9001"
	joinerID = "joiner:9002"
)

func newTestNode(t *testing.T) (*Node, *fakeSender, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	sender := &fakeSender{unreachable: map[string]bool{}}
	n := New(hostID, mem, sender)
	n.now = func() int64 { return 5000 }
	return n, sender, mem
}

func registerWallet(t *testing.T, n *Node, wallet, username string) {
	t.Helper()
	_, err := n.Register(context.Background(), wallet, username)
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	n, _, _ := newTestNode(t)
	ctx := context.Background()

	profile, err := n.Register(ctx, "wallet-a", "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(100), profile.Coins)
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, int64(5000), profile.CreatedAt)

	_, err = n.Register(ctx, "wallet-a", "alice")
	require.ErrorIs(t, err, game.ErrAlreadyRegistered)
}

func TestUpdateProfile(t *testing.T) {
	n, _, _ := newTestNode(t)
	ctx := context.Background()

	_, err := n.UpdateProfile(ctx, "wallet-a", "al")
	require.ErrorIs(t, err, game.ErrNotRegistered)

	registerWallet(t, n, "wallet-a", "alice")

	profile, err := n.UpdateProfile(ctx, "wallet-a", "al")
	require.NoError(t, err)
	require.Equal(t, "al", profile.Username)

	// An empty username keeps the current one.
	profile, err = n.UpdateProfile(ctx, "wallet-a", "")
	require.NoError(t, err)
	require.Equal(t, "al", profile.Username)
}

func TestCreateRoom(t *testing.T) {
	n, _, _ := newTestNode(t)
	ctx := context.Background()

	_, err := n.CreateRoom(ctx, "wallet-a", game.Chess)
	require.ErrorIs(t, err, game.ErrNotRegistered)

	registerWallet(t, n, "wallet-a", "alice")

	room, err := n.CreateRoom(ctx, "wallet-a", game.Chess)
	require.NoError(t, err)
	require.Equal(t, hostID, room.HostID)
	require.Equal(t, game.StatusWaitingForPlayer, room.Status)

	_, err = n.CreateRoom(ctx, "wallet-a", game.Gomoku)
	require.ErrorIs(t, err, game.ErrRoomAlreadyExists)
}

func TestCreateRoomReplacesStaleJoinedRoom(t *testing.T) {
	n, _, mem := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	// This chain joined a match hosted elsewhere and still holds the
	// finished snapshot.
	remote := game.NewRoom(joinerID, "wallet-b", "bob", game.Gomoku, 1000)
	remote.AddJoiner(hostID, "wallet-a", "alice", 2000)
	remote.Status = game.StatusFinished
	winner := game.PlayerOne
	remote.Winner = &winner

	evt, err := ws.NewEvent(ws.EventGameMoveSync, ws.PayloadRoomSync{Room: remote})
	require.NoError(t, err)
	require.NoError(t, n.HandleMessage(ctx, evt))

	// Hosting was never set, so the stale snapshot does not block a new
	// room; creation replaces it.
	room, err := n.CreateRoom(ctx, "wallet-a", game.Chess)
	require.NoError(t, err)
	require.Equal(t, hostID, room.HostID)
	require.Equal(t, game.StatusWaitingForPlayer, room.Status)

	stored, err := mem.Room(ctx)
	require.NoError(t, err)
	require.Equal(t, game.Chess, stored.GameType)
	require.Equal(t, hostID, stored.HostID)
}

func TestJoinRoom(t *testing.T) {
	n, sender, mem := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	require.ErrorIs(t, n.JoinRoom(ctx, "wallet-a", hostID), game.ErrCannotJoinOwnRoom)

	sender.unreachable["down:9003"] = true
	require.ErrorIs(t, n.JoinRoom(ctx, "wallet-a", "down:9003"), game.ErrRoomNotFound)

	require.NoError(t, n.JoinRoom(ctx, "wallet-a", joinerID))

	evt := sender.lastTo(t, joinerID)
	require.Equal(t, ws.EventJoinRequest, evt.Type)

	var payload ws.PayloadJoinRequest
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	require.Equal(t, hostID, payload.JoinerID)
	require.Equal(t, "wallet-a", payload.JoinerWallet)
	require.Equal(t, "alice", payload.JoinerUsername)

	joined, err := mem.JoinedHost(ctx)
	require.NoError(t, err)
	require.Equal(t, joinerID, joined)

	recent, err := mem.RecentRooms(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{joinerID}, recent)
}

func seatJoiner(t *testing.T, n *Node) {
	t.Helper()
	evt, err := ws.NewEvent(ws.EventJoinRequest, ws.PayloadJoinRequest{
		JoinerID:       joinerID,
		JoinerWallet:   "wallet-b",
		JoinerUsername: "bob",
	})
	require.NoError(t, err)
	require.NoError(t, n.HandleMessage(context.Background(), evt))
}

func TestJoinRequestHandling(t *testing.T) {
	n, sender, mem := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	t.Run("without a room the request is dropped", func(t *testing.T) {
		seatJoiner(t, n)
		require.Empty(t, sender.sent)
	})

	_, err := n.CreateRoom(ctx, "wallet-a", game.ConnectFour)
	require.NoError(t, err)

	t.Run("seats the joiner and syncs the snapshot", func(t *testing.T) {
		seatJoiner(t, n)

		room, err := mem.Room(ctx)
		require.NoError(t, err)
		require.Equal(t, game.StatusInProgress, room.Status)
		require.Equal(t, []string{"wallet-a", "wallet-b"}, room.Wallets)

		evt := sender.lastTo(t, joinerID)
		require.Equal(t, ws.EventGameStateSync, evt.Type)

		var payload ws.PayloadRoomSync
		require.NoError(t, json.Unmarshal(evt.Payload, &payload))
		require.Equal(t, game.StatusInProgress, payload.Room.Status)
	})

	t.Run("a full room silently ignores further joiners", func(t *testing.T) {
		before := len(sender.sent)
		seatJoiner(t, n)

		room, err := mem.Room(ctx)
		require.NoError(t, err)
		require.Len(t, room.Wallets, 2)
		require.Len(t, sender.sent, before, "no sync goes out")
	})
}

func TestMakeMoveSyncsOpponent(t *testing.T) {
	n, sender, _ := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	_, err := n.CreateRoom(ctx, "wallet-a", game.ConnectFour)
	require.NoError(t, err)
	seatJoiner(t, n)

	room, result, err := n.MakeMove(ctx, "wallet-a", game.MoveData{Primary: 3})
	require.NoError(t, err)
	require.False(t, result.Ended)
	require.Equal(t, game.PlayerTwo, room.CurrentTurn)

	evt := sender.lastTo(t, joinerID)
	require.Equal(t, ws.EventGameMoveSync, evt.Type)

	var payload ws.PayloadRoomSync
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	require.Equal(t, game.PlayerTwo, payload.Room.CurrentTurn)
}

func TestMakeMoveErrors(t *testing.T) {
	n, _, _ := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	_, _, err := n.MakeMove(ctx, "wallet-a", game.MoveData{Primary: 0})
	require.ErrorIs(t, err, game.ErrRoomNotFound)

	_, err = n.CreateRoom(ctx, "wallet-a", game.ConnectFour)
	require.NoError(t, err)

	_, _, err = n.MakeMove(ctx, "wallet-a", game.MoveData{Primary: 0})
	require.ErrorIs(t, err, game.ErrGameNotInProgress)

	seatJoiner(t, n)

	_, _, err = n.MakeMove(ctx, "wallet-b", game.MoveData{Primary: 0})
	require.ErrorIs(t, err, game.ErrNotYourTurn)

	_, _, err = n.MakeMove(ctx, "wallet-a", game.MoveData{Primary: 42})
	require.ErrorIs(t, err, game.ErrInvalidMove)
}

func TestTerminalMoveDistributesRewards(t *testing.T) {
	n, sender, mem := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	_, err := n.CreateRoom(ctx, "wallet-a", game.Gomoku)
	require.NoError(t, err)
	seatJoiner(t, n)

	// Both seats play through this chain; the last host move completes a
	// horizontal five.
	for i := 0; i < 4; i++ {
		_, _, err := n.MakeMove(ctx, "wallet-a", game.MoveData{Primary: int32(i)})
		require.NoError(t, err)
		_, _, err = n.MakeMove(ctx, "wallet-b", game.MoveData{Primary: int32(210 + i)})
		require.NoError(t, err)
	}
	room, result, err := n.MakeMove(ctx, "wallet-a", game.MoveData{Primary: 4})
	require.NoError(t, err)
	require.True(t, result.Ended)
	require.Equal(t, game.StatusFinished, room.Status)

	// The host's own reward is applied directly.
	profile, err := mem.Profile(ctx, "wallet-a")
	require.NoError(t, err)
	require.Equal(t, uint64(80), profile.XP)
	require.Equal(t, uint64(100+45), profile.Coins)
	require.Equal(t, uint64(1), profile.TotalGames)

	// The joiner's reward travels to their chain.
	evt := sender.lastTo(t, joinerID)
	require.Equal(t, ws.EventRewardSync, evt.Type)

	var payload ws.PayloadRewardSync
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	require.Equal(t, "wallet-b", payload.PlayerWallet)
	require.Equal(t, uint64(30), payload.XPEarned)
	require.Equal(t, uint64(10), payload.CoinsEarned)
	require.False(t, payload.IsWinner)
}

func TestRewardSyncHandling(t *testing.T) {
	n, _, mem := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	reward := ws.PayloadRewardSync{PlayerWallet: "wallet-a", XPEarned: 80, CoinsEarned: 45, IsWinner: true}

	evt, err := ws.NewEvent(ws.EventRewardSync, reward)
	require.NoError(t, err)
	require.NoError(t, n.HandleMessage(ctx, evt))

	profile, err := mem.Profile(ctx, "wallet-a")
	require.NoError(t, err)
	require.Equal(t, uint64(80), profile.XP)
	require.Equal(t, uint64(145), profile.Coins)
	require.Equal(t, uint64(1), profile.TotalGames)

	// Redelivery double-counts: receipts are not deduplicated.
	require.NoError(t, n.HandleMessage(ctx, evt))
	profile, err = mem.Profile(ctx, "wallet-a")
	require.NoError(t, err)
	require.Equal(t, uint64(160), profile.XP)

	t.Run("unknown wallet is skipped", func(t *testing.T) {
		stray, err := ws.NewEvent(ws.EventRewardSync, ws.PayloadRewardSync{PlayerWallet: "wallet-z", XPEarned: 10})
		require.NoError(t, err)
		require.NoError(t, n.HandleMessage(ctx, stray))
	})
}

func TestRoomSyncOverwrites(t *testing.T) {
	n, _, mem := newTestNode(t)
	ctx := context.Background()

	remote := game.NewRoom(joinerID, "wallet-b", "bob", game.Mancala, 1000)
	remote.AddJoiner(hostID, "wallet-a", "alice", 2000)

	evt, err := ws.NewEvent(ws.EventGameStateSync, ws.PayloadRoomSync{Room: remote})
	require.NoError(t, err)
	require.NoError(t, n.HandleMessage(ctx, evt))

	room, err := mem.Room(ctx)
	require.NoError(t, err)
	require.Equal(t, joinerID, room.HostID)
	require.Equal(t, game.Mancala, room.GameType)

	// A later snapshot replaces the earlier one wholesale.
	remote.Status = game.StatusFinished
	evt, err = ws.NewEvent(ws.EventGameMoveSync, ws.PayloadRoomSync{Room: remote})
	require.NoError(t, err)
	require.NoError(t, n.HandleMessage(ctx, evt))

	room, err = mem.Room(ctx)
	require.NoError(t, err)
	require.Equal(t, game.StatusFinished, room.Status)
}

func TestPlayerLeftHandling(t *testing.T) {
	n, _, mem := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	leftEvt := func(t *testing.T) ws.Event {
		t.Helper()
		evt, err := ws.NewEvent(ws.EventPlayerLeft, ws.PayloadPlayerLeft{PlayerID: joinerID, PlayerWallet: "wallet-b"})
		require.NoError(t, err)
		return evt
	}

	t.Run("no room is a no-op", func(t *testing.T) {
		require.NoError(t, n.HandleMessage(ctx, leftEvt(t)))
	})

	_, err := n.CreateRoom(ctx, "wallet-a", game.Chess)
	require.NoError(t, err)

	t.Run("waiting room is left unchanged", func(t *testing.T) {
		require.NoError(t, n.HandleMessage(ctx, leftEvt(t)))
		room, err := mem.Room(ctx)
		require.NoError(t, err)
		require.Equal(t, game.StatusWaitingForPlayer, room.Status)
	})

	seatJoiner(t, n)

	t.Run("running game becomes abandoned", func(t *testing.T) {
		require.NoError(t, n.HandleMessage(ctx, leftEvt(t)))
		room, err := mem.Room(ctx)
		require.NoError(t, err)
		require.Equal(t, game.StatusAbandoned, room.Status)
		require.Equal(t, "opponent_left", room.EndReason)
	})
}

func TestLeaveRoom(t *testing.T) {
	t.Run("host notifies the seated joiner", func(t *testing.T) {
		n, sender, mem := newTestNode(t)
		ctx := context.Background()
		registerWallet(t, n, "wallet-a", "alice")

		_, err := n.CreateRoom(ctx, "wallet-a", game.Chess)
		require.NoError(t, err)
		seatJoiner(t, n)

		require.NoError(t, n.LeaveRoom(ctx, "wallet-a"))

		evt := sender.lastTo(t, joinerID)
		require.Equal(t, ws.EventPlayerLeft, evt.Type)

		_, err = mem.Room(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)

		hosting, err := mem.Hosting(ctx)
		require.NoError(t, err)
		require.False(t, hosting)
	})

	t.Run("joiner notifies the recorded host", func(t *testing.T) {
		n, sender, mem := newTestNode(t)
		ctx := context.Background()
		registerWallet(t, n, "wallet-a", "alice")

		require.NoError(t, n.JoinRoom(ctx, "wallet-a", joinerID))
		require.NoError(t, n.LeaveRoom(ctx, "wallet-a"))

		evt := sender.lastTo(t, joinerID)
		require.Equal(t, ws.EventPlayerLeft, evt.Type)

		joined, err := mem.JoinedHost(ctx)
		require.NoError(t, err)
		require.Empty(t, joined)
	})
}

func TestClearRoom(t *testing.T) {
	n, sender, mem := newTestNode(t)
	ctx := context.Background()
	registerWallet(t, n, "wallet-a", "alice")

	_, err := n.CreateRoom(ctx, "wallet-a", game.Reversi)
	require.NoError(t, err)
	seatJoiner(t, n)

	before := len(sender.sent)
	require.NoError(t, n.ClearRoom(ctx))
	require.Len(t, sender.sent, before, "clearing is silent")

	_, err = mem.Room(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	// The slot is free for a new room.
	_, err = n.CreateRoom(ctx, "wallet-a", game.Mancala)
	require.NoError(t, err)
}

func TestSyncInbox(t *testing.T) {
	n, _, _ := newTestNode(t)
	require.NoError(t, n.SyncInbox(context.Background()))
}

func TestUnknownMessageType(t *testing.T) {
	n, _, _ := newTestNode(t)
	err := n.HandleMessage(context.Background(), ws.Event{Type: "mystery"})
	require.Error(t, err)
}
