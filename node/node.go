// Package node runs one chain. Every operation and every inbound peer
// message executes under a single mutex, so state transitions are
// strictly sequential the way a chain's block execution is. Outbound
// messages are fire and forget; nothing in here waits on a peer.
package node

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/openarcade/arcade-server/game"
	"github.com/openarcade/arcade-server/store"
	"github.com/openarcade/arcade-server/ws"
)

// Sender delivers events to peer nodes. Implemented by ws.Manager;
// tests substitute a recorder.
type Sender interface {
	Send(target string, evt ws.Event)
	Reachable(target string) bool
}

const startingCoins = 100

type Node struct {
	mu     sync.Mutex
	id     string
	store  store.Store
	sender Sender
	now    func() int64
}

func New(id string, s store.Store, sender Sender) *Node {
	return &Node{
		id:     id,
		store:  s,
		sender: sender,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// ID is this chain's context id, the authority peers dial to reach it.
func (n *Node) ID() string {
	return n.id
}

// SetSender wires the peer transport in after construction. The node
// and the transport reference each other, so one side has to be set
// late; call this before serving traffic.
func (n *Node) SetSender(sender Sender) {
	n.sender = sender
}

// Register creates the wallet's profile with the starting coin grant.
func (n *Node) Register(ctx context.Context, wallet, username string) (*game.PlayerProfile, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := n.store.Profile(ctx, wallet); err == nil {
		return nil, game.ErrAlreadyRegistered
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	profile := &game.PlayerProfile{
		Username:  username,
		Wallet:    wallet,
		Coins:     startingCoins,
		CreatedAt: n.now(),
	}

	if err := n.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile changes the username on an existing profile.
func (n *Node) UpdateProfile(ctx context.Context, wallet, username string) (*game.PlayerProfile, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	profile, err := n.store.Profile(ctx, wallet)
	if errors.Is(err, store.ErrNotFound) {
		return nil, game.ErrNotRegistered
	}
	if err != nil {
		return nil, err
	}

	if username != "" {
		profile.Username = username
	}

	if err := n.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateRoom opens this chain's room slot with the caller as host.
func (n *Node) CreateRoom(ctx context.Context, wallet string, gameType game.GameType) (*game.Room, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	profile, err := n.profileOf(ctx, wallet)
	if err != nil {
		return nil, err
	}

	hosting, err := n.store.Hosting(ctx)
	if err != nil {
		return nil, err
	}
	if hosting {
		return nil, game.ErrRoomAlreadyExists
	}

	// A stale snapshot from a match played elsewhere does not block the
	// slot; the fresh room simply replaces it.
	room := game.NewRoom(n.id, wallet, profile.Username, gameType, n.now())

	if err := n.store.SetRoom(ctx, room); err != nil {
		return nil, err
	}
	if err := n.store.SetHosting(ctx, true); err != nil {
		return nil, err
	}
	return room, nil
}

// JoinRoom asks the target chain's host to seat the caller. The local
// room is not touched; the join lands when the host's acceptance
// snapshot comes back.
func (n *Node) JoinRoom(ctx context.Context, wallet, hostID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	profile, err := n.profileOf(ctx, wallet)
	if err != nil {
		return err
	}

	if hostID == n.id {
		return game.ErrCannotJoinOwnRoom
	}
	if !n.sender.Reachable(hostID) {
		return game.ErrRoomNotFound
	}

	evt, err := ws.NewEvent(ws.EventJoinRequest, ws.PayloadJoinRequest{
		JoinerID:       n.id,
		JoinerWallet:   wallet,
		JoinerUsername: profile.Username,
	})
	if err != nil {
		return err
	}
	n.sender.Send(hostID, evt)

	if err := n.store.SetJoinedHost(ctx, hostID); err != nil {
		return err
	}

	recent, err := n.store.RecentRooms(ctx)
	if err != nil {
		return err
	}
	return n.store.SetRecentRooms(ctx, store.PushRecentRoom(recent, hostID))
}

// LeaveRoom clears the local room unconditionally and tells the peer,
// best effort. The peer marks abandonment on its own copy; nothing here
// waits for that.
func (n *Node) LeaveRoom(ctx context.Context, wallet string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	room, err := n.store.Room(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	joinedHost, err := n.store.JoinedHost(ctx)
	if err != nil {
		return err
	}

	// Pick the peer to notify: the second player when hosting, the
	// recorded host when joined elsewhere.
	target := joinedHost
	if room != nil && room.HostID == n.id && len(room.PlayerIDs) > 1 {
		target = room.PlayerIDs[1]
	}

	if target != "" && target != n.id {
		evt, err := ws.NewEvent(ws.EventPlayerLeft, ws.PayloadPlayerLeft{
			PlayerID:     n.id,
			PlayerWallet: wallet,
		})
		if err != nil {
			return err
		}
		n.sender.Send(target, evt)
	}

	return n.clearLocalRoom(ctx)
}

// ClearRoom discards all local room state without telling anyone.
func (n *Node) ClearRoom(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.clearLocalRoom(ctx)
}

func (n *Node) clearLocalRoom(ctx context.Context) error {
	if err := n.store.ClearRoom(ctx); err != nil {
		return err
	}
	if err := n.store.SetHosting(ctx, false); err != nil {
		return err
	}
	return n.store.SetJoinedHost(ctx, "")
}

// MakeMove applies the caller's move to the local room, syncs the new
// snapshot to the opponent's chain and, on a terminal move, distributes
// rewards to both participants' chains.
func (n *Node) MakeMove(ctx context.Context, wallet string, mv game.MoveData) (*game.Room, game.MoveResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	room, err := n.store.Room(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, game.MoveResult{}, game.ErrRoomNotFound
	}
	if err != nil {
		return nil, game.MoveResult{}, err
	}

	result, err := room.ApplyMove(wallet, mv, n.now())
	if err != nil {
		return nil, game.MoveResult{}, err
	}

	if err := n.store.SetRoom(ctx, room); err != nil {
		return nil, game.MoveResult{}, err
	}

	player, _ := room.PlayerFor(wallet)
	if opponent := room.OpponentID(player); opponent != "" && opponent != n.id {
		evt, err := ws.NewEvent(ws.EventGameMoveSync, ws.PayloadRoomSync{Room: room})
		if err != nil {
			return nil, game.MoveResult{}, err
		}
		n.sender.Send(opponent, evt)
	}

	if room.Status.Terminal() {
		if err := n.distributeRewards(ctx, room); err != nil {
			return nil, game.MoveResult{}, err
		}
	}

	return room, result, nil
}

// distributeRewards sends one reward message per roster slot to that
// participant's own chain. The slot living on this chain is applied
// directly since the executor lock is already held.
func (n *Node) distributeRewards(ctx context.Context, room *game.Room) error {
	for slot, wallet := range room.Wallets {
		reward := game.RewardFor(room.GameType, room.Winner, slot)

		if room.PlayerIDs[slot] == n.id {
			if err := n.applyReward(ctx, wallet, reward.XP, reward.Coins); err != nil {
				return err
			}
			continue
		}

		evt, err := ws.NewEvent(ws.EventRewardSync, ws.PayloadRewardSync{
			PlayerWallet: wallet,
			XPEarned:     reward.XP,
			CoinsEarned:  reward.Coins,
			IsWinner:     reward.IsWinner,
		})
		if err != nil {
			return err
		}
		n.sender.Send(room.PlayerIDs[slot], evt)
	}
	return nil
}

// applyReward adds a payout onto a stored profile. Unknown wallets are
// skipped: a reward for a player this chain never registered has
// nowhere to land.
func (n *Node) applyReward(ctx context.Context, wallet string, xp, coins uint64) error {
	profile, err := n.store.Profile(ctx, wallet)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	profile.XP += xp
	profile.Coins += coins
	profile.TotalGames++

	return n.store.SaveProfile(ctx, profile)
}

// SyncInbox exists so clients can poke a chain into processing; all
// delivery here is push-based, so there is nothing to drain.
func (n *Node) SyncInbox(ctx context.Context) error {
	return nil
}

// profileOf loads a wallet's profile, mapping absence to NotRegistered.
func (n *Node) profileOf(ctx context.Context, wallet string) (*game.PlayerProfile, error) {
	profile, err := n.store.Profile(ctx, wallet)
	if errors.Is(err, store.ErrNotFound) {
		return nil, game.ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return profile, nil
}
