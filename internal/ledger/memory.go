package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
)

// MemoryLedger is a concurrency-safe in-memory implementation of Ledger.
// A single RWMutex makes every write atomic and every snapshot projection a
// consistent point-in-time read that never blocks other readers.
type MemoryLedger struct {
	mu      sync.RWMutex
	teams   map[string]model.Team
	players map[string]model.Player
	lots    map[string]model.AuctionLot
	bids    map[string][]model.Bid // key: lotID -> bids in commit order
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		teams:   make(map[string]model.Team),
		players: make(map[string]model.Player),
		lots:    make(map[string]model.AuctionLot),
		bids:    make(map[string][]model.Bid),
	}
}

func (l *MemoryLedger) AddTeam(_ context.Context, team model.Team) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.teams[team.TeamID] = team
	return nil
}

func (l *MemoryLedger) AddPlayer(_ context.Context, player model.Player) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if player.Status == "" {
		player.Status = model.PlayerAvailable
	}
	l.players[player.PlayerID] = player
	return nil
}

func (l *MemoryLedger) GetTeam(_ context.Context, teamID string) (model.Team, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	team, ok := l.teams[teamID]
	if !ok {
		return model.Team{}, fmt.Errorf("get team %s: %w", teamID, auctionerrors.ErrTeamNotFound)
	}
	return team, nil
}

func (l *MemoryLedger) GetPlayer(_ context.Context, playerID string) (model.Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	player, ok := l.players[playerID]
	if !ok {
		return model.Player{}, fmt.Errorf("get player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
	}
	return player, nil
}

func (l *MemoryLedger) ListTeams(_ context.Context) ([]model.Team, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.teamsByName(), nil
}

func (l *MemoryLedger) ListPlayers(_ context.Context) ([]model.Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	players := make([]model.Player, 0, len(l.players))
	for _, p := range l.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (l *MemoryLedger) CreateLot(_ context.Context, lot model.AuctionLot) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	player, ok := l.players[lot.PlayerID]
	if !ok {
		return fmt.Errorf("create lot for player %s: %w", lot.PlayerID, auctionerrors.ErrPlayerNotFound)
	}
	if player.Status == model.PlayerSold {
		return fmt.Errorf("create lot for player %s: %w", lot.PlayerID, auctionerrors.ErrPlayerSold)
	}
	l.lots[lot.LotID] = lot
	return nil
}

func (l *MemoryLedger) GetLot(_ context.Context, lotID string) (model.AuctionLot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	lot, ok := l.lots[lotID]
	if !ok {
		return model.AuctionLot{}, fmt.Errorf("get lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return cloneLot(lot), nil
}

func (l *MemoryLedger) GetLiveLot(_ context.Context) (*model.AuctionLot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if lot := l.liveLot(); lot != nil {
		copied := cloneLot(*lot)
		return &copied, nil
	}
	return nil, nil
}

func (l *MemoryLedger) SetLotLive(_ context.Context, lotID string, at time.Time) (model.AuctionLot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lot, ok := l.lots[lotID]
	if !ok {
		return model.AuctionLot{}, fmt.Errorf("open lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	if lot.Status != model.LotPending {
		return model.AuctionLot{}, fmt.Errorf("open lot %s in status %s: %w", lotID, lot.Status, auctionerrors.ErrLotConflict)
	}
	if live := l.liveLot(); live != nil {
		return model.AuctionLot{}, fmt.Errorf("open lot %s while lot %s is live: %w", lotID, live.LotID, auctionerrors.ErrLotConflict)
	}

	// Archive earlier settled lots; only the new lot stays current.
	for id, old := range l.lots {
		if old.Status == model.LotSold || old.Status == model.LotUnsold {
			old.Status = model.LotClosed
			l.lots[id] = old
		}
	}

	lot.Status = model.LotLive
	lot.StartedAt = at
	l.lots[lotID] = lot
	return cloneLot(lot), nil
}

func (l *MemoryLedger) AppendBid(_ context.Context, bid model.Bid, priorBid *int64) (model.Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lot, ok := l.lots[bid.LotID]
	if !ok {
		return model.Bid{}, fmt.Errorf("append bid for lot %s: %w", bid.LotID, auctionerrors.ErrLotNotFound)
	}
	if lot.Settled() {
		return model.Bid{}, fmt.Errorf("append bid for lot %s: %w", bid.LotID, auctionerrors.ErrLotClosed)
	}
	if lot.Status != model.LotLive {
		return model.Bid{}, fmt.Errorf("append bid for lot %s in status %s: %w", bid.LotID, lot.Status, auctionerrors.ErrLotNotLive)
	}

	// Compare-and-commit: the bid was validated against priorBid; if the
	// ladder moved since, the caller must re-validate and retry.
	if !sameAmount(lot.CurrentBid, priorBid) {
		return model.Bid{}, fmt.Errorf("append bid for lot %s: %w", bid.LotID, auctionerrors.ErrStaleBid)
	}

	// Keep bid_time strictly increasing per lot even when commits land
	// within the clock's resolution.
	if prev := l.bids[bid.LotID]; len(prev) > 0 {
		last := prev[len(prev)-1].BidTime
		if !bid.BidTime.After(last) {
			bid.BidTime = last.Add(time.Millisecond)
		}
	}

	l.bids[bid.LotID] = append(l.bids[bid.LotID], bid)

	amount := bid.Amount
	teamID := bid.TeamID
	lot.CurrentBid = &amount
	lot.CurrentTeamID = &teamID
	l.lots[bid.LotID] = lot

	return bid, nil
}

func (l *MemoryLedger) CloseLot(_ context.Context, lotID string, outcome model.LotOutcome) (model.LotClosure, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lot, ok := l.lots[lotID]
	if !ok {
		return model.LotClosure{}, fmt.Errorf("close lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}

	// Idempotent: a settled lot reports its recorded outcome unchanged.
	if lot.Settled() {
		return l.recordedClosure(lot), nil
	}
	if lot.Status != model.LotLive {
		return model.LotClosure{}, fmt.Errorf("close lot %s in status %s: %w", lotID, lot.Status, auctionerrors.ErrLotNotLive)
	}

	player := l.players[lot.PlayerID]

	switch outcome {
	case model.OutcomeSold:
		if lot.CurrentTeamID == nil || lot.CurrentBid == nil {
			return model.LotClosure{}, fmt.Errorf("close lot %s as sold: %w", lotID, auctionerrors.ErrNoLeader)
		}
		team, ok := l.teams[*lot.CurrentTeamID]
		if !ok {
			return model.LotClosure{}, fmt.Errorf("close lot %s: winning team %s: %w", lotID, *lot.CurrentTeamID, auctionerrors.ErrTeamNotFound)
		}
		if team.PurseRemaining < *lot.CurrentBid {
			// The validator makes this unreachable; refusing here keeps the
			// purse invariant intact even against a corrupted ledger.
			return model.LotClosure{}, fmt.Errorf("close lot %s: deduct %d from team %s: %w", lotID, *lot.CurrentBid, team.TeamID, auctionerrors.ErrInsufficientPurse)
		}

		// Purse deduction, player status and lot status commit together
		// under the write lock; no reader can observe a partial closure.
		team.PurseRemaining -= *lot.CurrentBid
		l.teams[team.TeamID] = team

		player.Status = model.PlayerSold
		l.players[player.PlayerID] = player

		lot.Status = model.LotSold
		l.lots[lotID] = lot

		return model.LotClosure{
			Lot:           cloneLot(lot),
			Outcome:       model.OutcomeSold,
			WinningTeam:   &team,
			WinningAmount: *lot.CurrentBid,
		}, nil

	case model.OutcomeUnsold:
		player.Status = model.PlayerUnsold
		l.players[player.PlayerID] = player

		lot.Status = model.LotUnsold
		l.lots[lotID] = lot

		return model.LotClosure{Lot: cloneLot(lot), Outcome: model.OutcomeUnsold}, nil

	default:
		return model.LotClosure{}, fmt.Errorf("close lot %s: unknown outcome %q: %w", lotID, outcome, auctionerrors.ErrInvalidBid)
	}
}

func (l *MemoryLedger) RecentBids(_ context.Context, lotID string, limit int) ([]model.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bids, ok := l.bids[lotID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("recent bids for lot %s: %w", lotID, auctionerrors.ErrNoBids)
	}
	return recentFirst(bids, limit), nil
}

func (l *MemoryLedger) ProjectSnapshot(_ context.Context, bidLimit int) (model.AuctionSnapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	live := l.liveLot()
	if live == nil {
		return model.AuctionSnapshot{
			Bids:       []model.BidEntry{},
			TeamPurses: []model.TeamPurse{},
		}, nil
	}

	lot := cloneLot(*live)
	snap := model.AuctionSnapshot{
		Lot:              &lot,
		CurrentBidAmount: lot.AskingPrice(),
		Bids:             []model.BidEntry{},
		TeamPurses:       []model.TeamPurse{},
	}

	if player, ok := l.players[lot.PlayerID]; ok {
		snap.Player = &player
	}
	if lot.CurrentTeamID != nil {
		if team, ok := l.teams[*lot.CurrentTeamID]; ok {
			snap.CurrentTeam = &team
		}
	}

	for _, bid := range recentFirst(l.bids[lot.LotID], bidLimit) {
		entry := model.BidEntry{
			BidID:   bid.BidID,
			TeamID:  bid.TeamID,
			Amount:  bid.Amount,
			BidTime: bid.BidTime,
		}
		if team, ok := l.teams[bid.TeamID]; ok {
			entry.TeamName = team.Name
		}
		snap.Bids = append(snap.Bids, entry)
	}

	for _, team := range l.teamsByName() {
		snap.TeamPurses = append(snap.TeamPurses, model.TeamPurse{
			TeamID:         team.TeamID,
			Name:           team.Name,
			PurseRemaining: team.PurseRemaining,
		})
	}

	return snap, nil
}

// recordedClosure rebuilds the closure of an already settled lot. The lot
// status carries the outcome until archival; after that the player's status
// is the durable record. Must be called with l.mu held.
func (l *MemoryLedger) recordedClosure(lot model.AuctionLot) model.LotClosure {
	closure := model.LotClosure{Lot: cloneLot(lot), Outcome: model.OutcomeUnsold, AlreadyClosed: true}

	sold := lot.Status == model.LotSold
	if lot.Status == model.LotClosed {
		sold = l.players[lot.PlayerID].Status == model.PlayerSold
	}
	if sold && lot.CurrentTeamID != nil && lot.CurrentBid != nil {
		closure.Outcome = model.OutcomeSold
		closure.WinningAmount = *lot.CurrentBid
		if team, ok := l.teams[*lot.CurrentTeamID]; ok {
			closure.WinningTeam = &team
		}
	}
	return closure
}

// liveLot must be called with l.mu held.
func (l *MemoryLedger) liveLot() *model.AuctionLot {
	for id, lot := range l.lots {
		if lot.Status == model.LotLive {
			found := l.lots[id]
			return &found
		}
	}
	return nil
}

// teamsByName must be called with l.mu held.
func (l *MemoryLedger) teamsByName() []model.Team {
	teams := make([]model.Team, 0, len(l.teams))
	for _, t := range l.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

// recentFirst copies bids newest-first, truncated to limit (<=0 means all).
func recentFirst(bids []model.Bid, limit int) []model.Bid {
	out := make([]model.Bid, len(bids))
	for i, b := range bids {
		out[len(bids)-1-i] = b
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// cloneLot copies a lot without aliasing its leader pointers, so callers
// can never mutate stored state through a returned lot.
func cloneLot(lot model.AuctionLot) model.AuctionLot {
	if lot.CurrentBid != nil {
		amount := *lot.CurrentBid
		lot.CurrentBid = &amount
	}
	if lot.CurrentTeamID != nil {
		teamID := *lot.CurrentTeamID
		lot.CurrentTeamID = &teamID
	}
	return lot
}

func sameAmount(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
