package auction

import (
	"context"
	"errors"
	"fmt"

	"player-auction/internal/auctionerrors"
	"player-auction/internal/clock"
	"player-auction/internal/ledger"
	model "player-auction/internal/models"
	"player-auction/internal/notifier"
	"player-auction/utils"
)

// SnapshotBidLimit bounds the recent-bid window in the observer view.
const SnapshotBidLimit = 10

// Channel is the notifier channel all auction mutations publish on.
const Channel = "live-auction"

// AuctionService owns the lifecycle of auction lots and is the sole mutator
// of lot and purse state. Writes go through the ledger's compare-and-commit,
// so concurrent bids against the same prior current bid serialize with
// exactly one winner. Losers get a conflict and must retry against fresh
// state; the service never retries on its own.
type AuctionService struct {
	ledger   ledger.Ledger
	notifier *notifier.Notifier
	clock    clock.Clock
}

// NewAuctionService creates an AuctionService instance.
func NewAuctionService(ldg ledger.Ledger, n *notifier.Notifier, clk clock.Clock) *AuctionService {
	return &AuctionService{
		ledger:   ldg,
		notifier: n,
		clock:    clk,
	}
}

// CreateLot registers a Pending lot for a player. A zero startingPrice
// falls back to the player's base price. A Sold player cannot be lotted
// again; an Unsold player can come back for another round.
func (s *AuctionService) CreateLot(ctx context.Context, playerID string, startingPrice int64) (model.AuctionLot, error) {
	if playerID == "" {
		return model.AuctionLot{}, fmt.Errorf("service: %w - missing player ID", auctionerrors.ErrInvalidBid)
	}
	if startingPrice < 0 {
		return model.AuctionLot{}, fmt.Errorf("service: %w - negative starting price", auctionerrors.ErrInvalidBid)
	}

	player, err := s.ledger.GetPlayer(ctx, playerID)
	if err != nil {
		return model.AuctionLot{}, fmt.Errorf("service: failed to load player %s: %w", playerID, err)
	}
	if player.Status == model.PlayerSold {
		return model.AuctionLot{}, fmt.Errorf("service: player %s: %w", playerID, auctionerrors.ErrPlayerSold)
	}
	if startingPrice == 0 {
		startingPrice = player.BasePrice
	}

	lot := model.AuctionLot{
		LotID:         utils.GenerateID(),
		PlayerID:      playerID,
		Status:        model.LotPending,
		StartingPrice: startingPrice,
	}

	if err := s.ledger.CreateLot(ctx, lot); err != nil {
		return model.AuctionLot{}, fmt.Errorf("service: failed to create lot for player %s: %w", playerID, err)
	}

	return lot, nil
}

// OpenLot transitions a Pending lot to Live. Fails with a conflict while
// another lot is live.
func (s *AuctionService) OpenLot(ctx context.Context, lotID string) (model.AuctionLot, error) {
	if lotID == "" {
		return model.AuctionLot{}, fmt.Errorf("service: %w - empty lot ID", auctionerrors.ErrInvalidBid)
	}

	lot, err := s.ledger.SetLotLive(ctx, lotID, s.clock.Now())
	if err != nil {
		return model.AuctionLot{}, fmt.Errorf("service: failed to open lot %s: %w", lotID, err)
	}

	s.notifier.Publish(Channel, notifier.ChangeLot)
	return lot, nil
}

// PlaceBid validates and commits a team's bid on a lot. Validation runs
// against a fresh lot+team read; the commit compares against the same prior
// current bid, so a ladder that moved in between surfaces as ErrStaleBid
// rather than silently overwriting a newer leader.
func (s *AuctionService) PlaceBid(ctx context.Context, lotID, teamID string, amount int64) (model.Bid, error) {
	if lotID == "" || teamID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing lotID or teamID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	lot, err := s.ledger.GetLot(ctx, lotID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}

	team, err := s.ledger.GetTeam(ctx, teamID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load team %s: %w", teamID, err)
	}

	if err := ValidateBid(lot, team, amount); err != nil {
		return model.Bid{}, fmt.Errorf("service: bid rejected: %w", err)
	}

	bid := model.Bid{
		BidID:   utils.GenerateID(),
		LotID:   lotID,
		TeamID:  teamID,
		Amount:  amount,
		BidTime: s.clock.Now(),
	}

	committed, err := s.ledger.AppendBid(ctx, bid, lot.CurrentBid)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to commit bid for lot %s by team %s: %w", lotID, teamID, err)
	}

	s.notifier.Publish(Channel, notifier.ChangeBid)
	return committed, nil
}

// CloseLot settles a live lot. Sold deducts the winning amount from the
// leader's purse in the same commit that flips the lot and player status.
// Closing an already settled lot returns the recorded outcome unchanged.
func (s *AuctionService) CloseLot(ctx context.Context, lotID string, outcome model.LotOutcome) (model.LotClosure, error) {
	if lotID == "" {
		return model.LotClosure{}, fmt.Errorf("service: %w - empty lot ID", auctionerrors.ErrInvalidBid)
	}
	if outcome != model.OutcomeSold && outcome != model.OutcomeUnsold {
		return model.LotClosure{}, fmt.Errorf("service: %w - unknown outcome %q", auctionerrors.ErrInvalidBid, outcome)
	}

	closure, err := s.ledger.CloseLot(ctx, lotID, outcome)
	if err != nil {
		return model.LotClosure{}, fmt.Errorf("service: failed to close lot %s: %w", lotID, err)
	}

	if !closure.AlreadyClosed {
		s.notifier.Publish(Channel, notifier.ChangeLot)
		if closure.Outcome == model.OutcomeSold {
			s.notifier.Publish(Channel, notifier.ChangePurse)
		}
	}

	return closure, nil
}

// Snapshot returns the consistent observer view: live lot, player, leader,
// the recent bid ladder and every team's purse. It is the sole read entry
// point for any presentation layer and never blocks bid writers.
func (s *AuctionService) Snapshot(ctx context.Context) (model.AuctionSnapshot, error) {
	snap, err := s.ledger.ProjectSnapshot(ctx, SnapshotBidLimit)
	if err != nil {
		return model.AuctionSnapshot{}, fmt.Errorf("service: failed to project snapshot: %w", err)
	}
	return snap, nil
}

// ListPlayers returns the player catalogue ordered by name.
func (s *AuctionService) ListPlayers(ctx context.Context) ([]model.Player, error) {
	players, err := s.ledger.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list players: %w", err)
	}
	return players, nil
}

// ListTeams returns all teams ordered by name.
func (s *AuctionService) ListTeams(ctx context.Context) ([]model.Team, error) {
	teams, err := s.ledger.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list teams: %w", err)
	}
	return teams, nil
}

// IsConflict reports whether err is one of the retry-with-fresh-state
// conflicts rather than a hard validation failure.
func IsConflict(err error) bool {
	return errors.Is(err, auctionerrors.ErrStaleBid) ||
		errors.Is(err, auctionerrors.ErrLotConflict) ||
		errors.Is(err, auctionerrors.ErrLotClosed)
}
