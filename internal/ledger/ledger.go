package ledger

import (
	"context"
	"time"

	model "player-auction/internal/models"
)

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

// Ledger is the durable record of teams, players, lots and bids. The auction
// core depends on it only through this contract; implementations must make
// AppendBid and CloseLot atomic so no half-applied mutation is ever readable.
type Ledger interface {
	AddTeam(ctx context.Context, team model.Team) error
	AddPlayer(ctx context.Context, player model.Player) error
	GetTeam(ctx context.Context, teamID string) (model.Team, error)
	GetPlayer(ctx context.Context, playerID string) (model.Player, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	ListPlayers(ctx context.Context) ([]model.Player, error)

	CreateLot(ctx context.Context, lot model.AuctionLot) error
	GetLot(ctx context.Context, lotID string) (model.AuctionLot, error)
	// GetLiveLot returns nil when no lot is live.
	GetLiveLot(ctx context.Context) (*model.AuctionLot, error)
	// SetLotLive transitions a Pending lot to Live. At most one lot may be
	// live at a time; violations return ErrLotConflict. Settled lots are
	// archived to Closed as part of the same commit.
	SetLotLive(ctx context.Context, lotID string, at time.Time) (model.AuctionLot, error)

	// AppendBid commits an accepted bid and the lot leader together, guarded
	// by a compare-and-commit on the lot's current bid: priorBid is the
	// current_bid the caller validated against (nil for no bid yet). A
	// mismatch returns ErrStaleBid; a lot settled in the meantime returns
	// ErrLotClosed. Bid times are kept strictly increasing per lot.
	AppendBid(ctx context.Context, bid model.Bid, priorBid *int64) (model.Bid, error)

	// CloseLot settles a live lot. Sold deducts the winning amount from the
	// leading team's purse and marks the player Sold in the same commit;
	// Unsold marks the player Unsold. Closing an already settled lot is a
	// no-op returning the recorded outcome with AlreadyClosed set.
	CloseLot(ctx context.Context, lotID string, outcome model.LotOutcome) (model.LotClosure, error)

	RecentBids(ctx context.Context, lotID string, limit int) ([]model.Bid, error)

	// ProjectSnapshot assembles the observer view from a single consistent
	// read: live lot, its player and leader, the recent bid ladder, and all
	// team purses ordered by name.
	ProjectSnapshot(ctx context.Context, bidLimit int) (model.AuctionSnapshot, error)
}
