package models

import "time"

// All monetary amounts are whole rupees as int64. Purse arithmetic must stay
// exact under repeated subtraction, so floats are never used for money.

// PlayerRole enumerates the auction catalogue roles
type PlayerRole string

const (
	RoleBatter       PlayerRole = "Batter"
	RoleBowler       PlayerRole = "Bowler"
	RoleAllRounder   PlayerRole = "All-Rounder"
	RoleWicketkeeper PlayerRole = "Wicketkeeper"
)

// PlayerStatus tracks whether a player has been through a lot yet
type PlayerStatus string

const (
	PlayerAvailable PlayerStatus = "Available"
	PlayerSold      PlayerStatus = "Sold"
	PlayerUnsold    PlayerStatus = "Unsold"
)

// LotStatus is the auction lot lifecycle: Pending -> Live -> Sold/Unsold.
// Settled lots are archived to Closed when the next lot goes Live.
type LotStatus string

const (
	LotPending LotStatus = "Pending"
	LotLive    LotStatus = "Live"
	LotSold    LotStatus = "Sold"
	LotUnsold  LotStatus = "Unsold"
	LotClosed  LotStatus = "Closed"
)

// LotOutcome is the operator's closure decision for a live lot
type LotOutcome string

const (
	OutcomeSold   LotOutcome = "Sold"
	OutcomeUnsold LotOutcome = "Unsold"
)

// Team represents a franchise bidding in the auction
type Team struct {
	TeamID         string `json:"team_id"`
	Name           string `json:"name"`
	PurseRemaining int64  `json:"purse_remaining"`
}

// Player represents a catalogue entry open to (or already through) bidding
type Player struct {
	PlayerID  string       `json:"player_id"`
	Name      string       `json:"name"`
	Role      PlayerRole   `json:"role"`
	BasePrice int64        `json:"base_price"`
	Status    PlayerStatus `json:"status"`
}

// AuctionLot is one player currently (or previously) open for bidding.
// CurrentBid is nil until the first bid is accepted; displays fall back to
// StartingPrice. CurrentTeamID is the leader, nil while there is no bid.
type AuctionLot struct {
	LotID         string    `json:"lot_id"`
	PlayerID      string    `json:"player_id"`
	Status        LotStatus `json:"status"`
	StartingPrice int64     `json:"starting_price"`
	StartedAt     time.Time `json:"started_at"`
	CurrentBid    *int64    `json:"current_bid"`
	CurrentTeamID *string   `json:"current_team_id"`
}

// Settled reports whether the lot has reached a terminal outcome.
func (l AuctionLot) Settled() bool {
	return l.Status == LotSold || l.Status == LotUnsold || l.Status == LotClosed
}

// AskingPrice is the amount a new bid must strictly exceed.
func (l AuctionLot) AskingPrice() int64 {
	if l.CurrentBid != nil && *l.CurrentBid > l.StartingPrice {
		return *l.CurrentBid
	}
	return l.StartingPrice
}

// Bid is an immutable, append-only ladder entry. BidTime is strictly
// increasing per lot.
type Bid struct {
	BidID   string    `json:"bid_id"`
	LotID   string    `json:"lot_id"`
	TeamID  string    `json:"team_id"`
	Amount  int64     `json:"amount"`
	BidTime time.Time `json:"bid_time"`
}

// LotClosure is the result of closing a lot. AlreadyClosed marks the
// idempotent path where the lot had been settled by an earlier call.
type LotClosure struct {
	Lot           AuctionLot `json:"lot"`
	Outcome       LotOutcome `json:"outcome"`
	WinningTeam   *Team      `json:"winning_team,omitempty"`
	WinningAmount int64      `json:"winning_amount,omitempty"`
	AlreadyClosed bool       `json:"already_closed"`
}

// BidEntry is a ladder row inside a snapshot, a bid joined with its team name.
type BidEntry struct {
	BidID    string    `json:"bid_id"`
	TeamID   string    `json:"team_id"`
	TeamName string    `json:"team_name"`
	Amount   int64     `json:"amount"`
	BidTime  time.Time `json:"bid_time"`
}

// TeamPurse is the per-team purse row shown alongside the live lot.
type TeamPurse struct {
	TeamID         string `json:"team_id"`
	Name           string `json:"name"`
	PurseRemaining int64  `json:"purse_remaining"`
}

// AuctionSnapshot is the immutable read view consumed by every observer.
// It is always assembled from one consistent ledger read, so the lot, its
// bid ladder, and the team purses can never be torn against each other.
// Lot is nil when no lot is live; Bids and TeamPurses are empty then.
type AuctionSnapshot struct {
	Lot              *AuctionLot `json:"lot"`
	Player           *Player     `json:"player"`
	CurrentTeam      *Team       `json:"current_team"`
	CurrentBidAmount int64       `json:"current_bid_amount"`
	Bids             []BidEntry  `json:"bids"`
	TeamPurses       []TeamPurse `json:"team_purses"`
}
