package auctionerrors

import "errors"

// Validation errors: the bid is inadmissible against current state. Always
// recoverable, surfaced to the submitter, no state change.
var (
	ErrInvalidBid        = errors.New("invalid bid")
	ErrLotNotLive        = errors.New("lot is not live")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrInsufficientPurse = errors.New("insufficient purse remaining")
	ErrSelfOutbid        = errors.New("team already holds the leading bid")
	ErrNoLeader          = errors.New("lot has no leading bid")
	ErrPlayerSold        = errors.New("player already sold")
)

// Conflict errors: state moved underneath the caller. Recoverable by
// retrying against refreshed state; the core never retries on its own.
var (
	ErrStaleBid    = errors.New("bid validated against stale current bid")
	ErrLotConflict = errors.New("another lot is already live")
	ErrLotClosed   = errors.New("lot closed during validation")
)

// Repository-level errors
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrLotNotFound    = errors.New("lot not found")
	ErrNoLiveLot      = errors.New("no live lot")
	ErrNoBids         = errors.New("no bids found for lot")
)
