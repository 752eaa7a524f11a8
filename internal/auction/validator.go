package auction

import (
	"fmt"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
)

// ValidateBid decides whether a proposed bid is admissible against the given
// lot and team snapshots. It has no side effects and is safe to call
// concurrently and repeatedly; acceptance is only provisional until the
// ledger's compare-and-commit confirms the lot has not moved.
func ValidateBid(lot model.AuctionLot, team model.Team, amount int64) error {
	if lot.Status != model.LotLive {
		return fmt.Errorf("lot %s in status %s: %w", lot.LotID, lot.Status, auctionerrors.ErrLotNotLive)
	}

	if amount <= lot.AskingPrice() {
		return fmt.Errorf("bid %d must exceed %d: %w", amount, lot.AskingPrice(), auctionerrors.ErrBidTooLow)
	}

	if amount > team.PurseRemaining {
		return fmt.Errorf("bid %d exceeds purse %d of team %s: %w", amount, team.PurseRemaining, team.TeamID, auctionerrors.ErrInsufficientPurse)
	}

	// A leader outbidding itself would only burn its own purse.
	if lot.CurrentTeamID != nil && *lot.CurrentTeamID == team.TeamID {
		return fmt.Errorf("team %s leads lot %s: %w", team.TeamID, lot.LotID, auctionerrors.ErrSelfOutbid)
	}

	return nil
}
