package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"player-auction/internal/auctionerrors"
	"player-auction/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Validation rejections and conflicts are both 409: the request was well
// formed, the auction state simply disagrees, and the caller may retry with
// refreshed state.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrLotNotLive):
		return http.StatusConflict, "lot is not live"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrInsufficientPurse):
		return http.StatusConflict, "insufficient purse remaining"
	case errors.Is(err, auctionerrors.ErrSelfOutbid):
		return http.StatusConflict, "team already holds the leading bid"
	case errors.Is(err, auctionerrors.ErrNoLeader):
		return http.StatusConflict, "lot has no leading bid"
	case errors.Is(err, auctionerrors.ErrPlayerSold):
		return http.StatusConflict, "player already sold"
	case errors.Is(err, auctionerrors.ErrStaleBid):
		return http.StatusConflict, "bid raced a newer bid, retry with refreshed state"
	case errors.Is(err, auctionerrors.ErrLotConflict):
		return http.StatusConflict, "another lot is already live"
	case errors.Is(err, auctionerrors.ErrLotClosed):
		return http.StatusConflict, "lot closed during validation"
	case errors.Is(err, auctionerrors.ErrTeamNotFound):
		return http.StatusNotFound, "team not found"
	case errors.Is(err, auctionerrors.ErrPlayerNotFound):
		return http.StatusNotFound, "player not found"
	case errors.Is(err, auctionerrors.ErrLotNotFound):
		return http.StatusNotFound, "lot not found"
	case errors.Is(err, auctionerrors.ErrNoLiveLot):
		return http.StatusNotFound, "no live lot"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for lot"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
