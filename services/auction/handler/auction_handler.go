package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	model "player-auction/internal/models"
	"player-auction/services/auction/helpers"
	"player-auction/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_service.go -package=handler

type AuctionServiceInterface interface {
	CreateLot(ctx context.Context, playerID string, startingPrice int64) (model.AuctionLot, error)
	OpenLot(ctx context.Context, lotID string) (model.AuctionLot, error)
	PlaceBid(ctx context.Context, lotID, teamID string, amount int64) (model.Bid, error)
	CloseLot(ctx context.Context, lotID string, outcome model.LotOutcome) (model.LotClosure, error)
	Snapshot(ctx context.Context) (model.AuctionSnapshot, error)
	ListPlayers(ctx context.Context) ([]model.Player, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), req.LotID, req.TeamID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: bid not accepted", map[string]any{
			"lot_id":  req.LotID,
			"team_id": req.TeamID,
			"amount":  req.Amount,
			"error":   err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:   bid.BidID,
		LotID:   bid.LotID,
		TeamID:  bid.TeamID,
		Amount:  bid.Amount,
		BidTime: bid.BidTime.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"bid_id":  bid.BidID,
		"lot_id":  bid.LotID,
		"team_id": bid.TeamID,
		"amount":  bid.Amount,
	})
}

// CreateLotHandler handles POST /lots
func (h *AuctionHandler) CreateLotHandler(c *gin.Context) {
	var req helpers.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateLotHandler", err)
		return
	}

	lot, err := h.service.CreateLot(c.Request.Context(), req.PlayerID, req.StartingPrice)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreateLotHandler: failed to create lot", map[string]any{
			"player_id": req.PlayerID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, lotResponse(lot), "lot created")
	helpers.LogSuccess("CreateLotHandler", "lot created", map[string]any{
		"lot_id":         lot.LotID,
		"player_id":      lot.PlayerID,
		"starting_price": lot.StartingPrice,
	})
}

// OpenLotHandler handles POST /lots/:lot_id/open
func (h *AuctionHandler) OpenLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")

	lot, err := h.service.OpenLot(c.Request.Context(), lotID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("OpenLotHandler: failed to open lot", map[string]any{
			"lot_id": lotID,
			"error":  err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, lotResponse(lot), "lot opened")
	helpers.LogSuccess("OpenLotHandler", "lot opened", map[string]any{
		"lot_id":    lot.LotID,
		"player_id": lot.PlayerID,
	})
}

// CloseLotHandler handles POST /lots/:lot_id/close
func (h *AuctionHandler) CloseLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")

	var req helpers.CloseLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CloseLotHandler", err)
		return
	}

	closure, err := h.service.CloseLot(c.Request.Context(), lotID, model.LotOutcome(req.Outcome))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CloseLotHandler: failed to close lot", map[string]any{
			"lot_id":  lotID,
			"outcome": req.Outcome,
			"error":   err.Error(),
		})
		return
	}

	resp := helpers.ClosureResponse{
		LotID:         closure.Lot.LotID,
		Outcome:       string(closure.Outcome),
		WinningAmount: closure.WinningAmount,
		AlreadyClosed: closure.AlreadyClosed,
	}
	if closure.WinningTeam != nil {
		resp.WinningTeamID = closure.WinningTeam.TeamID
	}

	utils.JSONResponse(c, http.StatusOK, resp, "lot closed")
	helpers.LogSuccess("CloseLotHandler", "lot closed", map[string]any{
		"lot_id":         closure.Lot.LotID,
		"outcome":        closure.Outcome,
		"already_closed": closure.AlreadyClosed,
	})
}

// GetSnapshotHandler handles GET /auction/snapshot
func (h *AuctionHandler) GetSnapshotHandler(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetSnapshotHandler: snapshot failed", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, snap, "snapshot retrieved successfully")
}

// ListPlayersHandler handles GET /players
func (h *AuctionHandler) ListPlayersHandler(c *gin.Context) {
	players, err := h.service.ListPlayers(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListPlayersHandler: error retrieving players", map[string]any{"error": err.Error()})
		return
	}

	if players == nil {
		players = []model.Player{}
	}

	utils.JSONResponse(c, http.StatusOK, players, "players retrieved successfully")
}

// ListTeamsHandler handles GET /teams
func (h *AuctionHandler) ListTeamsHandler(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListTeamsHandler: error retrieving teams", map[string]any{"error": err.Error()})
		return
	}

	if teams == nil {
		teams = []model.Team{}
	}

	utils.JSONResponse(c, http.StatusOK, teams, "teams retrieved successfully")
}

func lotResponse(lot model.AuctionLot) helpers.LotResponse {
	resp := helpers.LotResponse{
		LotID:         lot.LotID,
		PlayerID:      lot.PlayerID,
		Status:        string(lot.Status),
		StartingPrice: lot.StartingPrice,
	}
	if !lot.StartedAt.IsZero() {
		resp.StartedAt = lot.StartedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
