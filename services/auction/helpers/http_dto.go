package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	LotID  string `json:"lot_id" binding:"required"`
	TeamID string `json:"team_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

type CreateLotRequest struct {
	PlayerID      string `json:"player_id" binding:"required"`
	StartingPrice int64  `json:"starting_price" binding:"omitempty,gt=0"`
}

type CloseLotRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=Sold Unsold"`
}

type BidResponse struct {
	BidID   string `json:"bid_id"`
	LotID   string `json:"lot_id"`
	TeamID  string `json:"team_id"`
	Amount  int64  `json:"amount"`
	BidTime string `json:"bid_time"`
}

type LotResponse struct {
	LotID         string `json:"lot_id"`
	PlayerID      string `json:"player_id"`
	Status        string `json:"status"`
	StartingPrice int64  `json:"starting_price"`
	StartedAt     string `json:"started_at,omitempty"`
}

type ClosureResponse struct {
	LotID         string `json:"lot_id"`
	Outcome       string `json:"outcome"`
	WinningTeamID string `json:"winning_team_id,omitempty"`
	WinningAmount int64  `json:"winning_amount,omitempty"`
	AlreadyClosed bool   `json:"already_closed"`
}
