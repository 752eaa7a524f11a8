package server

import (
	"player-auction/internal/auction"
	"player-auction/internal/notifier"
	"player-auction/internal/ws"
	handler "player-auction/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService, n *notifier.Notifier) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	lots := router.Group("/lots")
	{
		lots.POST("", auctionHandler.CreateLotHandler)
		lots.POST("/:lot_id/open", auctionHandler.OpenLotHandler)
		lots.POST("/:lot_id/close", auctionHandler.CloseLotHandler)
	}

	live := router.Group("/auction")
	{
		live.GET("/snapshot", auctionHandler.GetSnapshotHandler)
		live.GET("/subscribe", ws.SubscribeHandler(n, auction.Channel))
	}

	router.GET("/players", auctionHandler.ListPlayersHandler)
	router.GET("/teams", auctionHandler.ListTeamsHandler)

	return router
}
