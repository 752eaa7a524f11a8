package main

import (
	"context"
	"fmt"
	"os"

	"player-auction/internal/auction"
	"player-auction/internal/clock"
	"player-auction/internal/ledger"
	ledgerpg "player-auction/internal/ledger/postgres"
	model "player-auction/internal/models"
	"player-auction/internal/notifier"
	"player-auction/internal/server"
	"player-auction/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	ctx := context.Background()

	ldg, cleanup, err := buildLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize ledger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	n := notifier.NewNotifier()
	auctionSvc := auction.NewAuctionService(ldg, n, clock.NewSystem())

	router := server.SetupRouter(auctionSvc, n)

	port := getPort()
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildLedger picks the ledger backend from LEDGER: "postgres" connects to
// DATABASE_URL; anything else runs the in-memory ledger seeded with the
// sample auction pool.
func buildLedger(ctx context.Context) (ledger.Ledger, func(), error) {
	if os.Getenv("LEDGER") == "postgres" {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			return nil, nil, fmt.Errorf("LEDGER=postgres requires DATABASE_URL")
		}

		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		if err := ledgerpg.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}

		utils.Info("ledger: postgres backend ready", nil)
		return ledgerpg.NewLedger(pool), pool.Close, nil
	}

	memory := ledger.NewMemoryLedger()
	prepopulateLedger(ctx, memory)
	utils.Info("ledger: in-memory backend with sample data", nil)
	return memory, func() {}, nil
}

// prepopulateLedger seeds teams and players into the in-memory ledger
func prepopulateLedger(ctx context.Context, ldg *ledger.MemoryLedger) {
	teams := []model.Team{
		{TeamID: "team-mumbai", Name: "Mumbai Meteors", PurseRemaining: 94_000_000},
		{TeamID: "team-delhi", Name: "Delhi Strikers", PurseRemaining: 88_000_000},
		{TeamID: "team-chennai", Name: "Chennai Chargers", PurseRemaining: 101_000_000},
		{TeamID: "team-bengal", Name: "Bengal Tigers", PurseRemaining: 79_000_000},
		{TeamID: "team-hyderabad", Name: "Hyderabad Hawks", PurseRemaining: 90_000_000},
		{TeamID: "team-punjab", Name: "Punjab Panthers", PurseRemaining: 83_000_000},
	}
	for _, team := range teams {
		if err := ldg.AddTeam(ctx, team); err != nil {
			utils.Warn("seed team failed", map[string]any{"team_id": team.TeamID, "error": err.Error()})
		}
	}

	players := []model.Player{
		{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 2_000_000},
		{PlayerID: "player2", Name: "Kabir Sharma", Role: model.RoleBowler, BasePrice: 1_500_000},
		{PlayerID: "player3", Name: "Dev Patel", Role: model.RoleAllRounder, BasePrice: 2_500_000},
		{PlayerID: "player4", Name: "Rohan Iyer", Role: model.RoleWicketkeeper, BasePrice: 1_000_000},
	}
	for _, player := range players {
		if err := ldg.AddPlayer(ctx, player); err != nil {
			utils.Warn("seed player failed", map[string]any{"player_id": player.PlayerID, "error": err.Error()})
		}
	}
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
