package auction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"player-auction/internal/auctionerrors"
	"player-auction/internal/clock"
	"player-auction/internal/ledger"
	model "player-auction/internal/models"
	"player-auction/internal/notifier"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func newService(ldg ledger.Ledger) *AuctionService {
	return NewAuctionService(ldg, notifier.NewNotifier(), clock.NewSystem())
}

// Tests PlaceBid against a mocked ledger
func TestAuctionService_PlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := ledger.NewMockLedger(ctrl)
	service := NewAuctionService(mockLedger, notifier.NewNotifier(), clock.NewSystem())

	ctx := context.Background()
	leader := "teamX"

	tests := []struct {
		name          string
		lotID         string
		teamID        string
		amount        int64
		mockSetup     func()
		expectedError error
	}{
		{
			name:   "valid_first_bid",
			lotID:  "lot1",
			teamID: "teamX",
			amount: 1200,
			mockSetup: func() {
				mockLedger.EXPECT().GetLot(gomock.Any(), "lot1").
					Return(liveLot(1000, nil, nil), nil)
				mockLedger.EXPECT().GetTeam(gomock.Any(), "teamX").
					Return(team("teamX", 5000), nil)
				mockLedger.EXPECT().AppendBid(gomock.Any(), gomock.Any(), nil).
					DoAndReturn(func(_ context.Context, bid model.Bid, _ *int64) (model.Bid, error) {
						return bid, nil
					})
			},
			expectedError: nil,
		},
		{
			name:          "empty_lotID",
			lotID:         "",
			teamID:        "teamX",
			amount:        1200,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "empty_teamID",
			lotID:         "lot1",
			teamID:        "",
			amount:        1200,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "non_positive_amount",
			lotID:         "lot1",
			teamID:        "teamX",
			amount:        0,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:   "bid_too_low",
			lotID:  "lot1",
			teamID: "teamY",
			amount: 1100,
			mockSetup: func() {
				mockLedger.EXPECT().GetLot(gomock.Any(), "lot1").
					Return(liveLot(1000, amount(1200), &leader), nil)
				mockLedger.EXPECT().GetTeam(gomock.Any(), "teamY").
					Return(team("teamY", 5000), nil)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:   "insufficient_purse",
			lotID:  "lot1",
			teamID: "teamY",
			amount: 1300,
			mockSetup: func() {
				mockLedger.EXPECT().GetLot(gomock.Any(), "lot1").
					Return(liveLot(1000, amount(1200), &leader), nil)
				mockLedger.EXPECT().GetTeam(gomock.Any(), "teamY").
					Return(team("teamY", 1250), nil)
			},
			expectedError: auctionerrors.ErrInsufficientPurse,
		},
		{
			name:   "ladder_moved_between_validate_and_commit",
			lotID:  "lot1",
			teamID: "teamZ",
			amount: 1300,
			mockSetup: func() {
				mockLedger.EXPECT().GetLot(gomock.Any(), "lot1").
					Return(liveLot(1000, amount(1200), &leader), nil)
				mockLedger.EXPECT().GetTeam(gomock.Any(), "teamZ").
					Return(team("teamZ", 5000), nil)
				mockLedger.EXPECT().AppendBid(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrStaleBid)
			},
			expectedError: auctionerrors.ErrStaleBid,
		},
		{
			name:   "lot_closed_during_validation",
			lotID:  "lot1",
			teamID: "teamZ",
			amount: 1300,
			mockSetup: func() {
				mockLedger.EXPECT().GetLot(gomock.Any(), "lot1").
					Return(liveLot(1000, amount(1200), &leader), nil)
				mockLedger.EXPECT().GetTeam(gomock.Any(), "teamZ").
					Return(team("teamZ", 5000), nil)
				mockLedger.EXPECT().AppendBid(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrLotClosed)
			},
			expectedError: auctionerrors.ErrLotClosed,
		},
		{
			name:   "lot_not_found",
			lotID:  "lotX",
			teamID: "teamX",
			amount: 1200,
			mockSetup: func() {
				mockLedger.EXPECT().GetLot(gomock.Any(), "lotX").
					Return(model.AuctionLot{}, auctionerrors.ErrLotNotFound)
			},
			expectedError: auctionerrors.ErrLotNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			bid, err := service.PlaceBid(ctx, tc.lotID, tc.teamID, tc.amount)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.lotID, bid.LotID)
			require.Equal(t, tc.teamID, bid.TeamID)
			require.Equal(t, tc.amount, bid.Amount)
			require.NotEmpty(t, bid.BidID)
		})
	}
}

// The full acceptance sequence against the real in-memory ledger:
// starting price 1000, X bids 1200 (accepted), Y bids 1100 (too low),
// Y bids 1300 with purse 1250 (insufficient), Z bids 1300 (accepted).
func TestAuctionService_BiddingScenario(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddTeam(ctx, team("teamX", 5000)))
	require.NoError(t, ldg.AddTeam(ctx, team("teamY", 1250)))
	require.NoError(t, ldg.AddTeam(ctx, team("teamZ", 5000)))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)

	_, err = service.PlaceBid(ctx, lot.LotID, "teamX", 1200)
	require.NoError(t, err)

	current, err := ldg.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.Equal(t, int64(1200), *current.CurrentBid)
	require.Equal(t, "teamX", *current.CurrentTeamID)

	_, err = service.PlaceBid(ctx, lot.LotID, "teamY", 1100)
	require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

	_, err = service.PlaceBid(ctx, lot.LotID, "teamY", 1300)
	require.ErrorIs(t, err, auctionerrors.ErrInsufficientPurse)

	_, err = service.PlaceBid(ctx, lot.LotID, "teamZ", 1300)
	require.NoError(t, err)

	current, err = ldg.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.Equal(t, int64(1300), *current.CurrentBid)
	require.Equal(t, "teamZ", *current.CurrentTeamID)
}

// Two goroutines race the same prior current bid; exactly one commits and
// the loser sees a conflict it can retry from.
func TestAuctionService_ConcurrentBidsSamePrior(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddTeam(ctx, team("teamA", 100000)))
	require.NoError(t, ldg.AddTeam(ctx, team("teamB", 100000)))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Kabir Sharma", Role: model.RoleBowler, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)

	// Both proposals validate against the empty ladder before either commits.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for _, attempt := range []struct {
		teamID string
		amount int64
	}{
		{teamID: "teamA", amount: 1100},
		{teamID: "teamB", amount: 1200},
	} {
		wg.Add(1)
		go func(teamID string, amount int64) {
			defer wg.Done()
			<-start
			_, err := service.PlaceBid(ctx, lot.LotID, teamID, amount)
			results <- err
		}(attempt.teamID, attempt.amount)
	}

	close(start)
	wg.Wait()
	close(results)

	var accepted, conflicted int
	for err := range results {
		switch {
		case err == nil:
			accepted++
		case IsConflict(err):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, accepted, "exactly one concurrent bid must win")
	require.Equal(t, 1, conflicted, "the losing bid must surface a retryable conflict")

	final, err := ldg.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.NotNil(t, final.CurrentBid)
	require.NotNil(t, final.CurrentTeamID)
}

// Many bidders hammering one lot: the final leader must hold the maximum
// accepted amount and the ladder must stay strictly increasing in time.
func TestAuctionService_BidLadderUnderContention(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	teams := []string{"teamA", "teamB", "teamC", "teamD"}
	for _, id := range teams {
		require.NoError(t, ldg.AddTeam(ctx, team(id, 1_000_000)))
	}
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Dev Patel", Role: model.RoleAllRounder, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i, id := range teams {
		wg.Add(1)
		go func(teamID string, seed int64) {
			defer wg.Done()
			for offset := int64(0); offset < 25; offset++ {
				amount := 1001 + seed + offset*10
				_, err := service.PlaceBid(ctx, lot.LotID, teamID, amount)
				if err != nil && !IsConflict(err) &&
					!isValidationRejection(err) {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}(id, int64(i))
	}
	wg.Wait()

	final, err := ldg.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.NotNil(t, final.CurrentBid)

	bids, err := ldg.RecentBids(ctx, lot.LotID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, bids)

	// Newest first: the head is the current bid and the maximum, and the
	// timestamps are strictly decreasing.
	require.Equal(t, *final.CurrentBid, bids[0].Amount)
	require.Equal(t, *final.CurrentTeamID, bids[0].TeamID)
	maxAmount := bids[0].Amount
	for i, b := range bids {
		require.LessOrEqual(t, b.Amount, maxAmount)
		if i > 0 {
			require.True(t, bids[i-1].BidTime.After(b.BidTime),
				"bid times must be strictly increasing per lot")
			require.Greater(t, bids[i-1].Amount, b.Amount,
				"every accepted bid must exceed the prior current bid")
		}
	}
}

func TestAuctionService_CloseLot(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddTeam(ctx, team("teamZ", 5000)))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Rohan Iyer", Role: model.RoleWicketkeeper, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)
	_, err = service.PlaceBid(ctx, lot.LotID, "teamZ", 1300)
	require.NoError(t, err)

	closure, err := service.CloseLot(ctx, lot.LotID, model.OutcomeSold)
	require.NoError(t, err)
	require.False(t, closure.AlreadyClosed)
	require.Equal(t, model.OutcomeSold, closure.Outcome)
	require.Equal(t, "teamZ", closure.WinningTeam.TeamID)
	require.Equal(t, int64(1300), closure.WinningAmount)
	require.Equal(t, int64(3700), closure.WinningTeam.PurseRemaining)

	player, err := ldg.GetPlayer(ctx, "player1")
	require.NoError(t, err)
	require.Equal(t, model.PlayerSold, player.Status)

	// Idempotent: a second close reports the same outcome and deducts nothing.
	again, err := service.CloseLot(ctx, lot.LotID, model.OutcomeSold)
	require.NoError(t, err)
	require.True(t, again.AlreadyClosed)
	require.Equal(t, model.OutcomeSold, again.Outcome)
	require.Equal(t, int64(1300), again.WinningAmount)

	winner, err := ldg.GetTeam(ctx, "teamZ")
	require.NoError(t, err)
	require.Equal(t, int64(3700), winner.PurseRemaining, "purse must be deducted exactly once")
}

// A player sold in one lot must never come up for auction again; an
// unsold player may return for another round.
func TestAuctionService_SoldPlayerCannotBeRelisted(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddTeam(ctx, team("teamX", 5000)))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)
	_, err = service.PlaceBid(ctx, lot.LotID, "teamX", 1200)
	require.NoError(t, err)
	_, err = service.CloseLot(ctx, lot.LotID, model.OutcomeSold)
	require.NoError(t, err)

	_, err = service.CreateLot(ctx, "player1", 1000)
	require.ErrorIs(t, err, auctionerrors.ErrPlayerSold)

	// The winner's purse was charged exactly once.
	winner, err := ldg.GetTeam(ctx, "teamX")
	require.NoError(t, err)
	require.Equal(t, int64(3800), winner.PurseRemaining)
}

func TestAuctionService_UnsoldPlayerCanBeRelisted(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddTeam(ctx, team("teamX", 5000)))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 1000}))

	first, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, first.LotID)
	require.NoError(t, err)
	_, err = service.CloseLot(ctx, first.LotID, model.OutcomeUnsold)
	require.NoError(t, err)

	second, err := service.CreateLot(ctx, "player1", 0)
	require.NoError(t, err)
	require.Equal(t, int64(1000), second.StartingPrice)

	_, err = service.OpenLot(ctx, second.LotID)
	require.NoError(t, err)
	_, err = service.PlaceBid(ctx, second.LotID, "teamX", 1100)
	require.NoError(t, err)

	closure, err := service.CloseLot(ctx, second.LotID, model.OutcomeSold)
	require.NoError(t, err)
	require.Equal(t, int64(1100), closure.WinningAmount)
}

func TestAuctionService_CloseLotUnsold(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddTeam(ctx, team("teamX", 5000)))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)

	closure, err := service.CloseLot(ctx, lot.LotID, model.OutcomeUnsold)
	require.NoError(t, err)
	require.Equal(t, model.OutcomeUnsold, closure.Outcome)
	require.Nil(t, closure.WinningTeam)

	player, err := ldg.GetPlayer(ctx, "player1")
	require.NoError(t, err)
	require.Equal(t, model.PlayerUnsold, player.Status)

	// Purse untouched on an unsold lot.
	bidder, err := ldg.GetTeam(ctx, "teamX")
	require.NoError(t, err)
	require.Equal(t, int64(5000), bidder.PurseRemaining)
}

func TestAuctionService_CloseSoldWithoutLeader(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)

	_, err = service.CloseLot(ctx, lot.LotID, model.OutcomeSold)
	require.ErrorIs(t, err, auctionerrors.ErrNoLeader)
}

func TestAuctionService_SingleLiveLot(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 1000}))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player2", Name: "Kabir Sharma", Role: model.RoleBowler, BasePrice: 1500}))

	first, err := service.CreateLot(ctx, "player1", 0)
	require.NoError(t, err)
	require.Equal(t, int64(1000), first.StartingPrice, "zero starting price falls back to base price")

	second, err := service.CreateLot(ctx, "player2", 0)
	require.NoError(t, err)

	_, err = service.OpenLot(ctx, first.LotID)
	require.NoError(t, err)

	_, err = service.OpenLot(ctx, second.LotID)
	require.ErrorIs(t, err, auctionerrors.ErrLotConflict)

	// After the first lot settles, the second can go live and the first is
	// archived.
	_, err = service.CloseLot(ctx, first.LotID, model.OutcomeUnsold)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, second.LotID)
	require.NoError(t, err)

	archived, err := ldg.GetLot(ctx, first.LotID)
	require.NoError(t, err)
	require.Equal(t, model.LotClosed, archived.Status)
}

// Sum of winning deductions can never exceed the initial purse: once the
// purse is spent, further winning closes are impossible because the
// validator caps every accepted bid at purse_remaining.
func TestAuctionService_PurseNeverOverdrawn(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	const initialPurse = int64(3000)
	require.NoError(t, ldg.AddTeam(ctx, team("teamA", initialPurse)))
	require.NoError(t, ldg.AddTeam(ctx, team("teamB", 100000)))

	players := []string{"player1", "player2", "player3"}
	for i, id := range players {
		require.NoError(t, ldg.AddPlayer(ctx, model.Player{
			PlayerID: id, Name: "Player " + id, Role: model.RoleBatter, BasePrice: int64(500 + i),
		}))
	}

	var deducted int64
	for _, playerID := range players {
		lot, err := service.CreateLot(ctx, playerID, 1000)
		require.NoError(t, err)
		_, err = service.OpenLot(ctx, lot.LotID)
		require.NoError(t, err)

		_, err = service.PlaceBid(ctx, lot.LotID, "teamA", 1400)
		if err != nil {
			require.ErrorIs(t, err, auctionerrors.ErrInsufficientPurse)
			_, err = service.CloseLot(ctx, lot.LotID, model.OutcomeUnsold)
			require.NoError(t, err)
			continue
		}

		closure, err := service.CloseLot(ctx, lot.LotID, model.OutcomeSold)
		require.NoError(t, err)
		deducted += closure.WinningAmount
	}

	require.LessOrEqual(t, deducted, initialPurse)

	teamA, err := ldg.GetTeam(ctx, "teamA")
	require.NoError(t, err)
	require.Equal(t, initialPurse-deducted, teamA.PurseRemaining)
	require.GreaterOrEqual(t, teamA.PurseRemaining, int64(0))
}

func TestAuctionService_Snapshot(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	// No live lot: empty view, not an error.
	snap, err := service.Snapshot(ctx)
	require.NoError(t, err)
	require.Nil(t, snap.Lot)
	require.Empty(t, snap.Bids)

	require.NoError(t, ldg.AddTeam(ctx, model.Team{TeamID: "teamB", Name: "Bengal Tigers", PurseRemaining: 5000}))
	require.NoError(t, ldg.AddTeam(ctx, model.Team{TeamID: "teamA", Name: "Mumbai Meteors", PurseRemaining: 7000}))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Arjun Rao", Role: model.RoleBatter, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)

	// Before any bid the displayed amount falls back to the starting price.
	snap, err = service.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Lot)
	require.Equal(t, int64(1000), snap.CurrentBidAmount)
	require.Nil(t, snap.CurrentTeam)
	require.Equal(t, "Arjun Rao", snap.Player.Name)

	_, err = service.PlaceBid(ctx, lot.LotID, "teamA", 1200)
	require.NoError(t, err)
	_, err = service.PlaceBid(ctx, lot.LotID, "teamB", 1400)
	require.NoError(t, err)

	snap, err = service.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1400), snap.CurrentBidAmount)
	require.Equal(t, "teamB", snap.CurrentTeam.TeamID)

	// Ladder is newest first and internally consistent with the leader.
	require.Len(t, snap.Bids, 2)
	require.Equal(t, int64(1400), snap.Bids[0].Amount)
	require.Equal(t, snap.CurrentTeam.TeamID, snap.Bids[0].TeamID)

	// Purses ordered by team name.
	require.Len(t, snap.TeamPurses, 2)
	require.Equal(t, "Bengal Tigers", snap.TeamPurses[0].Name)
	require.Equal(t, "Mumbai Meteors", snap.TeamPurses[1].Name)
}

// Snapshots racing a stream of bids must never observe a leader that does
// not match the head of the ladder.
func TestAuctionService_SnapshotNeverTorn(t *testing.T) {
	ctx := context.Background()
	ldg := ledger.NewMemoryLedger()
	service := newService(ldg)

	require.NoError(t, ldg.AddTeam(ctx, team("teamA", 10_000_000)))
	require.NoError(t, ldg.AddTeam(ctx, team("teamB", 10_000_000)))
	require.NoError(t, ldg.AddPlayer(ctx, model.Player{PlayerID: "player1", Name: "Dev Patel", Role: model.RoleAllRounder, BasePrice: 1000}))

	lot, err := service.CreateLot(ctx, "player1", 1000)
	require.NoError(t, err)
	_, err = service.OpenLot(ctx, lot.LotID)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		next := int64(1001)
		bidders := []string{"teamA", "teamB"}
		for i := 0; i < 200; i++ {
			_, err := service.PlaceBid(ctx, lot.LotID, bidders[i%2], next)
			if err == nil {
				next += 10
			} else {
				next += 20
			}
		}
	}()

	for i := 0; i < 200; i++ {
		snap, err := service.Snapshot(ctx)
		require.NoError(t, err)
		if snap.Lot == nil || len(snap.Bids) == 0 {
			continue
		}
		require.Equal(t, snap.Bids[0].Amount, snap.CurrentBidAmount,
			"snapshot leader amount must match the head of the ladder")
		if snap.CurrentTeam != nil {
			require.Equal(t, snap.CurrentTeam.TeamID, snap.Bids[0].TeamID,
				"snapshot leader must be the latest bidder")
		}
	}
	<-done
}

func isValidationRejection(err error) bool {
	for _, target := range []error{
		auctionerrors.ErrBidTooLow,
		auctionerrors.ErrInsufficientPurse,
		auctionerrors.ErrSelfOutbid,
		auctionerrors.ErrLotNotLive,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
