package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger is the durable postgres implementation of ledger.Ledger. Bid
// commits and lot closures run inside single transactions, so the
// compare-and-commit on current_bid and the close-lot + deduct-purse pair
// are atomic even across multiple service processes.
type Ledger struct {
	pool *pgxpool.Pool
}

// NewLedger creates a Ledger backed by the given connection pool.
func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

func (l *Ledger) AddTeam(ctx context.Context, team model.Team) error {
	const stmt = `
INSERT INTO teams (id, name, purse_remaining)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`

	if _, err := l.pool.Exec(ctx, stmt, team.TeamID, team.Name, team.PurseRemaining); err != nil {
		return fmt.Errorf("add team %s: %w", team.TeamID, err)
	}
	return nil
}

func (l *Ledger) AddPlayer(ctx context.Context, player model.Player) error {
	if player.Status == "" {
		player.Status = model.PlayerAvailable
	}

	const stmt = `
INSERT INTO players (id, name, role, base_price, status)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, base_price = EXCLUDED.base_price`

	if _, err := l.pool.Exec(ctx, stmt, player.PlayerID, player.Name, player.Role, player.BasePrice, player.Status); err != nil {
		return fmt.Errorf("add player %s: %w", player.PlayerID, err)
	}
	return nil
}

func (l *Ledger) GetTeam(ctx context.Context, teamID string) (model.Team, error) {
	const query = `SELECT id, name, purse_remaining FROM teams WHERE id = $1`

	var t model.Team
	err := l.pool.QueryRow(ctx, query, teamID).Scan(&t.TeamID, &t.Name, &t.PurseRemaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, fmt.Errorf("get team %s: %w", teamID, auctionerrors.ErrTeamNotFound)
		}
		return model.Team{}, fmt.Errorf("get team %s: %w", teamID, err)
	}
	return t, nil
}

func (l *Ledger) GetPlayer(ctx context.Context, playerID string) (model.Player, error) {
	const query = `SELECT id, name, role, base_price, status FROM players WHERE id = $1`

	var p model.Player
	err := l.pool.QueryRow(ctx, query, playerID).Scan(&p.PlayerID, &p.Name, &p.Role, &p.BasePrice, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, fmt.Errorf("get player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
		}
		return model.Player{}, fmt.Errorf("get player %s: %w", playerID, err)
	}
	return p, nil
}

func (l *Ledger) ListTeams(ctx context.Context) ([]model.Team, error) {
	const query = `SELECT id, name, purse_remaining FROM teams ORDER BY name ASC`

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	return scanTeams(rows)
}

func (l *Ledger) ListPlayers(ctx context.Context) ([]model.Player, error) {
	const query = `SELECT id, name, role, base_price, status FROM players ORDER BY name ASC`

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := make([]model.Player, 0)
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Role, &p.BasePrice, &p.Status); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (l *Ledger) CreateLot(ctx context.Context, lot model.AuctionLot) error {
	return withTx(ctx, l.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		// Lock the player row so a concurrent CloseLot cannot mark it Sold
		// between the check and the insert.
		var status model.PlayerStatus
		err := tx.QueryRow(ctx, `SELECT status FROM players WHERE id = $1 FOR UPDATE`, lot.PlayerID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("create lot for player %s: %w", lot.PlayerID, auctionerrors.ErrPlayerNotFound)
			}
			return fmt.Errorf("create lot for player %s: %w", lot.PlayerID, err)
		}
		if status == model.PlayerSold {
			return fmt.Errorf("create lot for player %s: %w", lot.PlayerID, auctionerrors.ErrPlayerSold)
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO auctions (id, player_id, status, starting_price)
VALUES ($1, $2, $3, $4)`, lot.LotID, lot.PlayerID, lot.Status, lot.StartingPrice); err != nil {
			return fmt.Errorf("create lot %s: %w", lot.LotID, err)
		}
		return nil
	})
}

const lotColumns = `id, player_id, status, starting_price, started_at, current_bid, current_team_id`

func (l *Ledger) GetLot(ctx context.Context, lotID string) (model.AuctionLot, error) {
	lot, err := scanLot(l.pool.QueryRow(ctx, `SELECT `+lotColumns+` FROM auctions WHERE id = $1`, lotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuctionLot{}, fmt.Errorf("get lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
		}
		return model.AuctionLot{}, fmt.Errorf("get lot %s: %w", lotID, err)
	}
	return lot, nil
}

func (l *Ledger) GetLiveLot(ctx context.Context) (*model.AuctionLot, error) {
	lot, err := scanLot(l.pool.QueryRow(ctx, `SELECT `+lotColumns+` FROM auctions WHERE status = 'Live'`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get live lot: %w", err)
	}
	return &lot, nil
}

func (l *Ledger) SetLotLive(ctx context.Context, lotID string, at time.Time) (model.AuctionLot, error) {
	var lot model.AuctionLot

	err := withTx(ctx, l.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		// Archive earlier settled lots; the unique live index rejects a
		// second live lot no matter what.
		if _, err := tx.Exec(ctx, `UPDATE auctions SET status = 'Closed' WHERE status IN ('Sold', 'Unsold')`); err != nil {
			return fmt.Errorf("archive settled lots: %w", err)
		}

		row := tx.QueryRow(ctx, `
UPDATE auctions SET status = 'Live', started_at = $2
WHERE id = $1 AND status = 'Pending'
RETURNING `+lotColumns, lotID, at)

		updated, err := scanLot(row)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("open lot %s: %w", lotID, auctionerrors.ErrLotConflict)
			}
			if errors.Is(err, pgx.ErrNoRows) {
				return l.classifyOpenFailure(ctx, tx, lotID)
			}
			return fmt.Errorf("open lot %s: %w", lotID, err)
		}
		lot = updated
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.AuctionLot{}, fmt.Errorf("open lot %s: %w", lotID, auctionerrors.ErrLotConflict)
		}
		return model.AuctionLot{}, err
	}
	return lot, nil
}

// classifyOpenFailure decides whether a failed open was a missing lot or a
// lot already out of Pending.
func (l *Ledger) classifyOpenFailure(ctx context.Context, tx pgx.Tx, lotID string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM auctions WHERE id = $1`, lotID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("open lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	if err != nil {
		return fmt.Errorf("open lot %s: %w", lotID, err)
	}
	return fmt.Errorf("open lot %s in status %s: %w", lotID, status, auctionerrors.ErrLotConflict)
}

func (l *Ledger) AppendBid(ctx context.Context, bid model.Bid, priorBid *int64) (model.Bid, error) {
	committed := bid

	err := withTx(ctx, l.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		lot, err := scanLot(tx.QueryRow(ctx, `SELECT `+lotColumns+` FROM auctions WHERE id = $1 FOR UPDATE`, bid.LotID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("append bid for lot %s: %w", bid.LotID, auctionerrors.ErrLotNotFound)
			}
			return fmt.Errorf("append bid for lot %s: %w", bid.LotID, err)
		}

		if lot.Settled() {
			return fmt.Errorf("append bid for lot %s: %w", bid.LotID, auctionerrors.ErrLotClosed)
		}
		if lot.Status != model.LotLive {
			return fmt.Errorf("append bid for lot %s in status %s: %w", bid.LotID, lot.Status, auctionerrors.ErrLotNotLive)
		}
		if !sameAmount(lot.CurrentBid, priorBid) {
			return fmt.Errorf("append bid for lot %s: %w", bid.LotID, auctionerrors.ErrStaleBid)
		}

		// Keep bid_time strictly increasing per lot.
		var lastTime *time.Time
		if err := tx.QueryRow(ctx, `SELECT MAX(bid_time) FROM bids WHERE auction_id = $1`, bid.LotID).Scan(&lastTime); err != nil {
			return fmt.Errorf("append bid for lot %s: read last bid time: %w", bid.LotID, err)
		}
		if lastTime != nil && !committed.BidTime.After(*lastTime) {
			committed.BidTime = lastTime.Add(time.Millisecond)
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO bids (id, auction_id, team_id, bid_amount, bid_time)
VALUES ($1, $2, $3, $4, $5)`,
			committed.BidID, committed.LotID, committed.TeamID, committed.Amount, committed.BidTime); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("append bid for lot %s: team %s: %w", bid.LotID, bid.TeamID, auctionerrors.ErrTeamNotFound)
			}
			return fmt.Errorf("append bid for lot %s: %w", bid.LotID, err)
		}

		if _, err := tx.Exec(ctx, `
UPDATE auctions SET current_bid = $2, current_team_id = $3 WHERE id = $1`,
			committed.LotID, committed.Amount, committed.TeamID); err != nil {
			return fmt.Errorf("append bid for lot %s: update leader: %w", bid.LotID, err)
		}
		return nil
	})
	if err != nil {
		return model.Bid{}, err
	}
	return committed, nil
}

func (l *Ledger) CloseLot(ctx context.Context, lotID string, outcome model.LotOutcome) (model.LotClosure, error) {
	var closure model.LotClosure

	err := withTx(ctx, l.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		lot, err := scanLot(tx.QueryRow(ctx, `SELECT `+lotColumns+` FROM auctions WHERE id = $1 FOR UPDATE`, lotID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("close lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
			}
			return fmt.Errorf("close lot %s: %w", lotID, err)
		}

		// Idempotent: report the recorded outcome of a settled lot.
		if lot.Settled() {
			closure, err = l.recordedClosure(ctx, tx, lot)
			return err
		}
		if lot.Status != model.LotLive {
			return fmt.Errorf("close lot %s in status %s: %w", lotID, lot.Status, auctionerrors.ErrLotNotLive)
		}

		switch outcome {
		case model.OutcomeSold:
			if lot.CurrentTeamID == nil || lot.CurrentBid == nil {
				return fmt.Errorf("close lot %s as sold: %w", lotID, auctionerrors.ErrNoLeader)
			}

			// The CHECK constraint backs this up; the guarded UPDATE keeps
			// the error a domain one instead of a constraint violation.
			tag, err := tx.Exec(ctx, `
UPDATE teams SET purse_remaining = purse_remaining - $2
WHERE id = $1 AND purse_remaining >= $2`, *lot.CurrentTeamID, *lot.CurrentBid)
			if err != nil {
				return fmt.Errorf("close lot %s: deduct purse: %w", lotID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("close lot %s: deduct %d from team %s: %w", lotID, *lot.CurrentBid, *lot.CurrentTeamID, auctionerrors.ErrInsufficientPurse)
			}

			if _, err := tx.Exec(ctx, `UPDATE players SET status = 'Sold' WHERE id = $1`, lot.PlayerID); err != nil {
				return fmt.Errorf("close lot %s: mark player sold: %w", lotID, err)
			}
			if _, err := tx.Exec(ctx, `UPDATE auctions SET status = 'Sold' WHERE id = $1`, lotID); err != nil {
				return fmt.Errorf("close lot %s: %w", lotID, err)
			}

			team, err := teamInTx(ctx, tx, *lot.CurrentTeamID)
			if err != nil {
				return fmt.Errorf("close lot %s: %w", lotID, err)
			}

			lot.Status = model.LotSold
			closure = model.LotClosure{
				Lot:           lot,
				Outcome:       model.OutcomeSold,
				WinningTeam:   &team,
				WinningAmount: *lot.CurrentBid,
			}
			return nil

		case model.OutcomeUnsold:
			if _, err := tx.Exec(ctx, `UPDATE players SET status = 'Unsold' WHERE id = $1`, lot.PlayerID); err != nil {
				return fmt.Errorf("close lot %s: mark player unsold: %w", lotID, err)
			}
			if _, err := tx.Exec(ctx, `UPDATE auctions SET status = 'Unsold' WHERE id = $1`, lotID); err != nil {
				return fmt.Errorf("close lot %s: %w", lotID, err)
			}

			lot.Status = model.LotUnsold
			closure = model.LotClosure{Lot: lot, Outcome: model.OutcomeUnsold}
			return nil

		default:
			return fmt.Errorf("close lot %s: unknown outcome %q: %w", lotID, outcome, auctionerrors.ErrInvalidBid)
		}
	})
	if err != nil {
		return model.LotClosure{}, err
	}
	return closure, nil
}

func (l *Ledger) recordedClosure(ctx context.Context, tx pgx.Tx, lot model.AuctionLot) (model.LotClosure, error) {
	closure := model.LotClosure{Lot: lot, Outcome: model.OutcomeUnsold, AlreadyClosed: true}

	sold := lot.Status == model.LotSold
	if lot.Status == model.LotClosed {
		var playerStatus model.PlayerStatus
		if err := tx.QueryRow(ctx, `SELECT status FROM players WHERE id = $1`, lot.PlayerID).Scan(&playerStatus); err != nil {
			return model.LotClosure{}, fmt.Errorf("closure of lot %s: %w", lot.LotID, err)
		}
		sold = playerStatus == model.PlayerSold
	}

	if sold && lot.CurrentTeamID != nil && lot.CurrentBid != nil {
		closure.Outcome = model.OutcomeSold
		closure.WinningAmount = *lot.CurrentBid
		team, err := teamInTx(ctx, tx, *lot.CurrentTeamID)
		if err != nil {
			return model.LotClosure{}, fmt.Errorf("closure of lot %s: %w", lot.LotID, err)
		}
		closure.WinningTeam = &team
	}
	return closure, nil
}

func (l *Ledger) RecentBids(ctx context.Context, lotID string, limit int) ([]model.Bid, error) {
	const query = `
SELECT id, auction_id, team_id, bid_amount, bid_time
FROM bids WHERE auction_id = $1
ORDER BY bid_time DESC LIMIT $2`

	rows, err := l.pool.Query(ctx, query, lotID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent bids for lot %s: %w", lotID, err)
	}
	defer rows.Close()

	bids := make([]model.Bid, 0, limit)
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.LotID, &b.TeamID, &b.Amount, &b.BidTime); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent bids for lot %s: %w", lotID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("recent bids for lot %s: %w", lotID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// ProjectSnapshot reads the lot, its ladder and the team purses inside one
// repeatable-read transaction, so the view is a single consistent point.
func (l *Ledger) ProjectSnapshot(ctx context.Context, bidLimit int) (model.AuctionSnapshot, error) {
	snap := model.AuctionSnapshot{
		Bids:       []model.BidEntry{},
		TeamPurses: []model.TeamPurse{},
	}

	err := withTx(ctx, l.pool, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		lot, err := scanLot(tx.QueryRow(ctx, `SELECT `+lotColumns+` FROM auctions WHERE status = 'Live'`))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("project snapshot: live lot: %w", err)
		}

		snap.Lot = &lot
		snap.CurrentBidAmount = lot.AskingPrice()

		var p model.Player
		err = tx.QueryRow(ctx, `SELECT id, name, role, base_price, status FROM players WHERE id = $1`, lot.PlayerID).
			Scan(&p.PlayerID, &p.Name, &p.Role, &p.BasePrice, &p.Status)
		if err == nil {
			snap.Player = &p
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("project snapshot: player: %w", err)
		}

		if lot.CurrentTeamID != nil {
			team, err := teamInTx(ctx, tx, *lot.CurrentTeamID)
			if err != nil {
				return fmt.Errorf("project snapshot: leader: %w", err)
			}
			snap.CurrentTeam = &team
		}

		rows, err := tx.Query(ctx, `
SELECT b.id, b.team_id, t.name, b.bid_amount, b.bid_time
FROM bids b JOIN teams t ON t.id = b.team_id
WHERE b.auction_id = $1
ORDER BY b.bid_time DESC LIMIT $2`, lot.LotID, bidLimit)
		if err != nil {
			return fmt.Errorf("project snapshot: bids: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var e model.BidEntry
			if err := rows.Scan(&e.BidID, &e.TeamID, &e.TeamName, &e.Amount, &e.BidTime); err != nil {
				return fmt.Errorf("project snapshot: scan bid: %w", err)
			}
			snap.Bids = append(snap.Bids, e)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("project snapshot: bids: %w", err)
		}

		teamRows, err := tx.Query(ctx, `SELECT id, name, purse_remaining FROM teams ORDER BY name ASC`)
		if err != nil {
			return fmt.Errorf("project snapshot: purses: %w", err)
		}
		defer teamRows.Close()
		teams, err := scanTeams(teamRows)
		if err != nil {
			return fmt.Errorf("project snapshot: purses: %w", err)
		}
		for _, t := range teams {
			snap.TeamPurses = append(snap.TeamPurses, model.TeamPurse{
				TeamID:         t.TeamID,
				Name:           t.Name,
				PurseRemaining: t.PurseRemaining,
			})
		}
		return nil
	})
	if err != nil {
		return model.AuctionSnapshot{}, err
	}
	return snap, nil
}

func teamInTx(ctx context.Context, tx pgx.Tx, teamID string) (model.Team, error) {
	var t model.Team
	err := tx.QueryRow(ctx, `SELECT id, name, purse_remaining FROM teams WHERE id = $1`, teamID).
		Scan(&t.TeamID, &t.Name, &t.PurseRemaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, auctionerrors.ErrTeamNotFound
		}
		return model.Team{}, err
	}
	return t, nil
}

func scanLot(row pgx.Row) (model.AuctionLot, error) {
	var lot model.AuctionLot
	var startedAt *time.Time
	err := row.Scan(&lot.LotID, &lot.PlayerID, &lot.Status, &lot.StartingPrice, &startedAt, &lot.CurrentBid, &lot.CurrentTeamID)
	if err != nil {
		return model.AuctionLot{}, err
	}
	if startedAt != nil {
		lot.StartedAt = *startedAt
	}
	return lot, nil
}

func scanTeams(rows pgx.Rows) ([]model.Team, error) {
	teams := make([]model.Team, 0)
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.TeamID, &t.Name, &t.PurseRemaining); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func sameAmount(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
