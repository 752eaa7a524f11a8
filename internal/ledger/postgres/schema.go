package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS teams (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	purse_remaining BIGINT NOT NULL CHECK (purse_remaining >= 0)
);

CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT NOT NULL,
	base_price BIGINT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Available'
);

CREATE TABLE IF NOT EXISTS auctions (
	id TEXT PRIMARY KEY,
	player_id TEXT NOT NULL REFERENCES players(id),
	status TEXT NOT NULL DEFAULT 'Pending',
	starting_price BIGINT NOT NULL,
	started_at TIMESTAMPTZ,
	current_bid BIGINT,
	current_team_id TEXT REFERENCES teams(id)
);

-- System-wide invariant: at most one live lot at a time.
CREATE UNIQUE INDEX IF NOT EXISTS auctions_one_live
	ON auctions ((status)) WHERE status = 'Live';

CREATE TABLE IF NOT EXISTS bids (
	id TEXT PRIMARY KEY,
	auction_id TEXT NOT NULL REFERENCES auctions(id),
	team_id TEXT NOT NULL REFERENCES teams(id),
	bid_amount BIGINT NOT NULL,
	bid_time TIMESTAMPTZ NOT NULL,
	UNIQUE (auction_id, bid_time)
);

CREATE INDEX IF NOT EXISTS bids_by_auction_time
	ON bids (auction_id, bid_time DESC);
`

// EnsureSchema creates the ledger tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure ledger schema: %w", err)
	}
	return nil
}
