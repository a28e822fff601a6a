package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS reservations (
	id TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL,
	room_number TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	room_segment TEXT NOT NULL,
	payment_mode TEXT NOT NULL,
	payment_reference TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	total_amount NUMERIC(12,2) NOT NULL,
	amount_received NUMERIC(12,2) NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reservations_pending_sweep
	ON reservations (status, payment_mode, start_date);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
