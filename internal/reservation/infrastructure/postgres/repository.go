package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// NewPool builds a pgx pool with shopspring decimal support registered, so
// NUMERIC columns scan into decimal.Decimal without drift.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

const reservationColumns = `id, customer_name, room_number, start_date, end_date,
	room_segment, payment_mode, payment_reference, status,
	total_amount, amount_received, created_at, updated_at`

func (r *Repository) Save(ctx context.Context, res domain.Reservation) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO reservations
			(id, customer_name, room_number, start_date, end_date,
			 room_segment, payment_mode, payment_reference, status,
			 total_amount, amount_received, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			customer_name=$2, room_number=$3, start_date=$4, end_date=$5,
			room_segment=$6, payment_mode=$7, payment_reference=$8, status=$9,
			total_amount=$10, amount_received=$11, updated_at=$13`,
		res.ID, res.CustomerName, res.RoomNumber, res.StartDate, res.EndDate,
		res.RoomSegment, res.PaymentMode, res.PaymentReference, res.Status,
		res.TotalAmount, res.AmountReceived, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *Repository) FindByID(ctx context.Context, id string) (domain.Reservation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id)
	return scanReservation(row)
}

func (r *Repository) FindPendingBankTransferBefore(ctx context.Context, cutoff time.Time) ([]domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reservationColumns+`
		FROM reservations
		WHERE status=$1 AND payment_mode=$2 AND start_date < $3`,
		domain.StatusPendingPayment, domain.ModeBankTransfer, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Reservation
	for rows.Next() {
		rec, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Update locks the row for id, applies fn and writes the result back in one
// transaction. Concurrent updates to the same id serialize on the row lock,
// so two payment installments cannot read the same stale amount.
func (r *Repository) Update(ctx context.Context, id string, fn func(res *domain.Reservation) (bool, error)) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1 FOR UPDATE`, id)
	res, err := scanReservation(row)
	if err != nil {
		return err
	}

	write, err := fn(&res)
	if err != nil {
		return err
	}
	if !write {
		return tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `UPDATE reservations
		SET status=$2, amount_received=$3, updated_at=$4 WHERE id=$1`,
		res.ID, res.Status, res.AmountReceived, res.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(&res.ID, &res.CustomerName, &res.RoomNumber, &res.StartDate, &res.EndDate,
		&res.RoomSegment, &res.PaymentMode, &res.PaymentReference, &res.Status,
		&res.TotalAmount, &res.AmountReceived, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	if err != nil {
		return domain.Reservation{}, err
	}
	return res, nil
}
