package pg

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

const (
	SerializationFailureCode = "40001"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	start := time.Now()
	defer func() {
		observability.DBTxDuration.Observe(time.Since(start).Seconds())
	}()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = fn(tx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == SerializationFailureCode {
			return domain.ErrSerializationFailure
		}
		return err
	}

	return tx.Commit(ctx)
}

const bookingColumns = `id, package_id, user_id, customer_name, customer_email, customer_phone,
		number_of_rooms, number_of_guests, total_cents, status, payment_status, payment_intent_secret, personal_info, created_at`

// CreateBooking persists the booking and its booking.created outbox record in
// one transaction. Creation is the single write that may attach personal
// info; no update path touches that column afterwards.
func (r *Repository) CreateBooking(ctx context.Context, b *domain.Booking) error {
	var infoJSON []byte
	if b.PersonalInfo != nil {
		var err error
		infoJSON, err = json.Marshal(b.PersonalInfo)
		if err != nil {
			return errors.Wrap(err, "marshal personal info")
		}
	}

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO bookings (id, package_id, user_id, customer_name, customer_email, customer_phone,
				number_of_rooms, number_of_guests, total_cents, status, payment_status, personal_info)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING created_at
		`, b.ID, b.PackageID, b.UserID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
			b.NumberOfRooms, b.NumberOfGuests, b.TotalCents, b.Status, b.PaymentStatus, infoJSON).
			Scan(&b.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "insert booking")
		}

		payload, err := json.Marshal(map[string]interface{}{
			"booking_id":  b.ID,
			"user_id":     b.UserID,
			"package_id":  b.PackageID,
			"status":      b.Status,
			"total_cents": b.TotalCents,
			"email":       b.CustomerEmail,
		})
		if err != nil {
			return errors.Wrap(err, "marshal outbox payload")
		}
		return r.InsertOutbox(ctx, tx, OutboxRecord{
			ID:            uuid.New(),
			AggregateType: "booking",
			AggregateID:   b.ID,
			EventType:     "booking.created",
			Payload:       payload,
			DedupeKey:     uuid.New().String(),
		})
	})
}

func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings WHERE id = $1
	`, id)
	return scanBooking(row)
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// UpdateStatus is the admin override: it sets the status unconditionally,
// whatever the current state.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings SET status = $2 WHERE id = $1
		RETURNING `+bookingColumns+`
	`, id, status)
	return scanBooking(row)
}

// SetPaymentResult applies a payment outcome. The status change is guarded on
// pending_payment so the bridge can only ever drive that one transition.
func (r *Repository) SetPaymentResult(ctx context.Context, id uuid.UUID, status domain.BookingStatus, ps domain.PaymentStatus) (*domain.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings SET status = $2, payment_status = $3
		WHERE id = $1 AND status = 'pending_payment'
		RETURNING `+bookingColumns+`
	`, id, status, ps)
	b, err := scanBooking(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrConflict
	}
	return b, err
}

// SetPaymentIntentSecret pins the intent minted for this booking. Guarded on
// pending_payment like the confirmation it protects.
func (r *Repository) SetPaymentIntentSecret(ctx context.Context, id uuid.UUID, secret string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE bookings SET payment_intent_secret = $2
		WHERE id = $1 AND status = 'pending_payment'
	`, id, secret)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// SetPaymentStatus records a payment outcome without touching the booking
// status; used for declines, which leave the booking in pending_payment.
func (r *Repository) SetPaymentStatus(ctx context.Context, id uuid.UUID, ps domain.PaymentStatus) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE bookings SET payment_status = $2 WHERE id = $1
	`, id, ps)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) ListStalePendingPayments(ctx context.Context, before time.Time) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings WHERE status = 'pending_payment' AND created_at <= $1
		ORDER BY created_at ASC
	`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// Stats gathers the admin dashboard counters concurrently.
func (r *Repository) Stats(ctx context.Context) (domain.BookingStats, error) {
	var stats domain.BookingStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM bookings`).Scan(&stats.TotalBookings)
	})
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT count(*) FROM bookings WHERE status IN ('pending', 'pending_payment')`).Scan(&stats.PendingRequests)
	})
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT coalesce(sum(total_cents), 0) FROM bookings WHERE status = 'confirmed'`).Scan(&stats.ConfirmedRevenueCents)
	})

	if err := g.Wait(); err != nil {
		return domain.BookingStats{}, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var infoJSON []byte
	err := row.Scan(&b.ID, &b.PackageID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.NumberOfRooms, &b.NumberOfGuests, &b.TotalCents, &b.Status, &b.PaymentStatus, &b.PaymentIntentSecret, &infoJSON, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(infoJSON) > 0 {
		var info domain.PersonalInfo
		if err := json.Unmarshal(infoJSON, &info); err != nil {
			return nil, errors.Wrap(err, "unmarshal personal info")
		}
		b.PersonalInfo = &info
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
