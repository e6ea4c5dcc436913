package repository

import (
	"context"
	"errors"
	"fmt"

	"expert-booking/internal/data/entity"
	"expert-booking/pkg/apperrors"
	"expert-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// uniqueViolation is the SQLSTATE pgx reports when an insert loses the
// race for a slot key against the partial unique index.
const uniqueViolation = "23505"

const slotKeyIndex = "idx_bookings_slot_key"

type BookingRepository interface {
	// InsertIfFree persists the booking unless a slot-blocking booking
	// already holds the same (expert_id, booking_date, slot) key. The
	// check and the write are one atomic INSERT resolved by the unique
	// index; concurrent callers for the same key get exactly one winner,
	// losers get apperrors.ErrSlotTaken.
	InsertIfFree(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]*entity.Booking, error)
	FindByExpertAndDate(ctx context.Context, expertID uuid.UUID, date string) ([]*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error)
	// UpdateStatus is a compare-and-set: the write only lands if the row
	// still holds the status the caller validated against. A stale caller
	// gets apperrors.ErrInvalidTransition instead of silently overwriting
	// a concurrent status change.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error
	FindBookedSlots(ctx context.Context, expertID uuid.UUID, date string, blocking []entity.BookingStatus) ([]string, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, expert_id, booking_date, slot, client_name, client_email, client_phone, notes, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.ExpertID,
		&booking.Date,
		&booking.Slot,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) InsertIfFree(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, expert_id, booking_date, slot, client_name, client_email, client_phone, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.ExpertID,
		booking.Date,
		booking.Slot,
		booking.ClientName,
		booking.ClientEmail,
		booking.ClientPhone,
		booking.Notes,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == slotKeyIndex {
			r.log.Info("Slot conflict on insert",
				zap.String("expert_id", booking.ExpertID.String()),
				zap.String("date", booking.Date),
				zap.String("slot", booking.Slot),
			)
			return apperrors.ErrSlotTaken
		}

		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("expert_id", booking.ExpertID.String()),
		)
		return fmt.Errorf("insert booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to find bookings by email",
			zap.Error(err),
			zap.String("client_email", email),
		)
		return nil, fmt.Errorf("find bookings by email %s: %w", email, err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindByExpertAndDate(ctx context.Context, expertID uuid.UUID, date string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE expert_id = $1 AND booking_date = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, expertID, date)
	if err != nil {
		r.log.Error("Failed to find bookings by expert and date",
			zap.Error(err),
			zap.String("expert_id", expertID.String()),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find bookings for expert %s on %s: %w", expertID.String(), date, err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent bookings", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("find recent bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count bookings with status %s: %w", string(status), err)
	}

	return count, nil
}

// UpdateStatus writes the new status only while the row still holds the
// expected one, so the transition check and the write commit as a unit.
// It does not re-check the slot key: cancelling frees the key for future
// inserts, it never invalidates rows that already exist.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	if result.RowsAffected() == 0 {
		// Either the row is gone or a concurrent writer changed the
		// status between our read and this write.
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperrors.ErrBookingNotFound
		}
		return fmt.Errorf("%w: booking %s is %s, not %s",
			apperrors.ErrInvalidTransition, id.String(), current.Status, from)
	}

	return nil
}

func (r *bookingRepository) FindBookedSlots(ctx context.Context, expertID uuid.UUID, date string, blocking []entity.BookingStatus) ([]string, error) {
	statuses := make([]string, len(blocking))
	for i, s := range blocking {
		statuses[i] = string(s)
	}

	query := `
		SELECT slot
		FROM bookings
		WHERE expert_id = $1 AND booking_date = $2 AND status = ANY($3)
		ORDER BY slot
	`

	rows, err := r.db.Query(ctx, query, expertID, date, statuses)
	if err != nil {
		r.log.Error("Failed to find booked slots",
			zap.Error(err),
			zap.String("expert_id", expertID.String()),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find booked slots for expert %s on %s: %w", expertID.String(), date, err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}
