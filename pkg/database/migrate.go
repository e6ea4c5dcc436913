package database

import (
	"context"
	"fmt"

	"expert-booking/pkg/utils"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'customer',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	token UUID UNIQUE NOT NULL,
	user_agent TEXT,
	ip_address TEXT,
	expires_at TIMESTAMPTZ NOT NULL,
	revoked_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS experts (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	experience INT NOT NULL DEFAULT 0,
	rating NUMERIC(3,2) NOT NULL DEFAULT 0,
	bio TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	booking_ref TEXT UNIQUE NOT NULL,
	expert_id UUID NOT NULL REFERENCES experts(id),
	booking_date TEXT NOT NULL,
	slot TEXT NOT NULL,
	client_name TEXT NOT NULL,
	client_email TEXT NOT NULL,
	client_phone TEXT NOT NULL,
	notes TEXT,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_client_email ON bookings(client_email);
CREATE INDEX IF NOT EXISTS idx_bookings_expert_date ON bookings(expert_id, booking_date);
CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
`

// Migrate bootstraps the schema. The partial unique index on
// (expert_id, booking_date, slot) is the single serialization point for
// concurrent bookings: an insert either wins the key or fails with a
// unique violation, there is no check-then-write window. The predicate
// is built from the configured blocking-status set so deployments where
// pending bookings do not hold the slot get a matching index.
func Migrate(ctx context.Context, db PgxIface, booking utils.BookingConfig) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	predicate := "status IN ('pending', 'confirmed', 'completed')"
	if !booking.PendingBlocks {
		predicate = "status IN ('confirmed', 'completed')"
	}

	indexSQL := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_slot_key ON bookings(expert_id, booking_date, slot) WHERE %s",
		predicate,
	)
	if _, err := db.Exec(ctx, indexSQL); err != nil {
		return fmt.Errorf("create slot uniqueness index: %w", err)
	}

	return nil
}
