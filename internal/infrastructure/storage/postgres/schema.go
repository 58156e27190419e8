package postgres

import (
	"context"
	"fmt"
)

// schemaDDL is the full billing schema. Bill items cascade with their parent
// bill; nothing else deletes them.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS items (
    id           BIGSERIAL PRIMARY KEY,
    item_code    TEXT NOT NULL UNIQUE,
    item_name    TEXT NOT NULL,
    price        NUMERIC(12,2) NOT NULL CHECK (price > 0),
    barcode      TEXT,
    qr_code_path TEXT,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bills (
    id             BIGSERIAL PRIMARY KEY,
    bill_number    TEXT NOT NULL UNIQUE,
    total_amount   NUMERIC(12,2) NOT NULL,
    payment_method TEXT NOT NULL CHECK (payment_method IN ('cash', 'upi', 'card')),
    staff_username TEXT NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bill_items (
    id          BIGSERIAL PRIMARY KEY,
    bill_id     BIGINT NOT NULL REFERENCES bills (id) ON DELETE CASCADE,
    item_id     BIGINT NOT NULL REFERENCES items (id),
    quantity    BIGINT NOT NULL CHECK (quantity > 0),
    unit_price  NUMERIC(12,2) NOT NULL,
    total_price NUMERIC(12,2) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bill_items_bill_id ON bill_items (bill_id);
CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills (created_at);

CREATE TABLE IF NOT EXISTS bill_sequences (
    day         DATE PRIMARY KEY,
    current_val BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id            BIGSERIAL PRIMARY KEY,
    setting_key   TEXT NOT NULL UNIQUE,
    setting_value TEXT NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS shop_info (
    id         BIGSERIAL PRIMARY KEY,
    shop_name  TEXT NOT NULL,
    tagline    TEXT NOT NULL DEFAULT '',
    address    TEXT NOT NULL,
    phone      TEXT,
    email      TEXT,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema creates all tables when they do not exist yet.
func InitSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
