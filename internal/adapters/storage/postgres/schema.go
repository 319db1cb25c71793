package postgres

import (
	"database/sql"
	"fmt"
)

// CreateSchema crea las tablas si no existen. Seguro de llamar varias
// veces; en prod conviven con migraciones manuales.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    provider TEXT NOT NULL DEFAULT 'google',
    external_id TEXT,
    email TEXT NOT NULL UNIQUE,
    name TEXT,
    phone TEXT,
    tier TEXT NOT NULL DEFAULT 'basic' CHECK (tier IN ('basic', 'premium')),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pets (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    breed TEXT,
    color TEXT,
    photos JSONB NOT NULL DEFAULT '[]',
    medical_notes TEXT,
    allergies TEXT,
    status TEXT NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'LOST')),
    contact_visibility TEXT NOT NULL DEFAULT 'phone' CHECK (contact_visibility IN ('phone', 'form', 'both')),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pets_owner_id ON pets(owner_id);

CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    owner_id TEXT,
    pet_id TEXT,
    activated BOOLEAN NOT NULL DEFAULT FALSE,
    model TEXT NOT NULL DEFAULT 'smart_tag' CHECK (model IN ('smart_tag', 'smart_case')),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

-- pet_id sin FK a propósito: el link no valida la referencia.

CREATE TABLE IF NOT EXISTS scan_events (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL,
    pet_id TEXT,
    owner_id TEXT,
    ts TIMESTAMPTZ NOT NULL,
    lat DOUBLE PRECISION,
    lng DOUBLE PRECISION,
    accuracy DOUBLE PRECISION,
    user_agent TEXT,
    referrer TEXT
);

CREATE INDEX IF NOT EXISTS idx_scan_events_code ON scan_events(code);

CREATE TABLE IF NOT EXISTS coupons (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL,
    offer TEXT NOT NULL,
    redeemed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL,
    redeemed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_coupons_code ON coupons(code);
`
