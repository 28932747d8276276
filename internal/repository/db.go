package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT
);

CREATE TABLE IF NOT EXISTS bugs (
	id          BIGSERIAL PRIMARY KEY,
	project_id  BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	description TEXT,
	priority    INTEGER NOT NULL DEFAULT 1,
	status      TEXT NOT NULL DEFAULT 'open',
	start_date  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	due_date    TIMESTAMPTZ,
	end_date    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	CONSTRAINT users_username_key UNIQUE (username),
	CONSTRAINT users_email_key UNIQUE (email)
);
`

// EnsureSchema creates the tables if they do not exist yet. The FK on
// bugs.project_id cascades deletes, which is what removes a project's bugs
// when the project goes away.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
