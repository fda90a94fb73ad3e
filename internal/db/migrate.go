package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS smartjects (
		id           TEXT PRIMARY KEY,
		ref          TEXT NOT NULL UNIQUE,
		title        TEXT NOT NULL,
		mission      TEXT NOT NULL DEFAULT '',
		problematics TEXT NOT NULL DEFAULT '',
		tags         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'open'
		             CHECK(status IN ('open','matched','archived')),
		archived_at  TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS proposals (
		id           TEXT PRIMARY KEY,
		smartject_id TEXT NOT NULL REFERENCES smartjects(id) ON DELETE CASCADE,
		author       TEXT NOT NULL,
		role         TEXT NOT NULL CHECK(role IN ('needer','provider')),
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		budget       INTEGER NOT NULL DEFAULT 0,
		timeline     TEXT NOT NULL DEFAULT '',
		start_date   TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'draft'
		             CHECK(status IN ('draft','submitted','accepted','rejected','withdrawn')),
		submitted_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_proposals_smartject ON proposals(smartject_id)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id           TEXT PRIMARY KEY,
		proposal_id  TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		percentage   INTEGER NOT NULL CHECK(percentage > 0 AND percentage <= 100),
		amount       TEXT NOT NULL DEFAULT '',
		due_date     TEXT NOT NULL,
		order_index  INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','in_progress','submitted_for_review','approved')),
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_proposal ON milestones(proposal_id)`,

	`CREATE TABLE IF NOT EXISTS deliverables (
		id           TEXT PRIMARY KEY,
		milestone_id TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		description  TEXT NOT NULL,
		completed    INTEGER NOT NULL DEFAULT 0,
		order_index  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deliverables_milestone ON deliverables(milestone_id)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		id                 TEXT PRIMARY KEY,
		proposal_id        TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		smartject_id       TEXT NOT NULL REFERENCES smartjects(id) ON DELETE CASCADE,
		needer             TEXT NOT NULL,
		provider           TEXT NOT NULL,
		budget             INTEGER NOT NULL DEFAULT 0,
		start_date         TEXT NOT NULL,
		end_date           TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'pending_signatures'
		                   CHECK(status IN ('pending_signatures','active','completed','cancelled')),
		needer_signed_at   TEXT,
		provider_signed_at TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contracts_proposal ON contracts(proposal_id)`,

	`CREATE TABLE IF NOT EXISTS negotiation_messages (
		id               TEXT PRIMARY KEY,
		proposal_id      TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		sender           TEXT NOT NULL,
		sender_role      TEXT NOT NULL CHECK(sender_role IN ('needer','provider')),
		kind             TEXT NOT NULL CHECK(kind IN ('comment','counter_offer')),
		content          TEXT NOT NULL DEFAULT '',
		counter_budget   INTEGER,
		counter_timeline TEXT,
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_negotiation_proposal ON negotiation_messages(proposal_id)`,
}
