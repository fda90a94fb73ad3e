package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
)

// proposalColumns is the canonical SELECT column list for proposals.
const proposalColumns = `id, smartject_id, author, role, title, description,
		budget, timeline, start_date, status, submitted_at, created_at, updated_at`

// SQLiteProposalRepo implements ProposalRepo using a SQLite database.
type SQLiteProposalRepo struct {
	db db.DBTX
}

// NewSQLiteProposalRepo creates a new SQLiteProposalRepo.
func NewSQLiteProposalRepo(db db.DBTX) *SQLiteProposalRepo {
	return &SQLiteProposalRepo{db: db}
}

func (r *SQLiteProposalRepo) Create(ctx context.Context, p *domain.Proposal) error {
	query := `INSERT INTO proposals (` + proposalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.SmartjectID,
		p.Author,
		string(p.Role),
		p.Title,
		p.Description,
		p.Budget,
		p.Timeline,
		p.StartDate.Format(dateLayout),
		string(p.Status),
		nullableTimeToString(p.SubmittedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting proposal: %w", err)
	}
	return nil
}

func (r *SQLiteProposalRepo) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = ?`
	p, err := r.scanProposal(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("proposal: %w", ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProposalRepo) ListBySmartject(ctx context.Context, smartjectID string) ([]*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE smartject_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, smartjectID)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}
	defer rows.Close()
	return r.collectProposals(rows)
}

func (r *SQLiteProposalRepo) List(ctx context.Context, statuses ...domain.ProposalStatus) ([]*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals`
	var args []any
	if len(statuses) > 0 {
		query += ` WHERE status IN (?` + strings.Repeat(",?", len(statuses)-1) + `)`
		for _, s := range statuses {
			args = append(args, string(s))
		}
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}
	defer rows.Close()
	return r.collectProposals(rows)
}

func (r *SQLiteProposalRepo) Update(ctx context.Context, p *domain.Proposal) error {
	query := `UPDATE proposals SET author = ?, role = ?, title = ?, description = ?,
		budget = ?, timeline = ?, start_date = ?, status = ?, submitted_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Author,
		string(p.Role),
		p.Title,
		p.Description,
		p.Budget,
		p.Timeline,
		p.StartDate.Format(dateLayout),
		string(p.Status),
		nullableTimeToString(p.SubmittedAt, time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating proposal: %w", err)
	}
	return nil
}

func (r *SQLiteProposalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting proposal: %w", err)
	}
	return nil
}

func (r *SQLiteProposalRepo) collectProposals(rows *sql.Rows) ([]*domain.Proposal, error) {
	var out []*domain.Proposal
	for rows.Next() {
		p, err := r.scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposals: %w", err)
	}
	return out, nil
}

func (r *SQLiteProposalRepo) scanProposal(row rowScanner) (*domain.Proposal, error) {
	var p domain.Proposal
	var roleStr, statusStr, startDateStr, createdAtStr, updatedAtStr string
	var submittedAtStr sql.NullString

	err := row.Scan(
		&p.ID, &p.SmartjectID, &p.Author, &roleStr, &p.Title, &p.Description,
		&p.Budget, &p.Timeline, &startDateStr, &statusStr, &submittedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning proposal: %w", err)
	}

	p.Role = domain.PartyRole(roleStr)
	p.Status = domain.ProposalStatus(statusStr)
	p.SubmittedAt = parseNullableTime(submittedAtStr, time.RFC3339)

	var parseErr error
	p.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &p, nil
}
