package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
)

// milestoneColumns is the canonical SELECT column list for milestones.
const milestoneColumns = `id, proposal_id, name, description, percentage, amount,
		due_date, order_index, status, completed_at, created_at, updated_at`

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
// Deliverable rows live and die with their milestone: Create and Update
// rewrite the checklist, Get and List load it back in order.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(db db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: db}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.ProposalID,
		m.Name,
		m.Description,
		m.Percentage,
		m.Amount,
		m.DueDate.Format(dateLayout),
		m.OrderIndex,
		string(m.Status),
		nullableTimeToString(m.CompletedAt, time.RFC3339),
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return r.replaceDeliverables(ctx, m.ID, m.Deliverables)
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	m, err := r.scanMilestone(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone: %w", ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadDeliverables(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) ListByProposal(ctx context.Context, proposalID string) ([]domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE proposal_id = ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []domain.Milestone
	for rows.Next() {
		m, err := r.scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}

	for i := range out {
		if err := r.loadDeliverables(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones SET name = ?, description = ?, percentage = ?, amount = ?,
		due_date = ?, order_index = ?, status = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.Name,
		m.Description,
		m.Percentage,
		m.Amount,
		m.DueDate.Format(dateLayout),
		m.OrderIndex,
		string(m.Status),
		nullableTimeToString(m.CompletedAt, time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return r.replaceDeliverables(ctx, m.ID, m.Deliverables)
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	// Deliverables cascade via the foreign key.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) replaceDeliverables(ctx context.Context, milestoneID string, ds []domain.Deliverable) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM deliverables WHERE milestone_id = ?`, milestoneID); err != nil {
		return fmt.Errorf("clearing deliverables: %w", err)
	}
	for i, d := range ds {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO deliverables (id, milestone_id, description, completed, order_index)
			VALUES (?, ?, ?, ?, ?)`,
			d.ID, milestoneID, d.Description, boolToInt(d.Completed), i,
		)
		if err != nil {
			return fmt.Errorf("inserting deliverable: %w", err)
		}
	}
	return nil
}

func (r *SQLiteMilestoneRepo) loadDeliverables(ctx context.Context, m *domain.Milestone) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, milestone_id, description, completed, order_index
		FROM deliverables WHERE milestone_id = ? ORDER BY order_index`, m.ID)
	if err != nil {
		return fmt.Errorf("listing deliverables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.Deliverable
		var completed int
		if err := rows.Scan(&d.ID, &d.MilestoneID, &d.Description, &completed, &d.OrderIndex); err != nil {
			return fmt.Errorf("scanning deliverable: %w", err)
		}
		d.Completed = intToBool(completed)
		m.Deliverables = append(m.Deliverables, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating deliverables: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) scanMilestone(row rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var statusStr, dueDateStr, createdAtStr, updatedAtStr string
	var completedAtStr sql.NullString

	err := row.Scan(
		&m.ID, &m.ProposalID, &m.Name, &m.Description, &m.Percentage, &m.Amount,
		&dueDateStr, &m.OrderIndex, &statusStr, &completedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}

	m.Status = domain.MilestoneStatus(statusStr)
	m.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)

	var parseErr error
	m.DueDate, parseErr = time.Parse(dateLayout, dueDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing due_date: %w", parseErr)
	}
	m.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	m.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &m, nil
}
