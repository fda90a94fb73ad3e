package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
)

// contractColumns is the canonical SELECT column list for contracts.
const contractColumns = `id, proposal_id, smartject_id, needer, provider, budget,
		start_date, end_date, status, needer_signed_at, provider_signed_at, created_at, updated_at`

// SQLiteContractRepo implements ContractRepo using a SQLite database.
type SQLiteContractRepo struct {
	db db.DBTX
}

// NewSQLiteContractRepo creates a new SQLiteContractRepo.
func NewSQLiteContractRepo(db db.DBTX) *SQLiteContractRepo {
	return &SQLiteContractRepo{db: db}
}

func (r *SQLiteContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProposalID,
		c.SmartjectID,
		c.Needer,
		c.Provider,
		c.Budget,
		c.StartDate.Format(dateLayout),
		c.EndDate.Format(dateLayout),
		string(c.Status),
		nullableTimeToString(c.NeederSignedAt, time.RFC3339),
		nullableTimeToString(c.ProviderSignedAt, time.RFC3339),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = ?`
	c, err := r.scanContract(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contract: %w", ErrNotFound)
	}
	return c, err
}

func (r *SQLiteContractRepo) GetByProposal(ctx context.Context, proposalID string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE proposal_id = ?`
	c, err := r.scanContract(r.db.QueryRowContext(ctx, query, proposalID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contract: %w", ErrNotFound)
	}
	return c, err
}

func (r *SQLiteContractRepo) List(ctx context.Context) ([]*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Contract
	for rows.Next() {
		c, err := r.scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return out, nil
}

func (r *SQLiteContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET status = ?, needer_signed_at = ?, provider_signed_at = ?,
		end_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(c.Status),
		nullableTimeToString(c.NeederSignedAt, time.RFC3339),
		nullableTimeToString(c.ProviderSignedAt, time.RFC3339),
		c.EndDate.Format(dateLayout),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) scanContract(row rowScanner) (*domain.Contract, error) {
	var c domain.Contract
	var statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr string
	var neederSignedStr, providerSignedStr sql.NullString

	err := row.Scan(
		&c.ID, &c.ProposalID, &c.SmartjectID, &c.Needer, &c.Provider, &c.Budget,
		&startDateStr, &endDateStr, &statusStr,
		&neederSignedStr, &providerSignedStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning contract: %w", err)
	}

	c.Status = domain.ContractStatus(statusStr)
	c.NeederSignedAt = parseNullableTime(neederSignedStr, time.RFC3339)
	c.ProviderSignedAt = parseNullableTime(providerSignedStr, time.RFC3339)

	var parseErr error
	c.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	c.EndDate, parseErr = time.Parse(dateLayout, endDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &c, nil
}
