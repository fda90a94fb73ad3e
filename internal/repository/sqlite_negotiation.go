package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
)

// SQLiteNegotiationRepo implements NegotiationRepo using a SQLite database.
// Messages are append-only; there is no update or delete.
type SQLiteNegotiationRepo struct {
	db db.DBTX
}

// NewSQLiteNegotiationRepo creates a new SQLiteNegotiationRepo.
func NewSQLiteNegotiationRepo(db db.DBTX) *SQLiteNegotiationRepo {
	return &SQLiteNegotiationRepo{db: db}
}

func (r *SQLiteNegotiationRepo) Create(ctx context.Context, m *domain.NegotiationMessage) error {
	query := `INSERT INTO negotiation_messages
		(id, proposal_id, sender, sender_role, kind, content, counter_budget, counter_timeline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.ProposalID,
		m.Sender,
		string(m.SenderRole),
		string(m.Kind),
		m.Content,
		nullableInt64ToValue(m.CounterBudget),
		nullableStringToValue(m.CounterTimeline),
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting negotiation message: %w", err)
	}
	return nil
}

func (r *SQLiteNegotiationRepo) ListByProposal(ctx context.Context, proposalID string) ([]*domain.NegotiationMessage, error) {
	query := `SELECT id, proposal_id, sender, sender_role, kind, content, counter_budget, counter_timeline, created_at
		FROM negotiation_messages WHERE proposal_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listing negotiation messages: %w", err)
	}
	defer rows.Close()

	var out []*domain.NegotiationMessage
	for rows.Next() {
		var m domain.NegotiationMessage
		var roleStr, kindStr, createdAtStr string
		var counterBudget sql.NullInt64
		var counterTimeline sql.NullString

		err := rows.Scan(
			&m.ID, &m.ProposalID, &m.Sender, &roleStr, &kindStr, &m.Content,
			&counterBudget, &counterTimeline, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning negotiation message: %w", err)
		}

		m.SenderRole = domain.PartyRole(roleStr)
		m.Kind = domain.MessageKind(kindStr)
		if counterBudget.Valid {
			v := counterBudget.Int64
			m.CounterBudget = &v
		}
		if counterTimeline.Valid {
			v := counterTimeline.String
			m.CounterTimeline = &v
		}
		m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating negotiation messages: %w", err)
	}
	return out, nil
}
