package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
)

const dateLayout = "2006-01-02"

// smartjectColumns is the canonical SELECT column list for smartjects.
const smartjectColumns = `id, ref, title, mission, problematics, tags, status, archived_at, created_at, updated_at`

// SQLiteSmartjectRepo implements SmartjectRepo using a SQLite database.
type SQLiteSmartjectRepo struct {
	db db.DBTX
}

// NewSQLiteSmartjectRepo creates a new SQLiteSmartjectRepo.
func NewSQLiteSmartjectRepo(db db.DBTX) *SQLiteSmartjectRepo {
	return &SQLiteSmartjectRepo{db: db}
}

func (r *SQLiteSmartjectRepo) Create(ctx context.Context, s *domain.Smartject) error {
	query := `INSERT INTO smartjects (` + smartjectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Ref,
		s.Title,
		s.Mission,
		s.Problematics,
		joinTags(s.Tags),
		string(s.Status),
		nullableTimeToString(s.ArchivedAt, time.RFC3339),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting smartject: %w", err)
	}
	return nil
}

func (r *SQLiteSmartjectRepo) GetByID(ctx context.Context, id string) (*domain.Smartject, error) {
	query := `SELECT ` + smartjectColumns + ` FROM smartjects WHERE id = ?`
	return r.scanSmartject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSmartjectRepo) GetByRef(ctx context.Context, ref string) (*domain.Smartject, error) {
	query := `SELECT ` + smartjectColumns + ` FROM smartjects WHERE UPPER(ref) = UPPER(?)`
	return r.scanSmartject(r.db.QueryRowContext(ctx, query, ref))
}

func (r *SQLiteSmartjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Smartject, error) {
	query := `SELECT ` + smartjectColumns + ` FROM smartjects`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing smartjects: %w", err)
	}
	defer rows.Close()

	var out []*domain.Smartject
	for rows.Next() {
		s, err := r.scanSmartjectFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating smartjects: %w", err)
	}
	return out, nil
}

func (r *SQLiteSmartjectRepo) Update(ctx context.Context, s *domain.Smartject) error {
	query := `UPDATE smartjects SET ref = ?, title = ?, mission = ?, problematics = ?, tags = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Ref,
		s.Title,
		s.Mission,
		s.Problematics,
		joinTags(s.Tags),
		string(s.Status),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating smartject: %w", err)
	}
	return nil
}

func (r *SQLiteSmartjectRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE smartjects SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, now, now, id); err != nil {
		return fmt.Errorf("archiving smartject: %w", err)
	}
	return nil
}

func (r *SQLiteSmartjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM smartjects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting smartject: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteSmartjectRepo) scanSmartject(row *sql.Row) (*domain.Smartject, error) {
	s, err := r.scanSmartjectFromRows(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("smartject: %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSmartjectRepo) scanSmartjectFromRows(row rowScanner) (*domain.Smartject, error) {
	var s domain.Smartject
	var tagsStr, statusStr, createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := row.Scan(
		&s.ID, &s.Ref, &s.Title, &s.Mission, &s.Problematics,
		&tagsStr, &statusStr, &archivedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning smartject: %w", err)
	}

	s.Tags = splitTags(tagsStr)
	s.Status = domain.SmartjectStatus(statusStr)
	s.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &s, nil
}
