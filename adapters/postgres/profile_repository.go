package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"datasight/domain/core"
	"datasight/domain/profile"
	"datasight/ports"

	"github.com/jmoiron/sqlx"
)

// profileRepository implements ports.ProfileStore on any sqlx database the
// migration runner knows how to prepare (postgres and sqlite3).
type profileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) ports.ProfileStore {
	return &profileRepository{db: db}
}

type profileRow struct {
	FileID      string    `db:"file_id"`
	Filename    string    `db:"filename"`
	RowCount    int       `db:"row_count"`
	ColumnCount int       `db:"column_count"`
	Analysis    []byte    `db:"analysis"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row profileRow) toDomain() (*profile.StoredProfile, error) {
	var p profile.DatasetProfile
	if err := json.Unmarshal(row.Analysis, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis for %s: %w", row.FileID, err)
	}
	return &profile.StoredProfile{
		FileID:    core.FileID(row.FileID),
		Filename:  row.Filename,
		Profile:   &p,
		CreatedAt: core.Timestamp(row.CreatedAt.UTC()),
	}, nil
}

// Save inserts a profile, replacing any earlier one for the same file
func (r *profileRepository) Save(ctx context.Context, p *profile.StoredProfile) error {
	if p == nil || p.FileID == "" {
		return core.ErrInvalidID
	}
	if p.Profile == nil {
		return fmt.Errorf("%w: profile %s has no analysis", core.ErrInvalidTable, p.FileID)
	}
	analysis, err := json.Marshal(p.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	createdAt := p.CreatedAt.Time()
	if createdAt.IsZero() {
		createdAt = core.Now().Time()
	}

	query := r.db.Rebind(`INSERT INTO profiles (
		file_id, filename, row_count, column_count, analysis, created_at
	) VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (file_id) DO UPDATE SET
		filename = excluded.filename,
		row_count = excluded.row_count,
		column_count = excluded.column_count,
		analysis = excluded.analysis,
		created_at = excluded.created_at`)

	_, err = r.db.ExecContext(ctx, query,
		p.FileID.String(), p.Filename, p.Profile.Summary.RowCount, p.Profile.Summary.ColumnCount,
		string(analysis), createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Get retrieves the profile stored for a file
func (r *profileRepository) Get(ctx context.Context, id core.FileID) (*profile.StoredProfile, error) {
	query := r.db.Rebind(`SELECT file_id, filename, row_count, column_count, analysis, created_at
	FROM profiles WHERE file_id = ?`)

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return row.toDomain()
}

// List returns the most recent profiles first. A limit of zero means all.
func (r *profileRepository) List(ctx context.Context, limit int) ([]*profile.StoredProfile, error) {
	query := `SELECT file_id, filename, row_count, column_count, analysis, created_at
	FROM profiles
	ORDER BY created_at DESC, file_id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	out := make([]*profile.StoredProfile, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete removes a stored profile. Deleting an unknown id is not an error.
func (r *profileRepository) Delete(ctx context.Context, id core.FileID) error {
	query := r.db.Rebind(`DELETE FROM profiles WHERE file_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id.String()); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
