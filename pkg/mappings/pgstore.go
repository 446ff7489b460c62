package mappings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PGStore reads corrections straight from the team_name_mappings table.
// The table is owned by the dashboard; this store only ever reads it.
type PGStore struct {
	db *sql.DB
}

// NewPGStore opens a PostgreSQL-backed store from a DSN.
func NewPGStore(dsn string) (*PGStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &PGStore{db: db}, nil
}

// Fetch implements Store.
func (s *PGStore) Fetch(ctx context.Context, sportCode string) ([]Row, error) {
	const q = `SELECT source_name, canonical_name, sport_code
	           FROM team_name_mappings WHERE sport_code = $1`
	return s.query(ctx, q, sportCode)
}

// FetchAll implements Store.
func (s *PGStore) FetchAll(ctx context.Context) ([]Row, error) {
	const q = `SELECT source_name, canonical_name, sport_code
	           FROM team_name_mappings`
	return s.query(ctx, q)
}

// Close releases the database handle.
func (s *PGStore) Close() error { return s.db.Close() }

func (s *PGStore) query(ctx context.Context, q string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying team_name_mappings: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.SourceName, &r.CanonicalName, &r.SportCode); err != nil {
			return nil, fmt.Errorf("scanning mapping row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mapping rows: %w", err)
	}
	return out, nil
}
