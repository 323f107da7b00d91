// README: Capture journal backed by PostgreSQL.
package capture

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS captures (
	id           TEXT PRIMARY KEY,
	latitude     DOUBLE PRECISION NOT NULL,
	longitude    DOUBLE PRECISION NOT NULL,
	display_name TEXT NOT NULL,
	width        INTEGER NOT NULL,
	height       INTEGER NOT NULL,
	captured_at  TIMESTAMPTZ NOT NULL
)`

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	return err
}

func (s *Store) Append(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO captures (id, latitude, longitude, display_name, width, height, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.Latitude, r.Longitude, r.DisplayName, r.Width, r.Height, r.CapturedAt,
	)
	return err
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, latitude, longitude, display_name, width, height, captured_at
		FROM captures
		ORDER BY captured_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Latitude, &r.Longitude, &r.DisplayName, &r.Width, &r.Height, &r.CapturedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
