// README: Pricing config store backed by PostgreSQL.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LoadAll returns every configured key. An empty table is not an error.
func (s *Store) LoadAll(ctx context.Context) (PriceTable, error) {
	rows, err := s.db.Query(ctx, `SELECT key, cents FROM pricing_config`)
	if err != nil {
		return nil, fmt.Errorf("query pricing_config: %w", err)
	}
	defer rows.Close()

	table := PriceTable{}
	for rows.Next() {
		var key string
		var cents int64
		if err := rows.Scan(&key, &cents); err != nil {
			return nil, fmt.Errorf("scan pricing_config: %w", err)
		}
		table[key] = cents
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *Store) Upsert(ctx context.Context, key string, cents int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO pricing_config (key, cents, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET cents = EXCLUDED.cents, updated_at = EXCLUDED.updated_at`,
		key, cents, time.Now().UTC(),
	)
	return err
}
