// README: Quote store backed by PostgreSQL.
package quote

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hibachi/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, q *Quote) error {
	upgrades := q.Result.Upgrades
	if upgrades == nil {
		upgrades = []UpgradeLine{}
	}
	lines, err := json.Marshal(upgrades)
	if err != nil {
		return err
	}
	requested := q.Request.Upgrades
	if requested == nil {
		requested = map[string]int{}
	}
	reqLines, err := json.Marshal(requested)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO quotes (
			id, customer_name, venue_address,
			adults, children, toddlers, upgrades, requested, travel_miles,
			subtotal, applied_minimum, upgrades_total, travel_fee,
			grand_total, deposit, balance_due, created_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16, $17
		)`,
		string(q.ID), q.CustomerName, q.VenueAddress,
		q.Request.Adults, q.Request.Children, q.Request.Toddlers, lines, reqLines, q.Request.TravelMiles,
		q.Result.Subtotal, q.Result.AppliedMinimum, q.Result.UpgradesTotal, q.Result.TravelFee,
		q.Result.GrandTotal, q.Result.Deposit, q.Result.BalanceDue, q.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Quote, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id::text, customer_name, venue_address,
		       adults, children, toddlers, upgrades, requested, travel_miles,
		       subtotal, applied_minimum, upgrades_total, travel_fee,
		       grand_total, deposit, balance_due, created_at
		FROM quotes
		WHERE id = $1`, string(id),
	)

	var q Quote
	var lines, reqLines []byte
	err := row.Scan(
		&q.ID, &q.CustomerName, &q.VenueAddress,
		&q.Request.Adults, &q.Request.Children, &q.Request.Toddlers, &lines, &reqLines, &q.Request.TravelMiles,
		&q.Result.Subtotal, &q.Result.AppliedMinimum, &q.Result.UpgradesTotal, &q.Result.TravelFee,
		&q.Result.GrandTotal, &q.Result.Deposit, &q.Result.BalanceDue, &q.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lines, &q.Result.Upgrades); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reqLines, &q.Request.Upgrades); err != nil {
		return nil, err
	}
	if len(q.Request.Upgrades) == 0 {
		q.Request.Upgrades = nil
	}
	q.Result.Currency = types.CurrencyUSD
	return &q, nil
}
