package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore syncs slots to the server. Writes replace the whole value;
// the last writer wins.
type PostgresStore struct {
	db        *pgxpool.Pool
	namespace string
}

func NewPostgresStore(db *pgxpool.Pool, namespace string) *PostgresStore {
	return &PostgresStore{db: db, namespace: namespace}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(ctx, `
		SELECT value
		FROM cart_slots
		WHERE namespace = $1 AND slot_key = $2
	`, s.namespace, key).Scan(&value)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cart_slots (namespace, slot_key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, slot_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, s.namespace, key, value)
	return err
}

func (s *PostgresStore) Clear(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM cart_slots
		WHERE namespace = $1 AND slot_key = $2
	`, s.namespace, key)
	return err
}
