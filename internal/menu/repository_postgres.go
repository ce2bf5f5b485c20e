package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const modelColumns = `
	id,
	restaurant_id,
	name,
	price,
	thumbnail,
	model_url,
	category,
	description,
	ingredients,
	allergens,
	created_at
`

func scanModel(row pgx.Row) (*Model3D, error) {
	var m Model3D
	err := row.Scan(
		&m.ID,
		&m.RestaurantID,
		&m.Name,
		&m.Price,
		&m.Thumbnail,
		&m.ModelURL,
		&m.Category,
		&m.Description,
		&m.Ingredients,
		&m.Allergens,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// --------------------------------------------------
// CREATE
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, m *Model3D) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO models (
			restaurant_id,
			name,
			price,
			thumbnail,
			model_url,
			category,
			description,
			ingredients,
			allergens
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`,
		m.RestaurantID,
		m.Name,
		m.Price,
		m.Thumbnail,
		m.ModelURL,
		m.Category,
		m.Description,
		textArray(m.Ingredients),
		textArray(m.Allergens),
	).Scan(&m.ID, &m.CreatedAt)
}

// textArray keeps nil slices out of NOT NULL array columns.
func textArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// --------------------------------------------------
// GET BY ID
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Model3D, error) {
	m, err := scanModel(r.db.QueryRow(ctx, `
		SELECT `+modelColumns+`
		FROM models
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrModelNotFound
	}
	return m, err
}

// --------------------------------------------------
// LIST BY RESTAURANT (menu display order)
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Model3D, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+modelColumns+`
		FROM models
		WHERE restaurant_id = $1
		ORDER BY category, name
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []*Model3D
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	return models, rows.Err()
}

// --------------------------------------------------
// UPDATE PRICE
// --------------------------------------------------
func (r *PostgresRepository) UpdatePrice(ctx context.Context, id string, price *float64) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE models
		SET price = $1
		WHERE id = $2
	`, price, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrModelNotFound
	}

	return nil
}
