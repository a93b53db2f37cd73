package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qkart/backend/pkg/cart"
)

// CartRepository implements cart.Repository backed by PostgreSQL. A cart is
// stored as one row per owner with the item sequence in a JSONB column, so
// every Save replaces the whole document the way the domain expects.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) (*CartRepository, error) {
	repo := &CartRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *CartRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS carts (
			email TEXT PRIMARY KEY REFERENCES users (email),
			items JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *CartRepository) GetByEmail(ctx context.Context, email string) (cart.Cart, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT email, items, created_at, updated_at FROM carts WHERE email = $1
	`, email)
	var c cart.Cart
	var items []byte
	var createdAt, updatedAt time.Time
	if err := row.Scan(&c.Email, &items, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart.Cart{}, cart.ErrNotFound
		}
		return cart.Cart{}, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return cart.Cart{}, fmt.Errorf("decode cart items: %w", err)
	}
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return c, nil
}

func (r *CartRepository) Create(ctx context.Context, c cart.Cart) (cart.Cart, error) {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("encode cart items: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO carts (email, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, c.Email, items, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

func (r *CartRepository) Save(ctx context.Context, c cart.Cart) (cart.Cart, error) {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("encode cart items: %w", err)
	}
	c.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE carts SET items = $2, updated_at = $3 WHERE email = $1
	`, c.Email, items, c.UpdatedAt)
	if err != nil {
		return cart.Cart{}, err
	}
	if tag.RowsAffected() == 0 {
		return cart.Cart{}, cart.ErrNotFound
	}
	return c, nil
}

// Settle clears the cart and debits the wallet inside one transaction, so
// partial application cannot be observed.
func (r *CartRepository) Settle(ctx context.Context, userID uuid.UUID, email string, total int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `
		UPDATE carts SET items = '[]', updated_at = $2 WHERE email = $1
	`, email, now); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE users SET wallet_money = wallet_money - $2, updated_at = $3 WHERE id = $1
	`, userID, total, now); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
