package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

// lineColumns joins products so quantities are paired with live catalog
// prices; cart lines never store a price of their own.
const lineColumns = `
cl.id::text, cl.cart_id::text, cl.product_id::text, p.name, cl.quantity, p.price_cents, cl.created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetOrCreateByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cart, err := getOrCreateCart(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	const linesQuery = `
SELECT ` + lineColumns + `
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1
ORDER BY cl.created_at ASC
`
	rows, err := tx.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.ProductID,
			&line.ProductName,
			&line.Quantity,
			&line.UnitPriceCents,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *postgresRepo) AddLine(ctx context.Context, cartID, productID string, quantity int) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Upsert on the (cart_id, product_id) unique index so two concurrent
	// first-adds of the same product both land as increments instead of one
	// of them failing the insert.
	var lineID string
	if err := tx.QueryRow(ctx, `
INSERT INTO cart_lines (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_lines.quantity + EXCLUDED.quantity
RETURNING id::text
`, cartID, productID, quantity).Scan(&lineID); err != nil {
		return nil, err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return nil, err
	}

	line, err := fetchLine(ctx, tx, lineID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return line, nil
}

func (r *postgresRepo) SetLineQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE cart_lines cl
SET quantity = $1
FROM carts c
WHERE cl.id = $2 AND cl.cart_id = c.id AND c.user_id = $3
`, quantity, lineID, userID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	line, err := fetchLine(ctx, tx, lineID)
	if err != nil {
		return nil, err
	}
	if err := touchCart(ctx, tx, line.CartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return line, nil
}

func (r *postgresRepo) RemoveLine(ctx context.Context, userID, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines cl
USING carts c
WHERE cl.id = $1 AND cl.cart_id = c.id AND c.user_id = $2
`, lineID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines cl
USING carts c
WHERE cl.cart_id = c.id AND c.user_id = $1
`, userID)
	return err
}

// getOrCreateCart looks the cart up first and only then inserts; the unique
// user_id constraint resolves the race between two first-access requests.
func getOrCreateCart(ctx context.Context, tx pgx.Tx, userID string) (*domain.Cart, error) {
	const selectQ = `
SELECT id::text, user_id::text, created_at, updated_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := tx.QueryRow(ctx, selectQ, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	const insertQ = `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id::text, user_id::text, created_at, updated_at
`
	if err := tx.QueryRow(ctx, insertQ, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, err
	}
	return &cart, nil
}

func fetchLine(ctx context.Context, tx pgx.Tx, lineID string) (*domain.CartLine, error) {
	const q = `
SELECT ` + lineColumns + `
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.id = $1
`
	var line domain.CartLine
	err := tx.QueryRow(ctx, q, lineID).Scan(
		&line.ID,
		&line.CartID,
		&line.ProductID,
		&line.ProductName,
		&line.Quantity,
		&line.UnitPriceCents,
		&line.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}
