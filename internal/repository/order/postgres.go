package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

const orderColumns = `id::text, user_id::text, status, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

type cartSnapshot struct {
	productID  string
	quantity   int
	priceCents int64
	stock      int
}

func (r *postgresRepo) Materialize(ctx context.Context, userID string, strict bool) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmptyCart
		}
		return nil, mapConflict(err)
	}

	// Lock product rows in a stable order so concurrent checkouts touching
	// the same products cannot deadlock, and read price and stock under the
	// lock.
	const snapshotQ = `
SELECT cl.product_id::text, cl.quantity, p.price_cents, p.stock
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1
ORDER BY cl.product_id
FOR UPDATE OF p
`
	rows, err := tx.Query(ctx, snapshotQ, cartID)
	if err != nil {
		return nil, mapConflict(err)
	}
	var lines []cartSnapshot
	for rows.Next() {
		var s cartSnapshot
		if err := rows.Scan(&s.productID, &s.quantity, &s.priceCents, &s.stock); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapConflict(err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Validate every line before writing anything, so a shortfall on the
	// last line leaves no partial order behind.
	if strict {
		for _, s := range lines {
			if s.quantity > s.stock {
				return nil, &domain.InsufficientStockError{
					ProductID: s.productID,
					Requested: s.quantity,
					Available: s.stock,
				}
			}
		}
	}

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, status)
VALUES ($1, $2)
RETURNING `+orderColumns+`
`, userID, domain.OrderPending).Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, mapConflict(err)
	}

	for _, s := range lines {
		var line domain.OrderLine
		err = tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
RETURNING id::text, order_id::text, product_id::text, quantity, unit_price_cents
`, order.ID, s.productID, s.quantity, s.priceCents).Scan(
			&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPriceCents,
		)
		if err != nil {
			return nil, mapConflict(err)
		}
		order.Lines = append(order.Lines, line)

		if _, err := tx.Exec(ctx, `
UPDATE products SET stock = stock - $1, updated_at = now() WHERE id = $2
`, s.quantity, s.productID); err != nil {
			return nil, mapConflict(err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return nil, mapConflict(err)
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID); err != nil {
		return nil, mapConflict(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapConflict(err)
	}
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	var order domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+`
FROM orders
ORDER BY created_at DESC
`)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2
RETURNING ` + orderColumns + `
`
	var order domain.Order
	err := r.pool.QueryRow(ctx, q, status, id).Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) BulkUpdateStatus(ctx context.Context, ids []string, status domain.OrderStatus) (int, error) {
	updated := 0
	for _, id := range ids {
		cmd, err := r.pool.Exec(ctx, `
UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
`, status, id)
		if err != nil {
			return updated, err
		}
		updated += int(cmd.RowsAffected())
	}
	return updated, nil
}

func (r *postgresRepo) BulkDelete(ctx context.Context, ids []string) (int, error) {
	deleted := 0
	for _, id := range ids {
		cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return deleted, err
		}
		deleted += int(cmd.RowsAffected())
	}
	return deleted, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadLines(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	const q = `
SELECT id::text, order_id::text, product_id::text, quantity, unit_price_cents
FROM order_lines
WHERE order_id = ANY($1)
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPriceCents); err != nil {
			return err
		}
		if o, ok := byID[line.OrderID]; ok {
			o.Lines = append(o.Lines, line)
		}
	}
	return rows.Err()
}

// mapConflict translates serialization failures and deadlocks into
// domain.ErrConflict so callers can retry the whole transaction.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return domain.ErrConflict
		}
	}
	return err
}
