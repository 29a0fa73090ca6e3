package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Summarize(ctx context.Context, since time.Time) (*Summary, error) {
	const q = `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM products),
    (SELECT COUNT(*) FROM orders WHERE created_at >= $1),
    COALESCE((
        SELECT SUM(ol.quantity * ol.unit_price_cents)
        FROM order_lines ol
        JOIN orders o ON o.id = ol.order_id
        WHERE o.created_at >= $1
    ), 0)
`
	var s Summary
	if err := r.pool.QueryRow(ctx, q, since).Scan(&s.Users, &s.Products, &s.Orders, &s.TotalSalesCents); err != nil {
		return nil, err
	}
	return &s, nil
}
