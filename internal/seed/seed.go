package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
)

// Apply inserts fixture data for manual testing: a small catalog and a staff
// account. It is idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := productrepo.NewPostgres(pool, nil)
	fixtures := []productrepo.UpsertInput{
		{
			Name:        "Gaming Laptop",
			Description: "High-performance laptop for gaming",
			Category:    "Electronics",
			PriceCents:  159999,
			Stock:       5,
		},
		{
			Name:        "Wireless Headphones",
			Description: "Noise-cancelling over-ear headphones",
			Category:    "Electronics",
			PriceCents:  19999,
			Stock:       20,
		},
		{
			Name:        "Cotton T-Shirt",
			Description: "Comfortable cotton t-shirt",
			Category:    "Clothes",
			PriceCents:  1999,
			Stock:       50,
		},
		{
			Name:        "Web Development Handbook",
			Description: "Practical guide to backend development",
			Category:    "Books",
			PriceCents:  2999,
			Stock:       15,
		},
	}
	for _, p := range fixtures {
		if _, err := products.UpsertByName(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := ensureStaffUser(ctx, pool, "admin@example.com", "changeme-admin"); err != nil {
		return fmt.Errorf("ensure staff user: %w", err)
	}
	return nil
}

func ensureStaffUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	users := userrepo.NewPostgres(pool)
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = users.Create(ctx, userrepo.CreateUserInput{
		Email:        email,
		Name:         "Admin",
		PasswordHash: string(hash),
		IsStaff:      true,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil
	}
	return err
}
