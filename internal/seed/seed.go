package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Image       string
}

// Apply inserts basic seed data for manual testing. It is idempotent:
// existing rows are left alone.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureUser(ctx, pool, "admin", "Admin123", "admin"); err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			PriceCents:  1999,
			Image:       "demo-shirt.png",
		},
		{
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			PriceCents:  1299,
			Image:       "demo-mug.png",
		},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, username, password, role string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, password_hash, role)
VALUES ($1, $2, $3)
ON CONFLICT (username) DO NOTHING
`
	_, err = pool.Exec(ctx, q, username, string(hashed), role)
	return err
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price_cents, image)
SELECT $1, $2, $3, $4
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.PriceCents, p.Image)
	return err
}
