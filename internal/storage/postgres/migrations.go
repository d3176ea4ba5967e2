package postgres

import (
	"context"
	"fmt"

	"token-rank-lab/internal/storage/migrations"
)

// RunMigrations applies the embedded PostgreSQL schema in lexical
// order.
func RunMigrations(ctx context.Context, pool *Pool) error {
	stmts, err := migrations.Statements(migrations.PostgresFS, "postgres")
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt.SQL); err != nil {
			return fmt.Errorf("apply migration %s: %w", stmt.Name, err)
		}
	}
	return nil
}
