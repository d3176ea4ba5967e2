package clickhouse

import (
	"context"
	"fmt"

	"token-rank-lab/internal/storage/migrations"
)

// RunMigrations applies the embedded ClickHouse schema in lexical
// order.
func RunMigrations(ctx context.Context, conn *Conn) error {
	stmts, err := migrations.Statements(migrations.ClickhouseFS, "clickhouse")
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if err := conn.Exec(ctx, stmt.SQL); err != nil {
			return fmt.Errorf("apply migration %s: %w", stmt.Name, err)
		}
	}
	return nil
}
