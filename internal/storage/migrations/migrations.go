// Package migrations embeds the schema files applied by the database
// store packages. Files run in lexical order and must be idempotent.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// PostgresFS embeds all PostgreSQL migration files.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds all ClickHouse migration files.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS

// Statement is one SQL migration statement with its source file name.
type Statement struct {
	Name string
	SQL  string
}

// Statements returns the non-blank SQL files under dir in lexical
// order. ClickHouse rejects multi-statement scripts, so each file
// holds a single statement.
func Statements(fsys fs.FS, dir string) ([]Statement, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	var stmts []Statement
	for _, file := range files {
		data, err := fs.ReadFile(fsys, dir+"/"+file)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		stmts = append(stmts, Statement{Name: file, SQL: string(data)})
	}

	return stmts, nil
}
