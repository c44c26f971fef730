package database

import (
	"database/sql"
	"fmt"

	"github.com/limansky/rednext/internal/schema"
)

// The schema table stores one row per declared field. The idx column
// preserves declaration order, which is semantically significant.
const schemaTableDDL = `CREATE TABLE schema (
    name TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    required BOOLEAN NOT NULL,
    idx INTEGER NOT NULL
)`

// hasSchemaTable reports whether the database already carries a persisted
// schema.
func hasSchemaTable(conn *sql.DB) (bool, error) {
	var name string
	err := conn.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'schema'`,
	).Scan(&name)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to inspect database: %w", err)
	}
	return true, nil
}

// writeSchema persists the field definition. Called exactly once, from
// Create.
func writeSchema(tx *sql.Tx, s schema.Schema) error {
	if _, err := tx.Exec(schemaTableDDL); err != nil {
		return fmt.Errorf("failed to create schema table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO schema (name, kind, required, idx) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare schema insert: %w", err)
	}
	defer stmt.Close()

	for idx, f := range s.Fields {
		if _, err := stmt.Exec(f.Name, f.Kind.String(), f.Required, idx); err != nil {
			return fmt.Errorf("failed to write schema field %q: %w", f.Name, err)
		}
	}

	return nil
}

// readSchema loads the persisted field definition in declaration order.
func readSchema(conn *sql.DB) (schema.Schema, error) {
	ok, err := hasSchemaTable(conn)
	if err != nil {
		return schema.Schema{}, err
	}
	if !ok {
		return schema.Schema{}, ErrSchemaNotFound
	}

	rows, err := conn.Query(`SELECT name, kind, required FROM schema ORDER BY idx`)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("failed to query schema: %w", err)
	}
	defer rows.Close()

	var fields []schema.Field
	for rows.Next() {
		var (
			name     string
			kindName string
			required bool
		)
		if err := rows.Scan(&name, &kindName, &required); err != nil {
			return schema.Schema{}, fmt.Errorf("%w: %v", ErrCorruptSchema, err)
		}
		kind, err := schema.ParseKind(kindName)
		if err != nil {
			return schema.Schema{}, fmt.Errorf("%w: %v", ErrCorruptSchema, err)
		}
		fields = append(fields, schema.Field{Name: name, Kind: kind, Required: required})
	}
	if err := rows.Err(); err != nil {
		return schema.Schema{}, fmt.Errorf("failed to read schema rows: %w", err)
	}

	s, err := schema.New(fields)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("%w: %v", ErrCorruptSchema, err)
	}

	return s, nil
}
