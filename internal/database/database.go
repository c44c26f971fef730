package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/limansky/rednext/internal/schema"
)

// Database schema layout version
const layoutVersion = 1

// Create initializes a new SQLite database file at path, persists the
// given schema and creates the items table generated from it. The schema
// is write-once: creating over a file that already carries one fails with
// ErrAlreadyInitialized.
func Create(path string, s schema.Schema) (*DB, error) {
	conn, err := open(path)
	if err != nil {
		return nil, err
	}

	if err := initTables(conn, s); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn, schema: s}, nil
}

// Open opens an existing database file and loads its persisted schema.
// It fails with ErrSchemaNotFound if the file was not initialized by
// Create, and with ErrCorruptSchema if the persisted schema does not
// parse back into a field definition.
func Open(path string) (*DB, error) {
	conn, err := open(path)
	if err != nil {
		return nil, err
	}

	s, err := readSchema(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn, schema: s}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Enable foreign keys and WAL mode
	if _, err := conn.Exec(`
        PRAGMA foreign_keys = ON;
        PRAGMA journal_mode = WAL;
    `); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	return conn, nil
}

// initTables creates the schema and items tables in one transaction.
func initTables(conn *sql.DB, s schema.Schema) error {
	initialized, err := hasSchemaTable(conn)
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeSchema(tx, s); err != nil {
		return err
	}

	if _, err := tx.Exec(itemsTableDDL(s)); err != nil {
		return fmt.Errorf("failed to create items table: %w", err)
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", layoutVersion)); err != nil {
		return fmt.Errorf("failed to set layout version: %w", err)
	}

	return tx.Commit()
}

// itemsTableDDL generates the items table definition from the schema. The
// column set is fixed at creation time and never altered afterwards.
func itemsTableDDL(s schema.Schema) string {
	var cols strings.Builder
	for _, f := range s.Fields {
		cols.WriteString(fmt.Sprintf("%s %s", quoteName(f.Name), sqlType(f.Kind)))
		if f.Required {
			cols.WriteString(" NOT NULL")
		}
		cols.WriteString(",\n    ")
	}

	return fmt.Sprintf(`CREATE TABLE items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    %sdone BOOLEAN NOT NULL DEFAULT 0,
    done_at TIMESTAMP
)`, cols.String())
}

func sqlType(k schema.Kind) string {
	switch k {
	case schema.Integer:
		return "INTEGER"
	case schema.Real:
		return "REAL"
	case schema.Boolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// quoteName quotes a user-declared field name for use as an SQL
// identifier. Schema validation rejects names containing quotes.
func quoteName(name string) string {
	return `"` + name + `"`
}
