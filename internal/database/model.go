package database

import (
	"database/sql"
	"time"

	"github.com/limansky/rednext/internal/schema"
)

// DB manages one SQLite database file together with the schema it was
// created with. The schema is loaded once on open and is the single source
// of truth for validation and (de)serialization.
type DB struct {
	conn   *sql.DB
	schema schema.Schema
}

// Schema returns the field definition bound to this database.
func (db *DB) Schema() schema.Schema {
	return db.schema
}

// Item represents a single task record conforming to the bound schema.
type Item struct {
	ID     int64
	Values schema.Values
	Done   bool
	DoneAt *time.Time // set while the item is done
}
