package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/limansky/rednext/internal/schema"
)

// AddItem validates values against the bound schema, assigns an id and
// persists the full record in one transaction. Optional fields absent
// from values are stored as null.
func (db *DB) AddItem(values schema.Values) (Item, error) {
	if err := db.schema.Validate(values); err != nil {
		return Item{}, err
	}
	full := db.schema.Complete(values)

	names := make([]string, len(db.schema.Fields))
	placeholders := make([]string, len(db.schema.Fields))
	args := make([]any, len(db.schema.Fields))
	for i, f := range db.schema.Fields {
		names[i] = quoteName(f.Name)
		placeholders[i] = "?"
		args[i] = valueArg(full[f.Name])
	}

	insertItemSQL := fmt.Sprintf(
		"INSERT INTO items (%s) VALUES (%s)",
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := db.conn.Begin()
	if err != nil {
		return Item{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(insertItemSQL, args...)
	if err != nil {
		return Item{}, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Item{}, fmt.Errorf("failed to get inserted id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Item{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return Item{ID: id, Values: full}, nil
}

// GetItem retrieves an item by id, or returns ErrItemNotFound if it does
// not exist.
func (db *DB) GetItem(id int64) (Item, error) {
	row := db.conn.QueryRow(db.baseSelect()+" WHERE id = ?", id)

	item, err := db.scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return Item{}, ErrItemNotFound
	} else if err != nil {
		return Item{}, fmt.Errorf("failed to retrieve item: %w", err)
	}

	return item, nil
}

// UpdateItem replaces the full values map of an item and re-validates it
// exactly as AddItem does. The done flag is untouched.
func (db *DB) UpdateItem(id int64, values schema.Values) error {
	if err := db.schema.Validate(values); err != nil {
		return err
	}
	full := db.schema.Complete(values)

	assignments := make([]string, len(db.schema.Fields))
	args := make([]any, 0, len(db.schema.Fields)+1)
	for i, f := range db.schema.Fields {
		assignments[i] = quoteName(f.Name) + " = ?"
		args = append(args, valueArg(full[f.Name]))
	}
	args = append(args, id)

	updateItemSQL := fmt.Sprintf(
		"UPDATE items SET %s WHERE id = ?",
		strings.Join(assignments, ", "),
	)

	return db.execOne(updateItemSQL, args...)
}

// DeleteItem removes an item by id, or returns ErrItemNotFound if it does
// not exist.
func (db *DB) DeleteItem(id int64) error {
	return db.execOne("DELETE FROM items WHERE id = ?", id)
}

// execOne runs a single mutating statement in its own transaction and
// returns ErrItemNotFound unless exactly one row was affected.
func (db *DB) execOne(query string, args ...any) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// valueArg converts a typed value into its SQL argument form.
func valueArg(v schema.Value) any {
	if v.Null {
		return nil
	}
	switch v.Kind {
	case schema.Integer:
		return v.Int
	case schema.Real:
		return v.Real
	case schema.Boolean:
		return v.Bool
	default:
		return v.Text
	}
}
