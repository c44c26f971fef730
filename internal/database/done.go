package database

import (
	"database/sql"
	"fmt"
	"time"
)

// MarkDone transitions an item to done and records the completion time.
// Marking an already-done item is a no-op; the original timestamp is kept.
func (db *DB) MarkDone(id int64) error {
	return db.setDone(id, true)
}

// MarkUndone transitions an item back to undone and clears the completion
// time. Marking an already-undone item is a no-op.
func (db *DB) MarkUndone(id int64) error {
	return db.setDone(id, false)
}

func (db *DB) setDone(id int64, done bool) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current bool
	err = tx.QueryRow("SELECT done FROM items WHERE id = ?", id).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrItemNotFound
	} else if err != nil {
		return fmt.Errorf("failed to retrieve item state: %w", err)
	}

	if current == done {
		// Transition already satisfied.
		return tx.Commit()
	}

	if done {
		_, err = tx.Exec("UPDATE items SET done = 1, done_at = ? WHERE id = ?", time.Now().UTC(), id)
	} else {
		_, err = tx.Exec("UPDATE items SET done = 0, done_at = NULL WHERE id = ?", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update item state: %w", err)
	}

	return tx.Commit()
}
