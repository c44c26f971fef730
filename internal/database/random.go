package database

import (
	"database/sql"
	"fmt"
	"math/rand"
)

// PickRandom selects one undone item uniformly at random, or returns
// ErrNoEligibleItems when every item is done. It counts the eligible
// items and fetches the row at a uniformly drawn offset in id order, so
// each undone item is picked with probability exactly 1/n without loading
// the full item set.
func (db *DB) PickRandom() (Item, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM items WHERE NOT done").Scan(&count)
	if err != nil {
		return Item{}, fmt.Errorf("failed to count undone items: %w", err)
	}
	if count == 0 {
		return Item{}, ErrNoEligibleItems
	}

	offset := rand.Intn(count)
	row := db.conn.QueryRow(
		db.baseSelect()+" WHERE NOT done ORDER BY id LIMIT 1 OFFSET ?",
		offset,
	)

	item, err := db.scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return Item{}, ErrNoEligibleItems
	} else if err != nil {
		return Item{}, fmt.Errorf("failed to retrieve item: %w", err)
	}

	return item, nil
}
