package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/limansky/rednext/internal/schema"
)

// ForEachItem streams all items in id order. Every call runs a fresh
// query, so the sequence is restartable.
func (db *DB) ForEachItem(fn func(Item) error) error {
	return db.forEachItem("", "id", fn)
}

// ListItems retrieves all items in id order.
func (db *DB) ListItems() ([]Item, error) {
	return db.selectItems("", "id")
}

// ListDone retrieves completed items ordered by completion time.
func (db *DB) ListDone() ([]Item, error) {
	return db.selectItems("done", "done_at")
}

// ListUndone retrieves incomplete items in id order.
func (db *DB) ListUndone() ([]Item, error) {
	return db.selectItems("NOT done", "id")
}

// FindItems retrieves items whose text fields contain the given substring.
func (db *DB) FindItems(text string) ([]Item, error) {
	var likes []string
	for _, f := range db.schema.Fields {
		if f.Kind == schema.Text {
			likes = append(likes, quoteName(f.Name)+" LIKE ?")
		}
	}
	if len(likes) == 0 {
		return nil, nil
	}

	pattern := "%" + text + "%"
	args := make([]any, len(likes))
	for i := range args {
		args[i] = pattern
	}

	return db.selectItems(strings.Join(likes, " OR "), "id", args...)
}

// baseSelect builds the projection covering id, every declared field in
// schema order, and the completion columns.
func (db *DB) baseSelect() string {
	cols := make([]string, 0, len(db.schema.Fields)+3)
	cols = append(cols, "id")
	for _, f := range db.schema.Fields {
		cols = append(cols, quoteName(f.Name))
	}
	cols = append(cols, "done", "done_at")
	return "SELECT " + strings.Join(cols, ", ") + " FROM items"
}

func (db *DB) selectItems(filter, order string, args ...any) ([]Item, error) {
	var items []Item
	err := db.forEachItem(filter, order, func(item Item) error {
		items = append(items, item)
		return nil
	}, args...)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (db *DB) forEachItem(filter, order string, fn func(Item) error, args ...any) error {
	query := db.baseSelect()
	if filter != "" {
		query += " WHERE " + filter
	}
	query += " ORDER BY " + order

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := db.scanItem(rows.Scan)
		if err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		if err := fn(item); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating items: %w", err)
	}

	return nil
}

// scanItem reads one row of the baseSelect projection into an Item. The
// scan destinations are generated from the bound schema.
func (db *DB) scanItem(scan func(...any) error) (Item, error) {
	var (
		id     int64
		done   bool
		doneAt sql.NullTime
	)

	holders := make([]any, len(db.schema.Fields))
	dest := make([]any, 0, len(db.schema.Fields)+3)
	dest = append(dest, &id)
	for i, f := range db.schema.Fields {
		switch f.Kind {
		case schema.Integer:
			holders[i] = new(sql.NullInt64)
		case schema.Real:
			holders[i] = new(sql.NullFloat64)
		case schema.Boolean:
			holders[i] = new(sql.NullBool)
		default:
			holders[i] = new(sql.NullString)
		}
		dest = append(dest, holders[i])
	}
	dest = append(dest, &done, &doneAt)

	if err := scan(dest...); err != nil {
		return Item{}, err
	}

	values := make(schema.Values, len(db.schema.Fields))
	for i, f := range db.schema.Fields {
		values[f.Name] = holderValue(holders[i], f.Kind)
	}

	item := Item{ID: id, Values: values, Done: done}
	if doneAt.Valid {
		t := doneAt.Time
		item.DoneAt = &t
	}

	return item, nil
}

func holderValue(holder any, kind schema.Kind) schema.Value {
	switch h := holder.(type) {
	case *sql.NullInt64:
		if h.Valid {
			return schema.IntValue(h.Int64)
		}
	case *sql.NullFloat64:
		if h.Valid {
			return schema.RealValue(h.Float64)
		}
	case *sql.NullBool:
		if h.Valid {
			return schema.BoolValue(h.Bool)
		}
	case *sql.NullString:
		if h.Valid {
			return schema.TextValue(h.String)
		}
	}
	return schema.NullValue(kind)
}
