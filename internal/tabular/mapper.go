// Package tabular converts between external tabular rows and validated
// item records. Rows arrive already tokenized; reading and writing the
// actual CSV text is the caller's concern.
package tabular

import (
	"fmt"

	"github.com/limansky/rednext/internal/database"
	"github.com/limansky/rednext/internal/schema"
)

// RowField is one named cell of a tabular row.
type RowField struct {
	Name  string
	Value string
}

// Row is an ordered sequence of named cells.
type Row []RowField

// ItemStore is the subset of the database operations the mapper needs.
type ItemStore interface {
	Schema() schema.Schema
	AddItem(values schema.Values) (database.Item, error)
	ForEachItem(fn func(database.Item) error) error
}

// Mapper imports and exports item records for one store, applying the
// bound schema on the way in and its field order on the way out.
type Mapper struct {
	store ItemStore
}

func NewMapper(store ItemStore) *Mapper {
	return &Mapper{store: store}
}

// RowResult is the outcome of importing a single row. Row numbers are
// 1-based over the input sequence.
type RowResult struct {
	Row  int
	Item database.Item
	Err  error
}

// ImportRows maps each row onto the schema by field name, coerces the
// textual values and adds the resulting item. Rows fail independently: a
// malformed row yields a failed RowResult and the batch continues.
func (m *Mapper) ImportRows(rows []Row) []RowResult {
	results := make([]RowResult, 0, len(rows))
	for i, row := range rows {
		item, err := m.importRow(row)
		results = append(results, RowResult{Row: i + 1, Item: item, Err: err})
	}
	return results
}

func (m *Mapper) importRow(row Row) (database.Item, error) {
	s := m.store.Schema()

	values := make(schema.Values, len(row))
	for _, cell := range row {
		if _, dup := values[cell.Name]; dup {
			return database.Item{}, fmt.Errorf("duplicate field %q", cell.Name)
		}

		field, ok := s.Field(cell.Name)
		if !ok {
			// Leave unknown fields to schema validation so they are all
			// reported together.
			values[cell.Name] = schema.TextValue(cell.Value)
			continue
		}

		v, err := schema.Coerce(cell.Value, field.Kind)
		if err != nil {
			return database.Item{}, fmt.Errorf("field %q: %w", cell.Name, err)
		}
		values[cell.Name] = v
	}

	return m.store.AddItem(values)
}

// ExportRows projects every item into a row of formatted text values in
// canonical schema field order, items in id order. It does not mutate the
// store.
func (m *Mapper) ExportRows() ([]Row, error) {
	s := m.store.Schema()

	var rows []Row
	err := m.store.ForEachItem(func(item database.Item) error {
		row := make(Row, len(s.Fields))
		for i, f := range s.Fields {
			row[i] = RowField{Name: f.Name, Value: item.Values[f.Name].Format()}
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export items: %w", err)
	}

	return rows, nil
}
