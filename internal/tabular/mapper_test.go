package tabular_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limansky/rednext/internal/database"
	"github.com/limansky/rednext/internal/schema"
	"github.com/limansky/rednext/internal/tabular"
)

func setupStore(t *testing.T) *database.DB {
	t.Helper()

	s, err := schema.New([]schema.Field{
		{Name: "title", Kind: schema.Text, Required: true},
		{Name: "priority", Kind: schema.Integer},
		{Name: "urgent", Kind: schema.Boolean},
	})
	require.NoError(t, err)

	db, err := database.Create(filepath.Join(t.TempDir(), "test.db"), s)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestImportRows(t *testing.T) {
	t.Run("MapsByNameNotPosition", func(t *testing.T) {
		db := setupStore(t)
		mapper := tabular.NewMapper(db)

		// Columns deliberately out of schema order.
		results := mapper.ImportRows([]tabular.Row{
			{{Name: "priority", Value: "2"}, {Name: "title", Value: "reordered"}},
		})
		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)

		item, err := db.GetItem(results[0].Item.ID)
		require.NoError(t, err)
		assert.Equal(t, schema.TextValue("reordered"), item.Values["title"])
		assert.Equal(t, schema.IntValue(2), item.Values["priority"])
		assert.True(t, item.Values["urgent"].Null)
	})

	t.Run("RowFailuresAreIsolated", func(t *testing.T) {
		db := setupStore(t)
		mapper := tabular.NewMapper(db)

		results := mapper.ImportRows([]tabular.Row{
			{{Name: "title", Value: "good"}, {Name: "priority", Value: "1"}},
			{{Name: "title", Value: "bad"}, {Name: "priority", Value: "not-a-number"}},
			{{Name: "title", Value: "also good"}},
		})
		require.Len(t, results, 3)

		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.NoError(t, results[2].Err)

		// The failure is attributed to its row and field.
		assert.Equal(t, 2, results[1].Row)
		assert.Contains(t, results[1].Err.Error(), "priority")

		report := tabular.Summarize(results)
		assert.Equal(t, 2, report.Imported)
		require.Len(t, report.Failed, 1)
		assert.Contains(t, report.String(), "2 imported, 1 failed")
		assert.Contains(t, report.String(), "row 2")

		// The bad row left nothing behind.
		items, err := db.ListItems()
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("MissingRequiredField", func(t *testing.T) {
		db := setupStore(t)
		mapper := tabular.NewMapper(db)

		results := mapper.ImportRows([]tabular.Row{
			{{Name: "priority", Value: "3"}},
		})
		require.Len(t, results, 1)
		require.Error(t, results[0].Err)
		assert.Contains(t, results[0].Err.Error(), "title")
	})

	t.Run("UnknownField", func(t *testing.T) {
		db := setupStore(t)
		mapper := tabular.NewMapper(db)

		results := mapper.ImportRows([]tabular.Row{
			{{Name: "title", Value: "x"}, {Name: "color", Value: "red"}},
		})
		require.Len(t, results, 1)
		require.Error(t, results[0].Err)
		assert.Contains(t, results[0].Err.Error(), "color")
	})
}

func TestExportRows(t *testing.T) {
	db := setupStore(t)
	mapper := tabular.NewMapper(db)

	_, err := db.AddItem(schema.Values{
		"title":    schema.TextValue("one"),
		"priority": schema.IntValue(1),
		"urgent":   schema.BoolValue(true),
	})
	require.NoError(t, err)
	_, err = db.AddItem(schema.Values{"title": schema.TextValue("two")})
	require.NoError(t, err)

	rows, err := mapper.ExportRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, tabular.Row{
		{Name: "title", Value: "one"},
		{Name: "priority", Value: "1"},
		{Name: "urgent", Value: "true"},
	}, rows[0])
	assert.Equal(t, tabular.Row{
		{Name: "title", Value: "two"},
		{Name: "priority", Value: ""},
		{Name: "urgent", Value: ""},
	}, rows[1])
}

// Exporting and importing into a fresh store with the same schema
// reproduces the item set, ids aside.
func TestRoundTrip(t *testing.T) {
	src := setupStore(t)

	seed := []schema.Values{
		{
			"title":    schema.TextValue("alpha"),
			"priority": schema.IntValue(10),
			"urgent":   schema.BoolValue(false),
		},
		{"title": schema.TextValue("beta")},
	}
	for _, values := range seed {
		_, err := src.AddItem(values)
		require.NoError(t, err)
	}

	rows, err := tabular.NewMapper(src).ExportRows()
	require.NoError(t, err)

	dst := setupStore(t)
	results := tabular.NewMapper(dst).ImportRows(rows)
	for _, res := range results {
		require.NoError(t, res.Err)
	}

	items, err := dst.ListItems()
	require.NoError(t, err)
	require.Len(t, items, len(seed))
	for i, values := range seed {
		assert.Equal(t, src.Schema().Complete(values), items[i].Values)
	}
}
