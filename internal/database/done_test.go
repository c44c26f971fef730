package database_test

import (
	"errors"
	"testing"

	"github.com/limansky/rednext/internal/database"
	"github.com/limansky/rednext/internal/schema"
)

func TestMarkDone(t *testing.T) {
	db := setupTest(t)

	item, err := db.AddItem(schema.Values{"title": schema.TextValue("task")})
	if err != nil {
		t.Fatalf("Failed to add item: %v", err)
	}

	t.Run("TransitionsToDone", func(t *testing.T) {
		if err := db.MarkDone(item.ID); err != nil {
			t.Fatalf("Failed to mark item done: %v", err)
		}

		got, err := db.GetItem(item.ID)
		if err != nil {
			t.Fatalf("Failed to get item: %v", err)
		}
		if !got.Done {
			t.Error("Expected item to be done")
		}
		if got.DoneAt == nil {
			t.Error("Expected a completion timestamp")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		first, err := db.GetItem(item.ID)
		if err != nil {
			t.Fatalf("Failed to get item: %v", err)
		}

		if err := db.MarkDone(item.ID); err != nil {
			t.Fatalf("Second MarkDone must not fail: %v", err)
		}

		got, err := db.GetItem(item.ID)
		if err != nil {
			t.Fatalf("Failed to get item: %v", err)
		}
		if !got.Done {
			t.Error("Expected item to stay done")
		}
		// A no-op transition keeps the original timestamp.
		if got.DoneAt == nil || !got.DoneAt.Equal(*first.DoneAt) {
			t.Errorf("Completion timestamp changed: got %v, want %v", got.DoneAt, first.DoneAt)
		}
	})

	t.Run("UndoneClearsTimestamp", func(t *testing.T) {
		if err := db.MarkUndone(item.ID); err != nil {
			t.Fatalf("Failed to mark item undone: %v", err)
		}

		got, err := db.GetItem(item.ID)
		if err != nil {
			t.Fatalf("Failed to get item: %v", err)
		}
		if got.Done {
			t.Error("Expected item to be undone")
		}
		if got.DoneAt != nil {
			t.Errorf("Expected no completion timestamp, got %v", got.DoneAt)
		}

		if err := db.MarkUndone(item.ID); err != nil {
			t.Fatalf("Second MarkUndone must not fail: %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if err := db.MarkDone(9999); !errors.Is(err, database.ErrItemNotFound) {
			t.Errorf("Expected ErrItemNotFound, got %v", err)
		}
		if err := db.MarkUndone(9999); !errors.Is(err, database.ErrItemNotFound) {
			t.Errorf("Expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestListByCompletion(t *testing.T) {
	db := setupTest(t)

	var ids []int64
	for _, title := range []string{"a", "b", "c"} {
		item, err := db.AddItem(schema.Values{"title": schema.TextValue(title)})
		if err != nil {
			t.Fatalf("Failed to add item: %v", err)
		}
		ids = append(ids, item.ID)
	}

	if err := db.MarkDone(ids[1]); err != nil {
		t.Fatalf("Failed to mark item done: %v", err)
	}

	done, err := db.ListDone()
	if err != nil {
		t.Fatalf("Failed to list done items: %v", err)
	}
	if len(done) != 1 || done[0].ID != ids[1] {
		t.Errorf("Wrong done items: %+v", done)
	}

	undone, err := db.ListUndone()
	if err != nil {
		t.Fatalf("Failed to list undone items: %v", err)
	}
	if len(undone) != 2 {
		t.Errorf("Wrong number of undone items: got %d, want 2", len(undone))
	}
}
