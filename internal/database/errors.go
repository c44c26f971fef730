package database

import "fmt"

var (
	// ErrItemNotFound is returned when a requested item doesn't exist
	ErrItemNotFound = fmt.Errorf("item not found")

	// ErrNoEligibleItems is returned by PickRandom when no undone items exist
	ErrNoEligibleItems = fmt.Errorf("no undone items to pick from")

	// ErrAlreadyInitialized is returned when creating a database that
	// already carries a schema - the schema is write-once
	ErrAlreadyInitialized = fmt.Errorf("database already initialized")

	// ErrSchemaNotFound is returned when opening a database without a
	// persisted schema
	ErrSchemaNotFound = fmt.Errorf("no schema found in database")

	// ErrCorruptSchema is returned when the persisted schema cannot be
	// parsed back into a field definition
	ErrCorruptSchema = fmt.Errorf("corrupt schema in database")
)
