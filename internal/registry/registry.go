// Package registry manages a directory of named rednext database files.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/limansky/rednext/internal/database"
	"github.com/limansky/rednext/internal/schema"
)

const fileExtension = ".db"

var (
	// ErrDatabaseExists is returned when creating a database whose file
	// already exists
	ErrDatabaseExists = fmt.Errorf("database already exists")

	// ErrDatabaseNotFound is returned when the named database file is
	// absent
	ErrDatabaseNotFound = fmt.Errorf("database not found")

	// ErrInvalidName is returned for database names that cannot form a
	// file name
	ErrInvalidName = fmt.Errorf("invalid database name")
)

// Registry maps database names onto <name>.db files inside one directory.
type Registry struct {
	dir string
}

// New returns a Registry over the given directory. The directory is
// created lazily on the first Create.
func New(dir string) *Registry {
	return &Registry{dir: dir}
}

// List returns the names of all databases in the directory, sorted. A
// missing directory yields an empty list.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read database directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExtension))
	}
	sort.Strings(names)

	return names, nil
}

// Create makes a new database file with the given schema and returns the
// open handle.
func (r *Registry) Create(name string, s schema.Schema) (*database.DB, error) {
	path, err := r.path(name)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseExists, name)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return database.Create(path, s)
}

// Open opens an existing database by name.
func (r *Registry) Open(name string) (*database.DB, error) {
	path, err := r.path(name)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, name)
	}

	return database.Open(path)
}

// Remove deletes a database file by name.
func (r *Registry) Remove(name string) error {
	path, err := r.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrDatabaseNotFound, name)
	} else if err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	// SQLite leaves WAL companions behind; they are useless without the
	// main file.
	os.Remove(path + "-wal")
	os.Remove(path + "-shm")

	return nil
}

func (r *Registry) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(r.dir, name+fileExtension), nil
}
