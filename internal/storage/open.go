// Package storage provides the durable key-value stores the to-do list is
// saved to.
package storage

import (
	"fmt"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// KV is what every backend offers: load/save by key plus Close.
type KV interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
	Close() error
}

// Open returns the backend named by backend. path is the database file for
// sqlite and the data directory for file; memory ignores it.
func Open(backend, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite, "":
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
