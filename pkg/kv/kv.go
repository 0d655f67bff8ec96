// Package kv provides the string-keyed persistent storage the practice store
// is written to. Each key holds one JSON document.
package kv

import (
	"errors"
	"fmt"
)

// Storage is a synchronous string-keyed key-value store.
type Storage interface {
	// Read returns the stored value and whether the key exists.
	Read(key string) (string, bool, error)
	// Write replaces the value stored under key.
	Write(key, value string) error
	Close() error
}

// ErrUnknownDriver is returned by Open for unsupported driver names.
var ErrUnknownDriver = errors.New("kv: unknown driver")

// StorageError reports a failed read or write of one key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("kv: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func readErr(key string, err error) error {
	return &StorageError{Op: "read", Key: key, Err: err}
}

func writeErr(key string, err error) error {
	return &StorageError{Op: "write", Key: key, Err: err}
}

// Open builds the Storage selected by cfg. A nil cfg loads the configuration
// from viper.
func Open(cfg Config) (Storage, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Driver() {
	case "", DriverDiskv:
		return NewDiskv(cfg.BasePath())
	case DriverSQLite:
		return NewSQLite(cfg.BasePath())
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Driver())
	}
}
