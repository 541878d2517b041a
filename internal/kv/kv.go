// Package kv provides the persistent key-value slot the roster is mirrored to.
// Every backend stores opaque text under a string key.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when a backend is used before construction.
var ErrNotConfigured = errors.New("kv store not configured")

// Store is a synchronous key-value slot. Get reports found=false for a
// missing key; errors are reserved for backend failures.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
