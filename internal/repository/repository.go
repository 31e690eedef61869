// Package repository exposes narrow per-entity views over a storage.Store.
// The store only offers whole-collection load and save, so every mutation
// reads the latest collection, changes it and writes it back. Each repository
// serializes its own read-modify-write cycles; the store has no transactions.
package repository

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("record not found")

var nowFunc = func() time.Time { return time.Now().UTC() }
