// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package prefs

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/tmorland/pitchside/internal/logging"
)

// Badger is the persistent Repository backed by a Badger database.
// Preferences are tiny, so the store runs with value log GC disabled and
// default options apart from the quiet logger.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the preference database in dir.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	logging.Info().Str("dir", dir).Msg("Preference store open")
	return &Badger{db: db}, nil
}

// Get returns the stored value, or ok=false when absent.
func (b *Badger) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the value.
func (b *Badger) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}

// Close releases the database.
func (b *Badger) Close() error {
	return b.db.Close()
}
