package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"muserc/internal/domain"
	xlog "muserc/internal/log"
)

// Store is the live settings record bound to its backing file. Every
// successful mutation persists immediately.
type Store struct {
	mu     sync.RWMutex
	path   string
	values Values
	logger zerolog.Logger
}

// Open loads the settings file at path, or the platform default location when
// path is empty. A missing file is not an error: the store starts from
// defaults and the file is created on first write.
func Open(path string) (*Store, error) {
	if path == "" {
		resolved, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve settings path: %w", err)
		}
		path = resolved
	}

	store := &Store{
		path:   path,
		values: NewValues(),
		logger: xlog.WithComponent("settings"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	values, skipped, err := decodeXML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, entry := range skipped {
		store.logger.Warn().Str("entry", entry).Msg("ignoring unrecognized settings entry")
	}
	store.values = values
	return store, nil
}

// Path returns the backing file location.
func (store *Store) Path() string {
	return store.path
}

// Exists reports whether the backing file is present on disk.
func (store *Store) Exists() bool {
	_, err := os.Stat(store.path)
	return err == nil
}

func (store *Store) Get(key domain.Key) (string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.values.Get(key)
}

// Set assigns key and persists the record. On write failure the in-memory
// value is rolled back.
func (store *Store) Set(key domain.Key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	previous := store.values.Clone()
	if err := store.values.Set(key, value); err != nil {
		return err
	}
	if err := store.save(); err != nil {
		store.values = previous
		return err
	}
	store.logger.Debug().Str("key", string(key)).Msg("preference set")
	return nil
}

// Unset reverts key to its default and persists the record.
func (store *Store) Unset(key domain.Key) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	previous := store.values.Clone()
	if err := store.values.Unset(key); err != nil {
		return err
	}
	if err := store.save(); err != nil {
		store.values = previous
		return err
	}
	return nil
}

// Snapshot returns a copy of the current record.
func (store *Store) Snapshot() Values {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.values.Clone()
}

// Reset discards all explicit values and rewrites the file with defaults.
func (store *Store) Reset() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	previous := store.values.Clone()
	store.values = NewValues()
	if err := store.save(); err != nil {
		store.values = previous
		return err
	}
	return nil
}

// Delete removes the backing file and resets the in-memory record to
// defaults. Deleting an absent file succeeds.
func (store *Store) Delete() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete settings file: %w", err)
	}
	store.values = NewValues()
	store.logger.Info().Str("path", store.path).Msg("settings file deleted")
	return nil
}

// Reload re-reads the backing file, replacing the in-memory record. A
// missing file resets to defaults.
func (store *Store) Reload() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			store.values = NewValues()
			return nil
		}
		return fmt.Errorf("read settings file: %w", err)
	}
	values, skipped, err := decodeXML(data)
	if err != nil {
		return fmt.Errorf("%s: %w", store.path, err)
	}
	for _, entry := range skipped {
		store.logger.Warn().Str("entry", entry).Msg("ignoring unrecognized settings entry")
	}
	store.values = values
	return nil
}

// ScratchDir resolves the temporary-output directory for the current record.
func (store *Store) ScratchDir() string {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return scratchDir(store.values)
}

// save writes the record atomically: renameio handles temp file creation,
// fsync and rename, so a crashed write never leaves a truncated file behind.
func (store *Store) save() error {
	data, err := encodeXML(store.values)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(store.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}

	pending, err := renameio.NewPendingFile(store.path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending settings file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			store.logger.Debug().Err(err).Msg("cleanup pending settings file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write settings data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
