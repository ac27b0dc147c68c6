// Package storage owns the on-disk layout of the agent: two JSON
// snapshot files, an append-only JSONL journal, the axioms text, and a
// directory-scoped file lock serializing the reload-mutate-persist
// sequence across processes.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/jeanpaul/axon/internal/memory"
)

const (
	configDirName   = "config"
	memoryDirName   = "memory"
	axiomsFileName  = "axiomes.md"
	factsFileName   = "facts.json"
	prefsFileName   = "preferences.json"
	logsFileName    = "logs.jsonl"
	lockFileName    = "axon.lock"
	lockRetryDelay  = 50 * time.Millisecond
	storageFileMode = 0o644
	storageDirMode  = 0o755
)

// Store locates and manages every file under one storage root.
type Store struct {
	root   string
	flk    *flock.Flock
	logger *zap.Logger
}

// New builds a store rooted at dir. Nothing is touched until Ensure.
func New(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		root:   dir,
		flk:    flock.New(filepath.Join(dir, lockFileName)),
		logger: logger,
	}
}

func (s *Store) Root() string             { return s.root }
func (s *Store) FactsPath() string        { return filepath.Join(s.root, memoryDirName, factsFileName) }
func (s *Store) PreferencesPath() string  { return filepath.Join(s.root, memoryDirName, prefsFileName) }
func (s *Store) LogsPath() string         { return filepath.Join(s.root, memoryDirName, logsFileName) }
func (s *Store) AxiomsPath() string       { return filepath.Join(s.root, configDirName, axiomsFileName) }
func (s *Store) LockPath() string         { return filepath.Join(s.root, lockFileName) }

// Ensure creates the directory layout and seeds missing files: an empty
// fact collection, an empty preference map, an empty journal, and an
// empty axioms file. Existing files are left alone.
func (s *Store) Ensure() error {
	for _, dir := range []string{
		s.root,
		filepath.Join(s.root, configDirName),
		filepath.Join(s.root, memoryDirName),
	} {
		if err := os.MkdirAll(dir, storageDirMode); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}

	seeded := 0
	empty := memory.New()
	for _, seed := range []struct {
		path string
		data func() ([]byte, error)
	}{
		{s.FactsPath(), func() ([]byte, error) { return marshalPretty(empty.Facts) }},
		{s.PreferencesPath(), func() ([]byte, error) { return marshalPretty(empty.Preferences) }},
		{s.LogsPath(), func() ([]byte, error) { return nil, nil }},
		{s.AxiomsPath(), func() ([]byte, error) { return nil, nil }},
	} {
		created, err := seedFile(seed.path, seed.data)
		if err != nil {
			return err
		}
		if created {
			seeded++
		}
	}
	if seeded > 0 {
		s.logger.Debug("seeded storage files",
			zap.String("root", s.root),
			zap.Int("created", seeded))
	}
	return nil
}

// Lock acquires the storage lock, blocking until it is held or ctx is
// done. Callers must pair it with Unlock.
func (s *Store) Lock(ctx context.Context) error {
	held, err := s.flk.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire storage lock: %w", err)
	}
	if !held {
		return errors.New("acquire storage lock: not held")
	}
	return nil
}

// Unlock releases the storage lock.
func (s *Store) Unlock() error {
	return s.flk.Unlock()
}

// LoadMemory reads both snapshot files into a fresh aggregate. A missing
// or malformed file is a fatal error; nothing is recovered silently.
func (s *Store) LoadMemory() (*memory.Memory, error) {
	mem := memory.New()
	if err := readJSON(s.FactsPath(), &mem.Facts); err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}
	if err := readJSON(s.PreferencesPath(), &mem.Preferences); err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return mem, nil
}

// SaveMemory rewrites both snapshot files from the aggregate. The write
// is whole-file, pretty-printed, with a trailing newline.
func (s *Store) SaveMemory(mem *memory.Memory) error {
	if err := writeJSON(s.FactsPath(), mem.Facts); err != nil {
		return fmt.Errorf("save facts: %w", err)
	}
	if err := writeJSON(s.PreferencesPath(), mem.Preferences); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// LoadAxioms returns the axioms file verbatim; a missing file reads as
// empty.
func (s *Store) LoadAxioms() (string, error) {
	data, err := os.ReadFile(s.AxiomsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("load axioms: %w", err)
	}
	return string(data), nil
}

func seedFile(path string, data func() ([]byte, error)) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := data()
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, content, storageFileMode); err != nil {
		return false, fmt.Errorf("seed %s: %w", path, err)
	}
	return true, nil
}

func marshalPretty(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	data, err := marshalPretty(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, storageFileMode)
}
