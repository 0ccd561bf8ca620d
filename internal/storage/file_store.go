package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type fileEntry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore keeps every entry in one JSON document, rewritten atomically on
// each change.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]fileEntry
	closed  bool
	now     func() time.Time
}

func OpenFile(path string) (*FileStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("storage: empty file path")
	}
	entries := make(map[string]fileEntry)
	raw, err := os.ReadFile(trimmed)
	switch {
	case err == nil:
		if strings.TrimSpace(string(raw)) != "" {
			if err := json.Unmarshal(raw, &entries); err != nil {
				return nil, fmt.Errorf("decode %s: %w", trimmed, err)
			}
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read %s: %w", trimmed, err)
	}
	return &FileStore{path: trimmed, entries: entries, now: time.Now}, nil
}

func (f *FileStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", ErrClosed
	}
	e, ok := f.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return e.Value, nil
}

func (f *FileStore) Set(ctx context.Context, key, value string) error {
	return f.SetMany(ctx, map[string]string{key: value})
}

func (f *FileStore) SetMany(_ context.Context, entries map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	next := maps.Clone(f.entries)
	stamp := f.now().UTC()
	for k, v := range entries {
		next[k] = fileEntry{Value: v, UpdatedAt: stamp}
	}
	if err := f.write(next); err != nil {
		return err
	}
	f.entries = next
	return nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if _, ok := f.entries[key]; !ok {
		return ErrNotFound
	}
	next := maps.Clone(f.entries)
	delete(next, key)
	if err := f.write(next); err != nil {
		return err
	}
	f.entries = next
	return nil
}

func (f *FileStore) List(_ context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	out := make([]Entry, 0, len(f.entries))
	for k, e := range f.entries {
		out = append(out, Entry{Key: k, Value: e.Value, UpdatedAt: e.UpdatedAt})
	}
	sortEntries(out)
	return out, nil
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FileStore) write(entries map[string]fileEntry) error {
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
