package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// KV is a whole-value key-value backend: one get and one put, no partial
// updates. The store keeps the entire document under a single key.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// fileKV keeps each key as a JSON blob file inside a directory.
type fileKV struct {
	dir string
}

// NewFileKV returns a KV backed by files under dir. The directory is
// created on first write.
func NewFileKV(dir string) KV {
	return &fileKV{dir: dir}
}

func (s *fileKV) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileKV) Get(key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %q: %w", s.path(key), err)
	}
	return b, true, nil
}

func (s *fileKV) Put(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("create data dir %q: %w", s.dir, err)
	}
	if err := os.WriteFile(s.path(key), value, filePerm); err != nil {
		return fmt.Errorf("write %q: %w", s.path(key), err)
	}
	return nil
}

// memKV is a map-backed KV for tests and ephemeral sessions.
type memKV struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemKV returns an in-memory KV.
func NewMemKV() KV {
	return &memKV{m: make(map[string][]byte)}
}

func (s *memKV) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *memKV) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.m[key] = v
	return nil
}
