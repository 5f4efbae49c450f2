package popup

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// DismissalKey is the local storage key holding the last dismissal time.
const DismissalKey = "popup_dismissed_at"

// recordLayout matches the browser's Date.toISOString output.
const recordLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrInvalidRecord is returned when the stored dismissal time cannot be parsed.
var ErrInvalidRecord = errors.New("invalid dismissal record")

// Store is the client-local key/value storage the dismissal record lives in.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// DiskStore keeps values as flat files under a directory.
type DiskStore struct {
	d *diskv.Diskv
}

// NewDiskStore opens (creating lazily) a store rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 64 * 1024,
	})}
}

func (s *DiskStore) Get(key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	b, err := s.d.Read(key)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (s *DiskStore) Set(key, value string) error {
	return s.d.Write(key, []byte(value))
}

func (s *DiskStore) Remove(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

// LastDismissed reads the dismissal record. A missing record returns nil.
func LastDismissed(s Store) (*time.Time, error) {
	raw, ok, err := s.Get(DismissalKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecord, raw)
	}
	return &t, nil
}

// RecordDismissal overwrites the dismissal record with at.
func RecordDismissal(s Store, at time.Time) error {
	return s.Set(DismissalKey, FormatRecord(at))
}

// FormatRecord renders t as a UTC ISO-8601 timestamp with millisecond precision.
func FormatRecord(t time.Time) string {
	return t.UTC().Format(recordLayout)
}
