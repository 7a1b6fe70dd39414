// Package assets resolves, caches and decodes model files.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"
)

// ErrNotFound is returned when a path cannot be resolved in any search dir.
var ErrNotFound = errors.New("asset not found")

// Manager resolves asset paths against a list of search directories
// and caches file contents.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager searching dirs in order.
func NewManager(dirs ...string) *Manager {
	return &Manager{
		dirs:  append([]string(nil), dirs...),
		cache: NewCache(),
	}
}

// AddSearchDir appends a directory to the search list.
func (m *Manager) AddSearchDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Resolve returns the first existing file for path. Absolute paths are
// checked as is; relative ones are tried against every search dir.
func (m *Manager) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if isFile(path) {
			return path, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, dir := range m.dirs {
		candidate := filepath.Join(dir, path)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	if len(m.dirs) == 0 && isFile(path) {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Load returns the contents of path, reading it at most once.
func (m *Manager) Load(path string) ([]byte, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}
	if data, ok := m.cache.Get(resolved); ok {
		return data, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}
	m.cache.Set(resolved, data)
	return data, nil
}

// Preview returns up to n leading bytes of path as text, for diagnostics
// when a file fails to decode. Binary bytes are replaced.
func (m *Manager) Preview(path string, n int) (string, error) {
	data, err := m.Load(path)
	if err != nil {
		return "", err
	}
	if len(data) > n {
		data = data[:n]
	}
	return printable(data), nil
}

// Close drops all cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Stats returns cache hit/miss counters.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() || info.Mode()&fs.ModeSymlink != 0
}

func printable(data []byte) string {
	out := make([]rune, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		switch {
		case r == utf8.RuneError:
			out = append(out, '.')
		case r == '\n' || r == '\t':
			out = append(out, r)
		case r < 0x20 || r == 0x7f:
			out = append(out, '.')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// Cache is an in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
