package featureflags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/geocoder89/mocktail/internal/cache"
	"github.com/goccy/go-yaml"
)

const cacheKey = "flags"

// Flags maps a flag name to its state. Missing names read as off.
type Flags map[string]bool

func Defaults() Flags {
	return Flags{
		"instagram_feed":  true,
		"storefront_cart": true,
	}
}

type file struct {
	Flags Flags `yaml:"flags"`
}

// Store reads the flag file lazily and keeps the parsed result in c.
type Store struct {
	path string
	c    *cache.Cache[Flags]
	mu   sync.Mutex
}

func New(path string, c *cache.Cache[Flags]) *Store {
	if c == nil {
		c = cache.New[Flags](0)
	}

	return &Store{path: path, c: c}
}

func (s *Store) Flags() (Flags, error) {
	if f, ok := s.c.Get(cacheKey); ok {
		return f, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another caller may have loaded while we waited
	if f, ok := s.c.Get(cacheKey); ok {
		return f, nil
	}

	f, err := load(s.path)
	if err != nil {
		return nil, err
	}

	s.c.Set(cacheKey, f)

	return f, nil
}

// Enabled reports whether name is on. Load errors read as off.
func (s *Store) Enabled(name string) bool {
	f, err := s.Flags()
	if err != nil {
		return false
	}

	return f[name]
}

// Clear drops the cached flags so the next read reloads the file.
func (s *Store) Clear() {
	s.c.Delete(cacheKey)
}

func load(path string) (Flags, error) {
	out := Defaults()

	if path == "" {
		return out, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feature flags: %w", err)
	}

	var doc file
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse feature flags %s: %w", path, err)
	}

	for name, on := range doc.Flags {
		out[name] = on
	}

	return out, nil
}
