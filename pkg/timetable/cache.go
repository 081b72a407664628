package timetable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"sevsuctl/pkg/schedule"
)

// Cache stores normalized weeks. It never stores sessions.
type Cache interface {
	Get(key string) (schedule.Week, bool)
	Set(key string, w schedule.Week)
}

// MemoryCache keeps weeks in process memory, used by the HTTP server.
type MemoryCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryCache creates a cache whose entries expire after ttl.
// A ttl of zero or less disables caching.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		return &MemoryCache{}
	}
	return &MemoryCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (m *MemoryCache) Get(key string) (schedule.Week, bool) {
	if m.cache == nil {
		return schedule.Week{}, false
	}
	v, ok := m.cache.Get(key)
	if !ok {
		return schedule.Week{}, false
	}
	w, ok := v.(schedule.Week)
	return w, ok
}

func (m *MemoryCache) Set(key string, w schedule.Week) {
	if m.cache == nil {
		return
	}
	m.cache.Set(key, w, m.ttl)
}

// Flush drops every cached week.
func (m *MemoryCache) Flush() {
	if m.cache == nil {
		return
	}
	m.cache.Flush()
}

// DiskCache keeps weeks as JSON files under ~/.sevsuctl_cache, used by the CLI.
type DiskCache struct {
	ttl time.Duration
}

// NewDiskCache creates a disk cache whose entries expire after ttl.
// A ttl of zero or less disables caching.
func NewDiskCache(ttl time.Duration) *DiskCache {
	return &DiskCache{ttl: ttl}
}

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Week      schedule.Week `json:"week"`
}

func getCachePath(key string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".sevsuctl_cache")
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	return filepath.Join(cacheDir, filepath.Base(key)+".json"), nil
}

// Get checks if a valid, unexpired cache file exists for key
func (d *DiskCache) Get(key string) (schedule.Week, bool) {
	if d.ttl <= 0 {
		return schedule.Week{}, false
	}
	path, err := getCachePath(key)
	if err != nil {
		return schedule.Week{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.Week{}, false // File doesn't exist or can't be read
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return schedule.Week{}, false
	}

	if time.Since(entry.Timestamp) > d.ttl {
		return schedule.Week{}, false // Expired
	}

	return entry.Week, true
}

// Set saves the week to disk. Failures only cost a refetch and are ignored.
func (d *DiskCache) Set(key string, w schedule.Week) {
	if d.ttl <= 0 {
		return
	}
	path, err := getCachePath(key)
	if err != nil {
		return
	}

	entry := CacheEntry{
		Timestamp: time.Now(),
		Week:      w,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0600)
}
