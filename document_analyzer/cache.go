package document_analyzer

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// ExtractionEntry is the cached outcome of one document's extraction.
type ExtractionEntry struct {
	Content  string
	Metadata map[string]interface{}
}

// cacheEntry wraps an ExtractionEntry with the source file's identity so a
// stale entry can be detected on read.
type cacheEntry struct {
	Entry     ExtractionEntry
	Timestamp time.Time
	FileSize  int64
	ModTime   time.Time
}

// autoCleanup keeps the cache directory bounded between runs.
const (
	autoCleanupMaxAge   = 7 * 24 * time.Hour
	autoCleanupMaxSize  = 100 * 1024 * 1024
	autoCleanupMaxFiles = 1000
)

// ExtractionCache persists extraction results between runs as one gob file
// per document, invalidated by source file size and modification time.
type ExtractionCache struct {
	cacheDir string
	mutex    sync.RWMutex
	metrics  *cacheMetrics
}

// NewExtractionCache prepares the cache directory. An empty cacheDir
// defaults to ".docparser-cache" under the current working directory.
func NewExtractionCache(cacheDir string) (*ExtractionCache, error) {
	// Register the concrete types that appear inside metadata values
	gob.Register(map[string]interface{}{})
	gob.Register(map[string]string{})
	gob.Register(map[string]int{})
	gob.Register([]interface{}{})
	gob.Register([]string{})

	if cacheDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cacheDir = filepath.Join(cwd, ".docparser-cache")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &ExtractionCache{
		cacheDir: cacheDir,
		metrics:  newCacheMetrics(),
	}

	// Bound the directory in the background; a run never waits on cleanup
	go cache.autoCleanup()

	return cache, nil
}

// Dir returns the directory the cache lives in.
func (cache *ExtractionCache) Dir() string {
	return cache.cacheDir
}

// Get returns the cached extraction for path when the file on disk is
// unchanged since the entry was written. Stale entries are removed on sight.
func (cache *ExtractionCache) Get(path string) (ExtractionEntry, bool) {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()

	cachePath := cache.entryPath(path)
	data, err := os.ReadFile(cachePath)
	if err != nil {
		cache.metrics.recordMiss()
		return ExtractionEntry{}, false
	}

	var entry cacheEntry
	decoder := gob.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&entry); err != nil {
		os.Remove(cachePath)
		cache.metrics.recordMiss()
		return ExtractionEntry{}, false
	}

	info, err := os.Stat(path)
	if err != nil || !info.ModTime().Equal(entry.ModTime) || info.Size() != entry.FileSize {
		os.Remove(cachePath)
		cache.metrics.recordMiss()
		return ExtractionEntry{}, false
	}

	cache.metrics.recordHit()
	return entry.Entry, true
}

// Set stores the extraction outcome for path together with the file's
// current identity.
func (cache *ExtractionCache) Set(path string, extraction ExtractionEntry) error {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	entry := cacheEntry{
		Entry:     extraction,
		Timestamp: time.Now(),
		FileSize:  info.Size(),
		ModTime:   info.ModTime(),
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := os.WriteFile(cache.entryPath(path), buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Delete removes the cached entry for path, if present.
func (cache *ExtractionCache) Delete(path string) error {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	if err := os.Remove(cache.entryPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every cache file while keeping the directory.
func (cache *ExtractionCache) Clear() error {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	entries, err := os.ReadDir(cache.cacheDir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cache" {
			continue
		}
		os.Remove(filepath.Join(cache.cacheDir, entry.Name()))
	}
	return nil
}

// Stats combines storage and hit-rate figures for display.
func (cache *ExtractionCache) Stats() (map[string]interface{}, error) {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()

	entries, err := os.ReadDir(cache.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var files int
	var totalSize int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cache" {
			continue
		}
		files++
		if info, err := entry.Info(); err == nil {
			totalSize += info.Size()
		}
	}

	stats := cache.metrics.snapshot()
	stats["cache_files"] = files
	stats["total_size"] = totalSize
	stats["cache_dir"] = cache.cacheDir
	return stats, nil
}

// entryPath maps a document path to its cache file.
func (cache *ExtractionCache) entryPath(path string) string {
	return filepath.Join(cache.cacheDir, fmt.Sprintf("%x.cache", xxh3.HashString(path)))
}

// autoCleanup drops entries past the age bound, then trims oldest-first to
// the size and count bounds.
func (cache *ExtractionCache) autoCleanup() {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	entries, err := os.ReadDir(cache.cacheDir)
	if err != nil {
		return
	}

	type fileInfo struct {
		path    string
		size    int64
		modTime time.Time
	}
	var files []fileInfo
	var totalSize int64

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cache" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(cache.cacheDir, entry.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		totalSize += info.Size()
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modTime.Before(files[j].modTime) })

	cutoff := time.Now().Add(-autoCleanupMaxAge)
	remaining := files[:0]
	for _, file := range files {
		if file.modTime.Before(cutoff) {
			if os.Remove(file.path) == nil {
				totalSize -= file.size
			}
			continue
		}
		remaining = append(remaining, file)
	}

	for len(remaining) > 0 && (totalSize > autoCleanupMaxSize || len(remaining) > autoCleanupMaxFiles) {
		oldest := remaining[0]
		if os.Remove(oldest.path) == nil {
			totalSize -= oldest.size
		}
		remaining = remaining[1:]
	}
}
