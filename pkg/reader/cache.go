package reader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ccdash/ccdash/pkg/discovery"
	"github.com/ccdash/ccdash/pkg/parser"
)

var (
	bucketFiles = []byte("parsed_files") // Path -> cachedFile
)

// cachedFile is the stored value. Size and ModTime identify the exact
// file state the snapshot was parsed from; a mismatch on either
// invalidates the entry.
type cachedFile struct {
	Size    int64               `json:"size"`
	ModTime int64               `json:"mod_time"`
	Skipped int                 `json:"skipped"`
	Entries []parser.UsageEntry `json:"entries"`
}

func (c cachedFile) matches(file discovery.LogFile) bool {
	return c.Size == file.Size && c.ModTime == file.ModTime.UnixNano()
}

// boltCache implements Cache using BoltDB.
type boltCache struct {
	db *bolt.DB
	mu sync.RWMutex
}

// NewBoltCache opens or creates a BoltDB-backed cache.
//
// Parameters:
//   - path: Database file path; parent directories are created
//
// Returns:
//   - Configured Cache
//   - Error if the database cannot be opened
func NewBoltCache(path string) (Cache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Initialize bucket.
	if err := db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(bucketFiles)
		return createErr
	}); err != nil {
		_ = db.Close() //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &boltCache{db: db}, nil
}

// Get implements Cache.Get.
func (c *boltCache) Get(file discovery.LogFile) (*Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var snap *Snapshot

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		data := b.Get([]byte(file.Path))

		if data == nil {
			// Nothing stored for this path.
			return nil
		}

		var stored cachedFile
		if unmarshalErr := json.Unmarshal(data, &stored); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal cached records: %w", unmarshalErr)
		}

		if !stored.matches(file) {
			// The file changed since it was parsed.
			return nil
		}

		snap = &Snapshot{Entries: stored.Entries, Skipped: stored.Skipped}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return snap, nil
}

// Put implements Cache.Put.
func (c *boltCache) Put(file discovery.LogFile, snap *Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)

		data, err := json.Marshal(cachedFile{
			Size:    file.Size,
			ModTime: file.ModTime.UnixNano(),
			Skipped: snap.Skipped,
			Entries: snap.Entries,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}

		if putErr := b.Put([]byte(file.Path), data); putErr != nil {
			return fmt.Errorf("failed to store records: %w", putErr)
		}

		return nil
	})
}

// Close implements Cache.Close.
func (c *boltCache) Close() error {
	return c.db.Close()
}

// memoryCache implements Cache using an in-memory map.
// Useful for testing.
type memoryCache struct {
	files map[string]cachedFile
	mu    sync.RWMutex
}

// NewMemoryCache creates an in-memory cache.
//
// Returns a configured Cache.
// Useful for testing or when persistence is not needed.
func NewMemoryCache() Cache {
	return &memoryCache{
		files: make(map[string]cachedFile),
	}
}

// Get implements Cache.Get.
func (c *memoryCache) Get(file discovery.LogFile) (*Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stored, exists := c.files[file.Path]
	if !exists || !stored.matches(file) {
		return nil, nil
	}

	return &Snapshot{Entries: stored.Entries, Skipped: stored.Skipped}, nil
}

// Put implements Cache.Put.
func (c *memoryCache) Put(file discovery.LogFile, snap *Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files[file.Path] = cachedFile{
		Size:    file.Size,
		ModTime: file.ModTime.UnixNano(),
		Skipped: snap.Skipped,
		Entries: snap.Entries,
	}
	return nil
}

// Close implements Cache.Close.
func (c *memoryCache) Close() error {
	return nil
}
