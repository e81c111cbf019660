// Package cache persists the derived state of catalog versions (alias index
// and price bounds) in BoltDB, keyed by the BLAKE3 checksum of the catalog.
package cache

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	bolt "go.etcd.io/bbolt"
)

// DBFile is the BoltDB file name inside the cache directory.
const DBFile = "snapshots.db"

// Manager provides the main cache interface
type Manager struct {
	db        *bolt.DB
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	snapshots TypedStore[Snapshot]
	basePath  string
	mu        sync.Mutex
	stats     cacheStatsInternal
}

// cacheStatsInternal holds runtime counters
type cacheStatsInternal struct {
	hits   int64
	misses int64
	writes int64
}

// Stats describes the cache contents.
type Stats struct {
	Snapshots     int
	Bytes         int64
	SchemaVersion uint32
	LastChecksum  string
	Hits          int64
	Misses        int64
	Writes        int64
}

// Open opens or creates a cache at the given path
func Open(basePath string, timeout time.Duration) (*Manager, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := &bolt.Options{
		Timeout:      timeout,
		FreelistType: bolt.FreelistArrayType,
	}

	db, err := bolt.Open(filepath.Join(basePath, DBFile), 0644, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	m := &Manager{
		db:       db,
		encoder:  encoder,
		decoder:  decoder,
		basePath: basePath,
	}
	m.snapshots = NewTypedStore[Snapshot](db, encoder, decoder)

	if err := m.initSchema(); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return m, nil
}

// Close closes the cache
func (m *Manager) Close() error {
	if m.encoder != nil {
		_ = m.encoder.Close()
	}
	if m.decoder != nil {
		m.decoder.Close()
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Path returns the cache directory.
func (m *Manager) Path() string {
	return m.basePath
}

// initSchema creates all buckets and drops snapshots written by another
// schema version.
func (m *Manager) initSchema() error {
	return m.db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(BucketMeta))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketMeta, err)
		}

		stored := meta.Get([]byte(KeySchemaVersion))
		if stored != nil && binary.BigEndian.Uint32(stored) != SchemaVersion {
			if err := tx.DeleteBucket([]byte(BucketSnapshots)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}

		for _, name := range AllBuckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}

		v := make([]byte, 4)
		binary.BigEndian.PutUint32(v, SchemaVersion)
		return meta.Put([]byte(KeySchemaVersion), v)
	})
}

// Get returns the snapshot stored for checksum or ErrSnapshotNotFound.
func (m *Manager) Get(checksum string) (*Snapshot, error) {
	s, err := m.snapshots.Get(BucketSnapshots, []byte(checksum))
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if s == nil {
		m.stats.misses++
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, checksum)
	}
	m.stats.hits++
	return s, nil
}

// Put stores s under its checksum and records it as the latest snapshot.
func (m *Manager) Put(s *Snapshot) error {
	if s.Checksum == "" {
		return fmt.Errorf("snapshot has no checksum")
	}
	if s.BuiltAt.IsZero() {
		s.BuiltAt = time.Now()
	}
	if err := m.snapshots.Put(BucketSnapshots, []byte(s.Checksum), s); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	err := m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketMeta)).Put([]byte(KeyLastChecksum), []byte(s.Checksum))
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.stats.writes++
	m.mu.Unlock()
	return nil
}

// Prune keeps the keep most recently built snapshots and deletes the rest.
// It returns the number of deleted snapshots.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	type entry struct {
		key     string
		builtAt time.Time
	}
	var entries []entry
	err := m.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketSnapshots)).ForEach(func(k, v []byte) error {
			var s Snapshot
			if err := m.decode(v, &s); err != nil {
				// unreadable snapshots sort last and are pruned first
				entries = append(entries, entry{key: string(k)})
				return nil
			}
			entries = append(entries, entry{key: string(k), builtAt: s.BuiltAt})
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	if len(entries) <= keep {
		return 0, nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].builtAt.After(entries[j].builtAt)
	})
	stale := entries[keep:]

	err = m.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSnapshots))
		for _, e := range stale {
			if err := b.Delete([]byte(e.key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (m *Manager) decode(data []byte, v any) error {
	raw, err := m.decoder.DecodeAll(data, nil)
	if err != nil {
		return err
	}
	return Decode(raw, v)
}

// Stats returns cache statistics
func (m *Manager) Stats() (Stats, error) {
	var st Stats
	err := m.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSnapshots))
		st.Snapshots = b.Stats().KeyN
		_ = b.ForEach(func(_, v []byte) error {
			st.Bytes += int64(len(v))
			return nil
		})

		meta := tx.Bucket([]byte(BucketMeta))
		if v := meta.Get([]byte(KeySchemaVersion)); len(v) == 4 {
			st.SchemaVersion = binary.BigEndian.Uint32(v)
		}
		st.LastChecksum = string(meta.Get([]byte(KeyLastChecksum)))
		return nil
	})

	m.mu.Lock()
	st.Hits, st.Misses, st.Writes = m.stats.hits, m.stats.misses, m.stats.writes
	m.mu.Unlock()
	return st, err
}
