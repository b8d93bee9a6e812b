package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/plexkit/internal/domain"
)

// bucketMeta holds per-table freshness timestamps. Entity tables get one
// bucket each, created on first write.
var bucketMeta = []byte("_meta")

// EntityStore implements domain.EntityStore using BoltDB.
type EntityStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache
	logger *slog.Logger

	// In-memory cache for hot-path reads (promoted on access).
	// Keys are "table:id".
	cache map[string][]byte
}

// NewEntityStore opens the store under baseCacheDir. Each server gets its
// own directory. An empty baseCacheDir keeps everything in memory.
func NewEntityStore(baseCacheDir, serverURL string, logger *slog.Logger) (*EntityStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &EntityStore{cache: make(map[string][]byte), logger: logger}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "plexkit.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &EntityStore{db: db, cache: make(map[string][]byte), logger: logger}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func cacheKey(table, id string) string {
	return table + ":" + id
}

func (s *EntityStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveTables writes every entity of every table in one transaction.
// Existing entities with the same id are replaced.
func (s *EntityStore) SaveTables(tables map[string]map[string]any) error {
	encoded := make(map[string][]byte)
	for table, entities := range tables {
		if table == "" || table == string(bucketMeta) {
			return fmt.Errorf("invalid table name %q", table)
		}
		for id, entity := range entities {
			data, err := json.Marshal(entity)
			if err != nil {
				return fmt.Errorf("encode %s/%s: %w", table, id, err)
			}
			encoded[cacheKey(table, id)] = data
		}
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			for table, entities := range tables {
				b, err := tx.CreateBucketIfNotExists([]byte(table))
				if err != nil {
					return fmt.Errorf("create bucket %s: %w", table, err)
				}
				for id := range entities {
					if err := b.Put([]byte(id), encoded[cacheKey(table, id)]); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	// The cache only sees what was committed
	s.mu.Lock()
	for k, data := range encoded {
		s.cache[k] = data
	}
	s.mu.Unlock()
	return nil
}

// Entity decodes one stored entity into dest. It reports false when the
// entity is not stored.
func (s *EntityStore) Entity(table, id string, dest any) (bool, error) {
	key := cacheKey(table, id)

	// Check memory cache first
	s.mu.RLock()
	data, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		if s.db == nil {
			return false, nil
		}

		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(table))
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(id)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return false, err
		}
		if data == nil {
			return false, nil
		}

		// Promote to memory cache
		s.mu.Lock()
		s.cache[key] = data
		s.mu.Unlock()
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", table, id, err)
	}
	return true, nil
}

// Entities returns every stored entity of a table keyed by id.
func (s *EntityStore) Entities(table string) (map[string]map[string]any, error) {
	raw := make(map[string][]byte)

	if s.db == nil {
		prefix := table + ":"
		s.mu.RLock()
		for k, data := range s.cache {
			if id, ok := strings.CutPrefix(k, prefix); ok {
				raw[id] = data
			}
		}
		s.mu.RUnlock()
	} else {
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(table))
			if b == nil {
				return nil
			}
			return b.ForEach(func(k, v []byte) error {
				data := make([]byte, len(v))
				copy(data, v)
				raw[string(k)] = data
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}

	out := make(map[string]map[string]any, len(raw))
	for id, data := range raw {
		var entity map[string]any
		if err := json.Unmarshal(data, &entity); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", table, id, err)
		}
		out[id] = entity
	}
	return out, nil
}

// Tables lists the tables holding at least one entity, sorted by name.
func (s *EntityStore) Tables() ([]string, error) {
	seen := make(map[string]bool)

	if s.db == nil {
		s.mu.RLock()
		for k := range s.cache {
			if table, _, ok := strings.Cut(k, ":"); ok && table != string(bucketMeta) {
				seen[table] = true
			}
		}
		s.mu.RUnlock()
	} else {
		err := s.db.View(func(tx *bolt.Tx) error {
			return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
				if string(name) == string(bucketMeta) {
					return nil
				}
				if k, _ := b.Cursor().First(); k != nil {
					seen[string(name)] = true
				}
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}

	tables := make([]string, 0, len(seen))
	for table := range seen {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	return tables, nil
}

// === Freshness ===

// MarkFresh records the server timestamp a table was last synced at.
func (s *EntityStore) MarkFresh(table string, serverTS int64) error {
	data, err := json.Marshal(serverTS)
	if err != nil {
		return err
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketMeta).Put([]byte(table), data)
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[cacheKey(string(bucketMeta), table)] = data
	s.mu.Unlock()
	return nil
}

// IsValid checks if the stored timestamp of table is >= serverTS.
func (s *EntityStore) IsValid(table string, serverTS int64) bool {
	var storedTS int64
	ok, err := s.Entity(string(bucketMeta), table, &storedTS)
	if err != nil || !ok {
		return false
	}
	return storedTS >= serverTS
}

// === Invalidation ===

// InvalidateEntity removes one entity.
func (s *EntityStore) InvalidateEntity(table, id string) {
	s.mu.Lock()
	delete(s.cache, cacheKey(table, id))
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
	if err != nil {
		s.logger.Error("failed to invalidate entity", "table", table, "id", id, "error", err)
	}
}

// InvalidateTable removes every entity of a table and its freshness mark.
func (s *EntityStore) InvalidateTable(table string) {
	s.mu.Lock()
	prefix := table + ":"
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	delete(s.cache, cacheKey(string(bucketMeta), table))
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(table)) != nil {
			if err := tx.DeleteBucket([]byte(table)); err != nil {
				return err
			}
		}
		return tx.Bucket(bucketMeta).Delete([]byte(table))
	})
	if err != nil {
		s.logger.Error("failed to invalidate table", "table", table, "error", err)
	}
}

// InvalidateAll wipes every table.
func (s *EntityStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		var names [][]byte
		err := tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, slices.Clone(name))
			return nil
		})
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}
		_, err = tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		s.logger.Error("failed to invalidate store", "error", err)
	}
}

var _ domain.EntityStore = (*EntityStore)(nil)
