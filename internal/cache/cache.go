// Package cache is the shared on-disk TTL store every fetcher consults
// before hitting its upstream. One sqlite file, one table, JSON payloads.
// Expiry is evaluated at read time; stale rows stay on disk until the next
// write for that key.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kulugary/mediahub/internal/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultTTL applies when a caller passes a non-positive TTL.
const DefaultTTL = 24 * time.Hour

type record struct {
	Key       string `gorm:"primaryKey;column:key"`
	ExpiresAt int64  `gorm:"column:expires_at"`
	Payload   []byte `gorm:"column:payload"`
}

func (record) TableName() string { return "entries" }

// Store is a file-backed key-value cache with per-entry expiry. It is lazily
// opened on first access and safe for concurrent use within one process.
// Concurrent processes writing the same file risk last-write-wins, which is
// acceptable: builds run one at a time.
type Store struct {
	path string
	log  *logger.Logger

	mu     sync.Mutex
	db     *gorm.DB
	opened bool

	now func() time.Time
}

// New returns a Store backed by the sqlite file at path. The file is not
// touched until the first Get/Set/Remove.
func New(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	return &Store{path: path, log: log, now: time.Now}
}

// open initializes the sqlite store. A corrupt or unreadable file must not
// take the pipeline down: drop it, warn once and start from an empty cache.
func (s *Store) open() *gorm.DB {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return s.db
	}
	s.opened = true

	db, err := s.tryOpen()
	if err != nil {
		s.log.WithError(err).Warn("Cache store unreadable, starting from empty cache")
		if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) {
			s.log.WithError(rmErr).Warn("Could not remove corrupt cache store")
			return nil
		}
		db, err = s.tryOpen()
		if err != nil {
			s.log.WithError(err).Warn("Cache store unavailable, caching disabled for this run")
			return nil
		}
	}

	s.db = db
	return s.db
}

func (s *Store) tryOpen() (*gorm.DB, error) {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache store: %w", err)
	}
	return db, nil
}

// Get loads the entry for key into out. It reports false when the key is
// missing, expired, or its payload cannot be decoded.
func (s *Store) Get(key string, out interface{}) bool {
	db := s.open()
	if db == nil {
		return false
	}

	var rec record
	err := db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}

	if s.now().Unix() >= rec.ExpiresAt {
		return false
	}

	if err := json.Unmarshal(rec.Payload, out); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Cache payload undecodable, treating as miss")
		return false
	}
	return true
}

// Set overwrites the entry for key with payload, expiring after ttl, and
// persists synchronously before returning.
func (s *Store) Set(key string, payload interface{}, ttl time.Duration) error {
	db := s.open()
	if db == nil {
		return fmt.Errorf("cache store unavailable")
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload for %q: %w", key, err)
	}

	rec := record{
		Key:       key,
		ExpiresAt: s.now().Add(ttl).Unix(),
		Payload:   data,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

// Remove deletes the entry for key if present. Absent keys are not an error.
func (s *Store) Remove(key string) error {
	db := s.open()
	if db == nil {
		return nil
	}
	return db.Delete(&record{}, "key = ?", key).Error
}
