package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spicevault/traders-billing/internal/platform/logger"
	bolt "go.etcd.io/bbolt"
)

// ErrPersistence marks a failed durable write. The in-memory effect of the
// triggering operation may already be computed; callers may retry the save.
var ErrPersistence = errors.New("snapshot persistence failed")

const snapshotKey = "snapshot"

// SnapshotStore is a whole-collection key-value medium: each collection is
// serialized as a single JSON blob under its own bucket and rewritten in full
// on every mutation. There are no partial updates and no cross-bucket
// transactions.
type SnapshotStore struct {
	db *bolt.DB
}

func Open(path string) (*SnapshotStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store at %s: %w", path, err)
	}
	logger.Info("Snapshot store opened at %s", path)
	return &SnapshotStore{db: db}, nil
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Load unmarshals the snapshot for bucket into out. It returns false when the
// bucket has never been written, leaving out untouched.
func (s *SnapshotStore) Load(bucket string, out interface{}) (bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(snapshotKey)); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read %s snapshot: %w", bucket, err)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %s snapshot: %w", bucket, err)
	}
	return true, nil
}

// Save rewrites the full snapshot for bucket.
func (s *SnapshotStore) Save(bucket string, in interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", bucket, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(snapshotKey), raw)
	})
	if err != nil {
		return fmt.Errorf("%w: bucket %s: %v", ErrPersistence, bucket, err)
	}
	return nil
}
