package history

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketUploads = []byte("uploads")

type BoltRepository struct {
	db *bolt.DB
}

var _ Repository = (*BoltRepository)(nil)

// OpenBoltRepository opens (or creates) the history database at path.
func OpenBoltRepository(path string) (*BoltRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history db %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUploads)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &BoltRepository{db: db}, nil
}

// recordKey sorts by creation time; the id keeps keys unique.
func recordKey(r *Record) []byte {
	key := make([]byte, 8, 8+len(r.ID))
	binary.BigEndian.PutUint64(key, uint64(r.CreatedAt.UnixNano()))
	return append(key, r.ID...)
}

func (r *BoltRepository) Add(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode history record: %w", err)
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUploads).Put(recordKey(rec), value)
	})
	if err != nil {
		return fmt.Errorf("failed to store history record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *BoltRepository) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result []Record
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUploads).ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode history record %x: %w", k, err)
			}
			result = append(result, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return result, nil
}

func (r *BoltRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketUploads); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketUploads)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}
