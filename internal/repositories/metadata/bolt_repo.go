package metadata

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/dmitrijs2005/savelinks/internal/common"
)

var metadataBucket = []byte("metadata")

type BoltRepository struct {
	db *bolt.DB
}

// NewBoltRepository creates the metadata bucket if needed.
func NewBoltRepository(db *bolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(metadataBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", metadataBucket, err)
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metadataBucket).Get([]byte(key))
		if v == nil {
			return common.ErrorNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

func (r *BoltRepository) SetAll(_ context.Context, values map[string][]byte) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(metadataBucket)
		for k, v := range values {
			if err := b.Put([]byte(k), v); err != nil {
				return fmt.Errorf("failed to set metadata[%s]: %w", k, err)
			}
		}
		return nil
	})
}
