package links

import (
	"context"
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/dmitrijs2005/savelinks/internal/models"
)

// Layout: links/<user id>/<record id> -> token. Ids are big-endian so cursor
// order is ascending id order.
var linksBucket = []byte("links")

type BoltRepository struct {
	db *bolt.DB
}

// NewBoltRepository creates the links bucket if needed.
func NewBoltRepository(db *bolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(linksBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", linksBucket, err)
	}
	return &BoltRepository{db: db}, nil
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}

func (r *BoltRepository) Insert(_ context.Context, userID int64, data []byte) (int64, error) {
	var id int64
	err := r.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(linksBucket)

		seq, err := root.NextSequence()
		if err != nil {
			return err
		}
		id = int64(seq)

		owned, err := root.CreateBucketIfNotExists(itob(userID))
		if err != nil {
			return err
		}
		return owned.Put(itob(id), data)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert link: %w", err)
	}
	return id, nil
}

func (r *BoltRepository) ListByUser(_ context.Context, userID int64) ([]models.Link, error) {
	result := []models.Link{}
	err := r.db.View(func(tx *bolt.Tx) error {
		owned := tx.Bucket(linksBucket).Bucket(itob(userID))
		if owned == nil {
			return nil
		}
		return owned.ForEach(func(k, v []byte) error {
			// v is only valid for the life of the transaction
			result = append(result, models.Link{
				ID:     btoi(k),
				UserID: userID,
				Data:   append([]byte(nil), v...),
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return result, nil
}

func (r *BoltRepository) Delete(_ context.Context, id, userID int64) (int64, error) {
	var n int64
	err := r.db.Update(func(tx *bolt.Tx) error {
		owned := tx.Bucket(linksBucket).Bucket(itob(userID))
		if owned == nil {
			return nil
		}
		key := itob(id)
		if owned.Get(key) == nil {
			return nil
		}
		if err := owned.Delete(key); err != nil {
			return err
		}
		n = 1
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete link: %w", err)
	}
	return n, nil
}
