package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/models"
)

var usersBucket = []byte("users")

// boltUser is the JSON value stored under the username key.
type boltUser struct {
	ID       int64  `json:"id"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type BoltRepository struct {
	db *bolt.DB
}

// NewBoltRepository creates the users bucket if needed.
func NewBoltRepository(db *bolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(usersBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", usersBucket, err)
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Create(_ context.Context, userName string, salt, verifier []byte) (int64, error) {
	var id int64
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		key := []byte(userName)
		if b.Get(key) != nil {
			return common.ErrorAlreadyExists
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = int64(seq)

		data, err := json.Marshal(boltUser{ID: id, Salt: salt, Verifier: verifier})
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (r *BoltRepository) GetByUserName(_ context.Context, userName string) (*models.User, error) {
	var u *models.User
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(usersBucket).Get([]byte(userName))
		if data == nil {
			return common.ErrorNotFound
		}

		var bu boltUser
		if err := json.Unmarshal(data, &bu); err != nil {
			return fmt.Errorf("failed to decode user %q: %w", userName, err)
		}
		u = &models.User{ID: bu.ID, UserName: userName, Salt: bu.Salt, Verifier: bu.Verifier}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
