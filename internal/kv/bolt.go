package kv

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// bucketName is the single bucket all keys live in.
var bucketName = []byte("catalog")

// BoltStore implements Store on top of an embedded bbolt database. It
// is the durable backend: bbolt gives atomic replacement of a value
// under a fixed key without any external service.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the bbolt database at the given path.
func OpenBolt(path string) (*BoltStore, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt store path cannot be empty")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bolt bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Load returns the value stored under key.
func (s *BoltStore) Load(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load value: %w", ctx.Err())
	default:
	}

	if key == "" {
		return nil, ErrEmptyKey
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		stored := tx.Bucket(bucketName).Get([]byte(key))
		if stored == nil {
			return ErrKeyNotFound
		}

		// Bolt-owned memory is only valid inside the transaction.
		value = make([]byte, len(stored))
		copy(value, stored)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Save replaces the value stored under key.
func (s *BoltStore) Save(ctx context.Context, key string, value []byte) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("save value: %w", ctx.Err())
	default:
	}

	if key == "" {
		return ErrEmptyKey
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("saving value: %w", err)
	}

	return nil
}

// Delete removes the key and its value.
func (s *BoltStore) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete value: %w", ctx.Err())
	default:
	}

	if key == "" {
		return ErrEmptyKey
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("deleting value: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
