// Package store keeps gallery items in a bbolt database, one bucket per
// gallery.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/elves/gallery/pkg/logutil"
	bolt "go.etcd.io/bbolt"
)

var logger = logutil.GetLogger("[store] ")

// ErrEmptyBucketName is returned when an operation is given an empty bucket
// name.
var ErrEmptyBucketName = errors.New("bucket name is empty")

// Store is the permanent storage of gallery items.
type Store interface {
	// Add appends an item with the given text to a bucket, creating the bucket
	// if needed. The item gets a newly generated ID.
	Add(bucket, text string) (Item, error)
	// Items returns all items in a bucket in the order they were added. A
	// bucket that does not exist has no items.
	Items(bucket string) ([]Item, error)
	// Buckets returns the names of all buckets.
	Buckets() ([]string, error)
	// Close closes the store.
	Close() error
}

type dbStore struct {
	db *bolt.DB
	wg sync.WaitGroup
}

// NewStore opens the database at the given path, creating it if it does not
// exist.
func NewStore(dbname string) (Store, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	logger.Println("opened", dbname)
	return &dbStore{db: db}, nil
}

// Close waits for all outstanding operations to finish, and closes the
// database.
func (s *dbStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.wg.Wait()
	return s.db.Close()
}

func (s *dbStore) Buckets() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	return names, err
}
