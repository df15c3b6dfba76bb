package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Item is a stored gallery item. It implements gallery.Identifier, so its ID
// serves as the key for rendering.
type Item struct {
	UUID string `json:"id"`
	Text string `json:"text"`
	// Position in the bucket, starting from 1. Not stored in the value.
	Seq uint64 `json:"-"`
}

// ID returns the UUID of the item.
func (it Item) ID() string { return it.UUID }

// String returns the text of the item.
func (it Item) String() string { return it.Text }

func (s *dbStore) Add(bucket, text string) (Item, error) {
	if bucket == "" {
		return Item{}, ErrEmptyBucketName
	}
	s.wg.Add(1)
	defer s.wg.Done()
	item := Item{UUID: uuid.NewString(), Text: text}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		item.Seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		value, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(item.Seq), value)
	})
	if err != nil {
		return Item{}, fmt.Errorf("add to %s: %w", bucket, err)
	}
	logger.Printf("added %s to %s", item.UUID, bucket)
	return item, nil
}

func (s *dbStore) Items(bucket string) ([]Item, error) {
	if bucket == "" {
		return nil, ErrEmptyBucketName
	}
	s.wg.Add(1)
	defer s.wg.Done()
	items := []Item{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("item %d: %w", unmarshalSeq(k), err)
			}
			item.Seq = unmarshalSeq(k)
			items = append(items, item)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", bucket, err)
	}
	return items, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
