package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var statesBucket = []byte("states")

// BoltStore persists conversation state so it survives restarts. Selected by
// setting DATA_DIR; the in-memory store is otherwise the default.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(statesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating states bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(id string) (State, error) {
	var row State
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(statesBucket)
		v := b.Get([]byte(id))
		if v == nil {
			data, err := json.Marshal(row)
			if err != nil {
				return err
			}
			return b.Put([]byte(id), data)
		}
		return json.Unmarshal(v, &row)
	})
	return row, err
}

func (s *BoltStore) SetNameIfAbsent(id, name string) error {
	return s.update(id, func(row *State) {
		if row.DisplayName == "" {
			row.DisplayName = name
		}
	})
}

func (s *BoltStore) MarkWelcomed(id string) error {
	return s.update(id, func(row *State) {
		row.Welcomed = true
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) update(id string, mutate func(*State)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(statesBucket)
		var row State
		if v := b.Get([]byte(id)); v != nil {
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
		}
		mutate(&row)
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
}
