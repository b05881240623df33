// Package db keeps a journal of produced ciphertexts in a BoltDB file.
package db

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketHistory = []byte("history")
)

var db *bbolt.DB

// Opened reports whether the journal is open.
func Opened() bool {
	return db != nil
}

func Open(config Config) {
	if db != nil {
		panic("db: already opened")
	}
	if config.File == "" {
		panic("db: file is required")
	}

	err := os.MkdirAll(filepath.Dir(config.File), 0755)
	if err != nil {
		panic(fmt.Errorf("db: create db dir: %w", err))
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	db, err = bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout: timeout,
	})
	if err != nil {
		panic(fmt.Errorf("db: open bbolt db: %w", err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketHistory, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		db = nil
		panic(fmt.Errorf("db: initialize buckets: %w", err))
	}
}

func Close() error {
	if db == nil {
		panic("db: not opened")
	}

	err := db.Close()
	db = nil
	if err != nil {
		return fmt.Errorf("db: close bbolt db: %w", err)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func Closer() io.Closer {
	return closerFunc(Close)
}

// Entry is one journaled ciphertext. The plaintext is never stored.
type Entry struct {
	Time       time.Time `json:"time"`
	Source     string    `json:"source"`
	Key        string    `json:"key"`
	Ciphertext string    `json:"ciphertext"`
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Errorf("db: must: %w", err))
	}
	return v
}

func itob(id uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, id)
}

func bucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	b := tx.Bucket(bucketHistory)
	if b == nil {
		return nil, fmt.Errorf("db: history bucket not found")
	}
	return b, nil
}

// Append stores entry and returns its id. Ids grow with every append.
func Append(entry Entry) (uint64, error) {
	if db == nil {
		panic("db: not opened")
	}

	var id uint64
	err := db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx)
		if err != nil {
			return err
		}

		id, err = b.NextSequence()
		if err != nil {
			return fmt.Errorf("db: next sequence: %w", err)
		}

		return b.Put(itob(id), must(json.Marshal(entry)))
	})
	return id, err
}

// Clear removes every entry. Ids keep growing from where they were.
func Clear() error {
	if db == nil {
		panic("db: not opened")
	}

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx)
		if err != nil {
			return err
		}

		var keys [][]byte
		err = b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return fmt.Errorf("db: delete entry %d: %w", binary.BigEndian.Uint64(k), err)
			}
		}
		return nil
	})
}

var errStop = fmt.Errorf("stop iteration")

// All iterates the journal in insertion order.
func All() iter.Seq2[uint64, Entry] {
	if db == nil {
		panic("db: not opened")
	}

	return func(yield func(uint64, Entry) bool) {
		err := db.View(func(tx *bbolt.Tx) error {
			b, err := bucket(tx)
			if err != nil {
				return err
			}

			return b.ForEach(func(k, v []byte) error {
				var entry Entry
				err := json.Unmarshal(v, &entry)
				if err != nil {
					return fmt.Errorf("db: unmarshal entry %x: %w", k, err)
				}

				if !yield(binary.BigEndian.Uint64(k), entry) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("db: get all entries: %w", err))
		}
	}
}
