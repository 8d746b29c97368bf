package kv

import (
	"encoding/json"
	"errors"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/flarexio/technozen/conf"
)

var (
	errNotFound = errors.New("key not found")
	errExists   = errors.New("key already exists")
)

func open(cfg conf.Persistence, bucket string) (*badger.DB, error) {
	opts := badger.DefaultOptions(filepath.Join(cfg.Host, cfg.Name, bucket))
	if cfg.InMem {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}

	opts = opts.WithLogger(nil)

	return badger.Open(opts)
}

// bucket stores JSON documents under "<prefix>/<id>".
type bucket[T any] struct {
	db     *badger.DB
	prefix string
}

func (b *bucket[T]) key(id string) []byte {
	return []byte(b.prefix + "/" + id)
}

func (b *bucket[T]) put(id string, doc T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(id), data)
	})
}

// insert writes doc only when id is free. A concurrent insert of the
// same id fails the commit with badger.ErrConflict.
func (b *bucket[T]) insert(id string, doc T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(b.key(id))
		if err == nil {
			return errExists
		}

		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		return txn.Set(b.key(id), data)
	})

	if errors.Is(err, badger.ErrConflict) {
		return errExists
	}

	return err
}

func (b *bucket[T]) get(id string) (T, error) {
	var doc T

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errNotFound
			}

			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})

	return doc, err
}

func (b *bucket[T]) all() ([]T, error) {
	docs := make([]T, 0)

	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(b.prefix + "/")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var doc T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				return err
			}

			docs = append(docs, doc)
		}

		return nil
	})

	return docs, err
}

func (b *bucket[T]) truncate() error {
	return b.db.DropPrefix([]byte(b.prefix + "/"))
}
