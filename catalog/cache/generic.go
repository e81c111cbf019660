package cache

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	bolt "go.etcd.io/bbolt"
)

// TypedStore provides a type-safe interface for storing and retrieving items
type TypedStore[T any] interface {
	Get(bucketName string, key []byte) (*T, error)
	Put(bucketName string, key []byte, value *T) error
}

// typedStoreImpl implements TypedStore using msgpack, compressed with zstd
type typedStoreImpl[T any] struct {
	db      *bolt.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewTypedStore creates a new TypedStore. EncodeAll and DecodeAll are safe
// for concurrent use, so the codecs may be shared.
func NewTypedStore[T any](db *bolt.DB, encoder *zstd.Encoder, decoder *zstd.Decoder) TypedStore[T] {
	return &typedStoreImpl[T]{db: db, encoder: encoder, decoder: decoder}
}

// Get retrieves an item from the cache. A missing key yields a nil item.
func (s *typedStoreImpl[T]) Get(bucketName string, key []byte) (*T, error) {
	var result *T
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		data := bucket.Get(key)
		if data == nil {
			return nil
		}

		raw, err := s.decoder.DecodeAll(data, nil)
		if err != nil {
			return fmt.Errorf("decompress %s/%s: %w", bucketName, key, err)
		}
		var item T
		if err := Decode(raw, &item); err != nil {
			return err
		}
		result = &item
		return nil
	})
	return result, err
}

// Put stores an item in the cache
func (s *typedStoreImpl[T]) Put(bucketName string, key []byte, value *T) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	compressed := s.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return bucket.Put(key, compressed)
	})
}
