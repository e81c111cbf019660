package cache

import (
	"encoding/hex"
	"errors"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/pricerange"
)

// ErrSnapshotNotFound is returned by Get for unknown checksums.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the derived state of one catalog version.
type Snapshot struct {
	Checksum string                `msgpack:"checksum"`
	Source   string                `msgpack:"source"`
	Aliases  []location.AliasEntry `msgpack:"aliases"`
	Bounds   pricerange.Bounds     `msgpack:"bounds"`
	Listings int                   `msgpack:"listings"`
	Options  string                `msgpack:"options"` // digest of the derivation options
	BuiltAt  time.Time             `msgpack:"built_at"`
}

// HashContent computes BLAKE3 hash of content
func HashContent(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashString computes BLAKE3 hash of a string
func HashString(s string) string {
	return HashContent([]byte(s))
}

// Encode serializes a value to msgpack
func Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes msgpack bytes to a value
func Decode(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
