package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Kush-Singh-26/immo/catalog/cache"
	"github.com/Kush-Singh-26/immo/catalog/models"
)

// SnapshotStore is the subset of the snapshot cache a session needs.
type SnapshotStore interface {
	Get(checksum string) (*cache.Snapshot, error)
	Put(s *cache.Snapshot) error
}

// Build returns a session for listings, reusing the derived state stored for
// checksum when there is one. On a miss the state is derived and stored. The
// returned bool reports a cache hit. A snapshot derived with a different
// listing count or different options is replaced. A nil store or empty
// checksum always derives. A failed Put still returns a usable session
// together with the error.
func Build(listings []models.Listing, checksum string, store SnapshotStore, opts Options) (*Session, bool, error) {
	if store == nil || checksum == "" {
		return New(listings, opts), false, nil
	}

	digest := opts.Digest()
	snap, err := store.Get(checksum)
	switch {
	case err == nil && snap.Listings == len(listings) && snap.Options == digest:
		d := Derived{Aliases: snap.Aliases, Bounds: snap.Bounds}
		return Restore(listings, d, opts), true, nil
	case err != nil && !errors.Is(err, cache.ErrSnapshotNotFound):
		return New(listings, opts), false, fmt.Errorf("read snapshot: %w", err)
	}

	s := New(listings, opts)
	d := s.Derived()
	err = store.Put(&cache.Snapshot{
		Checksum: checksum,
		Aliases:  d.Aliases,
		Bounds:   d.Bounds,
		Listings: len(listings),
		Options:  digest,
	})
	if err != nil {
		return s, false, fmt.Errorf("write snapshot: %w", err)
	}
	return s, false, nil
}

// Digest identifies the options that feed the derived state: the commune
// list and the fallback price range.
func (o Options) Digest() string {
	var b strings.Builder
	b.WriteString(strings.Join(o.Communes, "\x00"))
	for _, v := range []float64{o.FallbackBounds.Min, o.FallbackBounds.Max, o.FallbackBounds.Step} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return cache.HashString(b.String())
}
