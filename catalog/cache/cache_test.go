package cache

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/pricerange"
)

func openTestCache(t *testing.T) *Manager {
	t.Helper()
	m, err := Open(t.TempDir(), time.Second)
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func sampleSnapshot(checksum string, builtAt time.Time) *Snapshot {
	return &Snapshot{
		Checksum: checksum,
		Source:   "listings.yaml",
		Aliases: []location.AliasEntry{
			{Alias: "akid lotfi", Commune: "Oran", District: "Akid Lotfi"},
			{Alias: "canastel", Commune: "Bir El Djir", District: "Canastel"},
		},
		Bounds:   pricerange.Bounds{Min: 75_000, Max: 45_000_000, Step: 500_000},
		Listings: 5,
		BuiltAt:  builtAt,
	}
}

func TestPutGet(t *testing.T) {
	m := openTestCache(t)
	want := sampleSnapshot(HashString("v1"), time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	if err := m.Put(want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := m.Get(want.Checksum)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.BuiltAt.Equal(want.BuiltAt) {
		t.Errorf("BuiltAt = %v, want %v", got.BuiltAt, want.BuiltAt)
	}
	got.BuiltAt = want.BuiltAt
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestGetMissing(t *testing.T) {
	m := openTestCache(t)

	_, err := m.Get("unknown")
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("err = %v, want ErrSnapshotNotFound", err)
	}

	st, err := m.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Misses != 1 || st.Hits != 0 {
		t.Errorf("hits/misses = %d/%d, want 0/1", st.Hits, st.Misses)
	}
}

func TestPutRequiresChecksum(t *testing.T) {
	m := openTestCache(t)
	if err := m.Put(&Snapshot{}); err == nil {
		t.Error("expected an error for a snapshot without checksum")
	}
}

func TestPrune(t *testing.T) {
	m := openTestCache(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range []string{"v1", "v2", "v3", "v4"} {
		if err := m.Put(sampleSnapshot(HashString(v), base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := m.Prune(2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	for _, v := range []string{"v1", "v2"} {
		if _, err := m.Get(HashString(v)); !errors.Is(err, ErrSnapshotNotFound) {
			t.Errorf("%s should be pruned, err = %v", v, err)
		}
	}
	for _, v := range []string{"v3", "v4"} {
		if _, err := m.Get(HashString(v)); err != nil {
			t.Errorf("%s should be kept: %v", v, err)
		}
	}

	if deleted, _ := m.Prune(5); deleted != 0 {
		t.Errorf("second prune deleted %d", deleted)
	}
}

func TestStats(t *testing.T) {
	m := openTestCache(t)
	s := sampleSnapshot(HashString("v1"), time.Now())
	if err := m.Put(s); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(s.Checksum); err != nil {
		t.Fatal(err)
	}

	st, err := m.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Snapshots != 1 || st.Bytes == 0 {
		t.Errorf("Snapshots/Bytes = %d/%d", st.Snapshots, st.Bytes)
	}
	if st.SchemaVersion != SchemaVersion || st.LastChecksum != s.Checksum {
		t.Errorf("stats = %+v", st)
	}
	if st.Hits != 1 || st.Writes != 1 {
		t.Errorf("hits/writes = %d/%d", st.Hits, st.Writes)
	}
}

func TestReopenKeepsSnapshots(t *testing.T) {
	dir := t.TempDir()
	m, err := Open(dir, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	s := sampleSnapshot(HashString("v1"), time.Now())
	if err := m.Put(s); err != nil {
		t.Fatal(err)
	}
	_ = m.Close()

	m, err = Open(dir, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = m.Close() }()
	if _, err := m.Get(s.Checksum); err != nil {
		t.Errorf("snapshot lost after reopen: %v", err)
	}
}

func TestHashContent(t *testing.T) {
	if HashContent([]byte("a")) == HashContent([]byte("b")) {
		t.Error("different inputs share a hash")
	}
	if len(HashString("x")) != 64 {
		t.Errorf("hash length = %d, want 64", len(HashString("x")))
	}
}
