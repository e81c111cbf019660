package cache

// BoltDB bucket names
const (
	BucketSnapshots = "snapshots" // {checksum} -> zstd(msgpack(Snapshot))
	BucketMeta      = "meta"      // schema_version, last_checksum

	// Meta keys
	KeySchemaVersion = "schema_version"
	KeyLastChecksum  = "last_checksum"
)

// SchemaVersion is bumped whenever Snapshot changes incompatibly.
const SchemaVersion uint32 = 1

// AllBuckets returns all bucket names for initialization
func AllBuckets() []string {
	return []string{
		BucketSnapshots,
		BucketMeta,
	}
}
