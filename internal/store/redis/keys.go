package redis

const (
	// KeyCollection holds the serialized last-known-good collection snapshot.
	KeyCollection = "sava:bookmarks:snapshot"
)

// CollectionKey returns the Redis key for the collection snapshot.
func CollectionKey() string {
	return KeyCollection
}
