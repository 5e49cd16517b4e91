package kv

// Store defines the interface for a key-value store.
// Keys and values are opaque strings; the empty string is valid for both.
// Implementations hold at most one value per key and make no ordering promises.
type Store interface {
	// Get retrieves the value associated with the given key.
	// Returns the value and true if the key exists, or empty string and false if not.
	// A missing key is a normal outcome, not an error.
	Get(key string) (string, bool)

	// Set stores a key-value pair, replacing any previous value for key.
	Set(key, value string)

	// Remove deletes key from the store.
	// Removing a key that is not present does nothing.
	Remove(key string)

	// Len returns the number of distinct keys currently held.
	Len() int
}
