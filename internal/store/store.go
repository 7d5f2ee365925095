package store

// KV is the persistence contract for saved data: a flat string-to-string
// store in the spirit of browser local storage. Implementations are
// expected to be fast enough to call synchronously from the game loop.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error
	// Close releases backend resources.
	Close() error
}
