package bus

import "context"

// Store is the persistent key/hash surface of the bus (spec section 6):
// it holds the VID<->RID translation hashes, the VID counter, and the
// current log level, and must survive a daemon restart. Modeled directly
// on the teacher's pkg/opdb.Store — a namespaced key/value abstraction —
// extended with hash-field and atomic-increment operations because the
// translation tables need per-field access, not whole-namespace load.
type Store interface {
	// HGet reads one field of a hash. ok is false if the hash or field is
	// absent.
	HGet(ctx context.Context, hash, field string) (value string, ok bool, err error)
	// HSet writes one field of a hash, creating the hash if needed.
	HSet(ctx context.Context, hash, field, value string) error
	// HDel removes one field of a hash. Deleting an absent field is not an
	// error.
	HDel(ctx context.Context, hash, field string) error
	// HLen reports the number of fields in a hash.
	HLen(ctx context.Context, hash string) (int, error)

	// Get reads a scalar key. ok is false if absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes a scalar key.
	Set(ctx context.Context, key, value string) error
	// Incr atomically increments a scalar key (creating it at 0 first if
	// absent) and returns the new value. This is the sole process-wide
	// increasing resource in the system (spec section 5): the VID counter.
	Incr(ctx context.Context, key string) (uint64, error)

	Close() error
}

// Well-known Store keys and hash names (spec section 6).
const (
	HashRIDToVID  = "RIDTOVID"
	HashVIDToRID  = "VIDTORID"
	KeyVIDCounter = "VIDCOUNTER"
	KeyLogLevel   = "LOGLEVEL"
)
