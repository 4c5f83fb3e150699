package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Cache TTLs per entry class.
const (
	// TTLSpec bounds resolved product specs. Specs describe physical
	// hardware and rarely change; thirty days keeps repeat runs over the
	// same proposal fast while still picking up catalog corrections.
	TTLSpec = 30 * 24 * time.Hour

	// TTLResponse bounds raw upstream API responses.
	TTLResponse = 24 * time.Hour
)

// Keyer derives cache keys for the lookups rackplan performs. Centralizing
// key construction keeps every catalog source and the HTTP layer pointing
// at the same entries.
type Keyer interface {
	// SpecKey returns the key for a resolved product spec. Brand and model
	// are normalized (trimmed, lowercased) so lookups are insensitive to
	// the formatting quirks of proposal exports.
	SpecKey(brand, model string) string

	// HTTPKey returns the key for a raw upstream response within a
	// namespace such as "catalog:" or "pricing:".
	HTTPKey(namespace, key string) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SpecKey generates a key of the form "spec:<sha256>".
func (k *DefaultKeyer) SpecKey(brand, model string) string {
	return hashKey("spec", normalize(brand), normalize(model))
}

// HTTPKey generates a key of the form "http:<namespace>:<key>".
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
