// Package codegen generates short, human-shareable identifiers used as
// group codes and list item ids.
package codegen

import "math/rand"

// Alphabet excludes visually confusable characters (0/O, 1/I/L) so codes
// survive being read aloud or copied by hand.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	// GroupCodeLength gives ~31^6 possible group codes.
	GroupCodeLength = 6
	// ItemIDLength gives ~31^10 possible item ids.
	ItemIDLength = 10
)

// Generate returns a string of length characters drawn uniformly at random
// from Alphabet. It is not cryptographically secure and performs no
// uniqueness check: callers tolerate the rare collision, or surface it via
// a primary-key violation at the remote store.
func Generate(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[rand.Intn(len(Alphabet))]
	}
	return string(b)
}
