// Package hash provides xxHash64-based identification used by the symbol
// interner (see Interner) to dedupe repeated SAB symbol strings.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
