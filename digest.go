// Input fingerprints.
//
// Every decoded File carries a 16 hex character digest of its container
// bytes (after any decompression), so reports and logs can tell identical
// inputs apart from files that merely share a name. Three algorithms are
// supported, selectable via DecodeOptions.Digest.
package gck

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint algorithms, selected by name with ParseDigest.
const (
	AlgXXHash3 = 1
	AlgFNV1a   = 2
	AlgBlake2b = 3
)

// digest fingerprints container bytes. Every algorithm is cut to 64 bits so
// fingerprints have the same shape in reports whichever one produced them.
func digest(data []byte, alg int) (string, error) {
	var sum [8]byte
	switch alg {
	case AlgXXHash3:
		binary.BigEndian.PutUint64(sum[:], xxh3.Hash(data))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(data)
		h.Sum(sum[:0])
	case AlgBlake2b:
		full := blake2b.Sum256(data)
		copy(sum[:], full[:])
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownDigest, alg)
	}
	return hex.EncodeToString(sum[:]), nil
}

// ParseDigest maps an algorithm name ("xxh3", "fnv1a", "blake2b") to its
// constant.
func ParseDigest(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "xxh3", "xxhash3":
		return AlgXXHash3, nil
	case "fnv1a", "fnv":
		return AlgFNV1a, nil
	case "blake2b":
		return AlgBlake2b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDigest, name)
}
