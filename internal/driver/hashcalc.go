package driver

import "crypto/sha256"

// Digest identifies file content for the disk cache.
type Digest [32]byte

// combineDigest: H(content || extra...).
func combineDigest(content Digest, extra ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, e := range extra {
		_, _ = h.Write(e)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey ties a file hash to the payload schema, so a schema bump
// invalidates every entry.
func cacheKey(content Digest) Digest {
	return combineDigest(content, []byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
}
