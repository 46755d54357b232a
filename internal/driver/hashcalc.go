package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"esfront/internal/dialect"
)

// Digest is a SHA-256 value.
type Digest [32]byte

// combineDigest hashes content followed by every part in order.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey identifies one parse outcome: the same bytes parsed with the same
// dialect, cap and suppression setting give the same diagnostics.
func cacheKey(content Digest, cfg dialect.Config, maxDiagnostics int, suppress bool) Digest {
	var buf [12]byte
	binary.LittleEndian.PutUint16(buf[0:], diskCacheSchemaVersion)
	buf[2] = cfg.Key()
	if suppress {
		buf[3] = 1
	}
	binary.LittleEndian.PutUint64(buf[4:], uint64(int64(maxDiagnostics)))
	return combineDigest(content, buf[:], []byte(cacheSalt))
}
