package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a sha256 value; source.File.Hash has the same shape.
type Digest = [32]byte

// cacheKey: H(schema || content || options). Options that change the
// shape of the tree are part of the key, so a cached tree is never reused
// under different limits.
func cacheKey(content Digest, opts Options) Digest {
	h := sha256.New()
	var buf [2 + 1 + 8 + 4 + 4]byte
	binary.LittleEndian.PutUint16(buf[0:], diskCacheSchemaVersion)
	if opts.DecodeEntities {
		buf[2] = 1
	}
	binary.LittleEndian.PutUint64(buf[3:], uint64(opts.MaxDepth))
	binary.LittleEndian.PutUint32(buf[11:], opts.MaxNodes)
	binary.LittleEndian.PutUint32(buf[15:], opts.MaxTokenLength)
	_, _ = h.Write(buf[:])
	_, _ = h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
