package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to the given length. Output filenames use 16 hex chars.
func ContentHash(data []byte, hexLen int) string {
	return truncHex(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncHex(h.Sum64(), hexLen), nil
}

// PixelHash digests packed ARGB pixels, independent of how they are encoded
// on disk. Used to compare blur results.
func PixelHash(pix []uint32) uint64 {
	h := xxhash.New()
	var b [4]byte
	for _, p := range pix {
		binary.BigEndian.PutUint32(b[:], p)
		h.Write(b[:])
	}
	return h.Sum64()
}

func truncHex(v uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
