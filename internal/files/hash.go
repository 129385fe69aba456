package files

import (
	"strconv"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("resumematch-content-hash-key-32b")

// ContentHash returns a stable fingerprint of a file's bytes.
func ContentHash(data []byte) (string, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return "", err
	}
	if _, err = h.Write(data); err != nil {
		return "", err
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}
