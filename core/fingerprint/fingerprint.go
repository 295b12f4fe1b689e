package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// ChunkSize is the read buffer used while hashing.
const ChunkSize = 4096

// Fingerprint identifies the content of a file.
type Fingerprint struct {
	// Hash is the lowercase hex MD5 digest.
	Hash string `json:"hash"`
	// Size is the number of bytes hashed.
	Size int64 `json:"size"`
}

// Matches reports whether the fingerprint equals a remote hash and size.
func (f Fingerprint) Matches(hash string, size int64) bool {
	return f.Hash == hash && f.Size == size
}

// File streams the file at path through MD5 without loading it into memory.
func File(fs afero.Fs, path string) (Fingerprint, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	fp, err := Reader(f)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fp, nil
}

// Reader hashes everything readable from r.
func Reader(r io.Reader) (Fingerprint, error) {
	h := md5.New()
	buf := make([]byte, ChunkSize)
	var size int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			size += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Fingerprint{}, err
		}
	}
	return Fingerprint{Hash: hex.EncodeToString(h.Sum(nil)), Size: size}, nil
}
