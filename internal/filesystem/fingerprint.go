package filesystem

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"os"
)

// ChunkSize is the read buffer size used while fingerprinting
const ChunkSize = 4096

// Fingerprinter computes content fingerprints of files
type Fingerprinter struct {
	buf []byte
}

// NewFingerprinter creates a new fingerprinter.
// A Fingerprinter reuses its buffer and must not be shared between goroutines.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{
		buf: make([]byte, ChunkSize),
	}
}

// Fingerprint returns the hex MD5 digest of the file content
func (f *Fingerprinter) Fingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()

	sum, err := f.sum(file)
	if err != nil {
		return "", &ReadError{Path: path, Op: "read", Err: err}
	}
	return sum, nil
}

// sum hashes r chunk by chunk
func (f *Fingerprinter) sum(r io.Reader) (string, error) {
	h := md5.New()
	for {
		n, err := r.Read(f.buf)
		if n > 0 {
			h.Write(f.buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
