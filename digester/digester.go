package digester

import (
	"context"
	"crypto/sha1" //nolint:gosec // sha1 is the recorded checksum format
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Digester computes the hex digest of the file at path.
type Digester interface {
	Digest(ctx context.Context, path string) (string, error)
}

// SHA1 hashes files in process.
type SHA1 struct{}

// Digest implements Digester.
func (SHA1) Digest(_ context.Context, path string) (string, error) {
	return Calculate(path)
}

// Fixed returns its own value for every path without reading
// anything. It keeps tests hermetic. The value must not be
// empty; the finalizer rejects empty digests.
type Fixed string

// Digest implements Digester.
func (f Fixed) Digest(context.Context, string) (string, error) {
	return string(f), nil
}

// Calculate computes the lowercase SHA-1 hex digest of the
// file at path. A missing or unreadable file is an error.
func Calculate(path string) (result string, retErr error) {
	const errCtx = "calculating digest"

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	ha := sha1.New() //nolint:gosec // see import

	if _, err := io.Copy(ha, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}
