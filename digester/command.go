package digester

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/byte4ever/provenance/exec"
)

// ErrMalformedOutput is returned when the checksum tool output
// does not carry a 40 character hex digest where expected.
var ErrMalformedOutput = errors.New("malformed checksum tool output")

const sha1HexLen = 40

// Command runs the platform checksum tool: sha1sum on POSIX
// systems, fciv.exe on Windows.
type Command struct {
	// GOOS overrides runtime.GOOS when set.
	GOOS string
}

// Digest implements Digester.
func (c Command) Digest(ctx context.Context, path string) (string, error) {
	const errCtx = "running checksum tool"

	goos := c.goos()
	name, args := toolInvocation(goos, path)

	out, err := exec.Output(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	dg, err := extractDigest(goos, path, out)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return dg, nil
}

func (c Command) goos() string {
	if c.GOOS != "" {
		return c.GOOS
	}

	return runtime.GOOS
}

func toolInvocation(goos, path string) (string, []string) {
	if goos == "windows" {
		return "fciv.exe", []string{path, "-sha1"}
	}

	return "sha1sum", []string{path}
}

// extractDigest picks the digest out of raw tool output. sha1sum
// prints it first; fciv.exe prints it before the echoed path,
// separated by one space, followed by CRLF.
func extractDigest(goos, path string, out []byte) (string, error) {
	var start, end int

	if goos == "windows" {
		end = len(out) - len(path) - 3
		start = end - sha1HexLen
	} else {
		start, end = 0, sha1HexLen
	}

	if start < 0 || end > len(out) {
		return "", fmt.Errorf(
			"%w: %d bytes", ErrMalformedOutput, len(out),
		)
	}

	dg := strings.ToLower(string(out[start:end]))
	if !isHex(dg) {
		return "", fmt.Errorf("%w: %q", ErrMalformedOutput, dg)
	}

	return dg, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}

	return true
}
