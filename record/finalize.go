package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/byte4ever/provenance/digester"
)

// NoWrite as the destination makes Finalize skip persistence.
const NoWrite = ""

// ErrEmptyDigest is returned when a digester yields an empty
// digest, which would leave the entry looking undigested.
var ErrEmptyDigest = errors.New("empty digest")

// Finalize computes the digest of every entry that has none,
// inputs first, then writes the record to dest unless dest is
// NoWrite. Entries are updated in place and rec itself is
// returned; callers must not expect a copy. A nil dg hashes
// files in process.
//
// Entries that already carry a digest are never recomputed,
// so a file changed since an earlier Finalize goes unnoticed;
// use Verify for that. A failure while writing may leave a
// truncated file behind.
func Finalize(
	ctx context.Context,
	rec *Record,
	dest string,
	dg digester.Digester,
) (*Record, error) {
	const errCtx = "finalizing record"

	if dg == nil {
		dg = digester.SHA1{}
	}

	for _, entries := range [][]*Entry{rec.Inputs, rec.Outputs} {
		if err := fillDigests(ctx, entries, dg); err != nil {
			return rec, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if dest == NoWrite {
		return rec, nil
	}

	content, err := Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := writeFile(dest, content); err != nil {
		return rec, fmt.Errorf("%s: %w", errCtx, err)
	}

	return rec, nil
}

func fillDigests(
	ctx context.Context,
	entries []*Entry,
	dg digester.Digester,
) error {
	for _, en := range entries {
		if en.SHA1 != "" {
			continue
		}

		slog.Info("computing checksum", "path", en.Path)

		sum, err := dg.Digest(ctx, en.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", en.Path, err)
		}

		if sum == "" {
			return fmt.Errorf("%s: %w", en.Path, ErrEmptyDigest)
		}

		en.SHA1 = sum
	}

	return nil
}
