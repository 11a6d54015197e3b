package record

import (
	"context"
	"fmt"

	"github.com/byte4ever/provenance/digester"
)

// Mismatch is an entry whose file no longer matches its
// recorded digest.
type Mismatch struct {
	Path     string
	Recorded string
	Current  string
}

// Verify recomputes the digest of every entry that has one
// and reports those that changed, inputs first. Entries
// without a digest are skipped. A nil dg hashes files in
// process.
func Verify(
	ctx context.Context,
	rec *Record,
	dg digester.Digester,
) ([]Mismatch, error) {
	const errCtx = "verifying record"

	if dg == nil {
		dg = digester.SHA1{}
	}

	var mis []Mismatch

	for _, entries := range [][]*Entry{rec.Inputs, rec.Outputs} {
		for _, en := range entries {
			if en.SHA1 == "" {
				continue
			}

			cur, err := dg.Digest(ctx, en.Path)
			if err != nil {
				return nil, fmt.Errorf(
					"%s: %s: %w", errCtx, en.Path, err,
				)
			}

			if cur != en.SHA1 {
				mis = append(mis, Mismatch{
					Path:     en.Path,
					Recorded: en.SHA1,
					Current:  cur,
				})
			}
		}
	}

	return mis, nil
}
