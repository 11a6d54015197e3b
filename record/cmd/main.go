// Package main provides the jobmeta CLI that records the
// provenance of a data-processing job: its input and output
// files with their SHA-1 digests, its parameters and its
// completion time.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/byte4ever/provenance/digester"
	"github.com/byte4ever/provenance/params"
	"github.com/byte4ever/provenance/record"
)

var errMismatch = errors.New("recorded digests do not match")

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func newDigester(name string) (digester.Digester, error) {
	switch {
	case name == "sha1":
		return digester.SHA1{}, nil
	case name == "command":
		return digester.Command{}, nil
	case strings.HasPrefix(name, "fixed:"):
		return digester.Fixed(strings.TrimPrefix(name, "fixed:")), nil
	default:
		return nil, fmt.Errorf(
			"unknown digest %q: want sha1, command or fixed:<value>",
			name,
		)
	}
}

func verify(
	ctx context.Context,
	path string,
	dg digester.Digester,
) error {
	re, err := record.Load(path)
	if err != nil {
		return err
	}

	mis, err := record.Verify(ctx, re, dg)
	if err != nil {
		return err
	}

	for _, mi := range mis {
		slog.Warn(
			"digest mismatch",
			"path", mi.Path,
			"recorded", mi.Recorded,
			"current", mi.Current,
		)
	}

	if len(mis) > 0 {
		return fmt.Errorf("%w: %d file(s)", errMismatch, len(mis))
	}

	return nil
}

func run(args []string, stdout io.Writer) error {
	const errCtx = "jobmeta"

	var (
		inputs         arrayFlags
		outputs        arrayFlags
		paramPairs     arrayFlags
		paramFiles     arrayFlags
		stampInfoFiles arrayFlags
	)

	var (
		metadata   string
		date       string
		clock      string
		digestSpec string
		verifyPath string
	)

	fs := flag.NewFlagSet("jobmeta", flag.ContinueOnError)

	fs.Var(&inputs, "input", "input file path (repeatable)")
	fs.Var(&outputs, "output", "output file path (repeatable)")

	fs.Var(
		&paramPairs, "param",
		"parameter in KEY=VALUE format (repeatable)",
	)

	fs.Var(
		&paramFiles, "param-file",
		"YAML or JSON parameter mapping (repeatable, later wins)",
	)

	fs.Var(
		&stampInfoFiles, "stamp-info-file",
		"path to workspace status file (repeatable)",
	)

	fs.StringVar(
		&metadata, "metadata", "",
		"metadata file to write, {VAR} stamps expanded"+
			" (default: print to stdout)",
	)

	fs.StringVar(
		&date, "date", "",
		"completion date (default: today)",
	)

	fs.StringVar(
		&clock, "time", "",
		"completion time (default: now)",
	)

	fs.StringVar(
		&digestSpec, "digest", "sha1",
		"digest strategy: sha1, command or fixed:<value>",
	)

	fs.StringVar(
		&verifyPath, "verify", "",
		"verify digests of an existing metadata file and exit",
	)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	ctx := context.Background()

	dg, err := newDigester(digestSpec)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if verifyPath != "" {
		if err := verify(ctx, verifyPath, dg); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	stamps, err := params.LoadStamps(stampInfoFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	re := record.New()

	for _, pf := range paramFiles {
		ps, err := params.LoadFile(pf)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		params.ExpandValues(ps, stamps)
		re.AddParams(ps)
	}

	expanded := make([]string, 0, len(paramPairs))
	for _, pair := range paramPairs {
		expanded = append(expanded, params.Expand(pair, stamps))
	}

	ps, err := params.ParseAssignments(expanded)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	re.AddParams(ps)

	for _, in := range inputs {
		re.AddInput(in)
	}

	for _, out := range outputs {
		re.AddOutput(out)
	}

	re.SetCompletion(time.Now())

	if date != "" {
		re.Date = date
	}

	if clock != "" {
		re.Time = clock
	}

	dest := params.Expand(metadata, stamps)

	if _, err := record.Finalize(ctx, re, dest, dg); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if dest == record.NoWrite {
		content, err := record.Marshal(re)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if _, err := stdout.Write(content); err != nil {
			return fmt.Errorf(
				"%s: writing to stdout: %w",
				errCtx, err,
			)
		}
	}

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
