package record

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// document is the persisted shape. Field order is the
// serialization order.
type document struct {
	Inputs     []*Entry       `json:"inputs"`
	Parameters map[string]any `json:"parameters"`
	Outputs    []*Entry       `json:"outputs"`
	Date       *string        `json:"date"`
	Time       *string        `json:"time"`
}

func newDocument(re *Record) document {
	doc := document{
		Inputs:     re.Inputs,
		Parameters: re.Parameters,
		Outputs:    re.Outputs,
		Date:       nullable(re.Date),
		Time:       nullable(re.Time),
	}

	if doc.Inputs == nil {
		doc.Inputs = []*Entry{}
	}

	if doc.Outputs == nil {
		doc.Outputs = []*Entry{}
	}

	if doc.Parameters == nil {
		doc.Parameters = map[string]any{}
	}

	return doc
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Marshal renders the record as the indented JSON document
// Finalize writes, without computing any digest.
func Marshal(re *Record) ([]byte, error) {
	const errCtx = "marshaling record"

	buf, err := json.MarshalIndent(newDocument(re), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return append(buf, '\n'), nil
}

// Load reads a document written by Finalize back into a
// Record. Null date and time become empty strings.
// Parameter values come back as decoded JSON: numbers are
// float64, mappings map[string]any and sequences []any, so an
// int parameter is not Equal to its loaded copy.
func Load(path string) (*Record, error) {
	const errCtx = "loading record"

	content, err := os.ReadFile(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var doc document

	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	re := &Record{
		Inputs:     doc.Inputs,
		Outputs:    doc.Outputs,
		Parameters: doc.Parameters,
	}

	if re.Parameters == nil {
		re.Parameters = make(map[string]any)
	}

	if doc.Date != nil {
		re.Date = *doc.Date
	}

	if doc.Time != nil {
		re.Time = *doc.Time
	}

	return re, nil
}

func writeFile(path string, content []byte) (retErr error) {
	const errCtx = "writing record"

	fo, err := os.OpenFile( //nolint:gosec // path is caller-provided by design
		path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fo.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if _, err := fo.Write(content); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
