package params

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// LoadFile reads a parameter file holding a single YAML
// (or JSON) mapping. Nested values are kept as decoded.
func LoadFile(path string) (map[string]any, error) {
	const errCtx = "loading parameter file"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ps := make(map[string]any)

	if err := yaml.Unmarshal(content, &ps); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return ps, nil
}

// ParseAssignments converts KEY=VALUE pairs into a parameter
// map. VALUE is decoded as a YAML scalar so numbers and
// booleans keep their type; anything else stays a string.
// Later pairs override earlier ones.
func ParseAssignments(pairs []string) (map[string]any, error) {
	const errCtx = "parsing parameters"

	ps := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf(
				"%s: %q is not KEY=VALUE", errCtx, pair,
			)
		}

		ps[strings.TrimSpace(key)] = scalar(val)
	}

	return ps, nil
}

func scalar(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	// Only keep the typed value when it prints back as the
	// exact input, so "1.10", "007" or "0x1F" stay strings.
	var canon string

	switch tv := v.(type) {
	case bool:
		canon = strconv.FormatBool(tv)
	case int:
		canon = strconv.Itoa(tv)
	case int64:
		canon = strconv.FormatInt(tv, 10)
	case uint64:
		canon = strconv.FormatUint(tv, 10)
	case float64:
		if math.IsInf(tv, 0) || math.IsNaN(tv) {
			return raw
		}

		canon = strconv.FormatFloat(tv, 'f', -1, 64)
	default:
		return raw
	}

	if canon != raw {
		return raw
	}

	return v
}
