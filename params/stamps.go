package params

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadStamps reads workspace status files and merges them
// into a single map. Each line is "KEY VALUE" with the
// first space as delimiter. Lines without a space are
// skipped; later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]interface{}, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]interface{})

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		for _, line := range strings.Split(
			strings.ReplaceAll(string(content), "\r\n", "\n"), "\n",
		) {
			if key, val, ok := strings.Cut(line, " "); ok {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// Expand substitutes {VAR} placeholders in format with
// stamp values. Unknown placeholders are left untouched.
func Expand(format string, stamps map[string]interface{}) string {
	if len(stamps) == 0 {
		return format
	}

	return fasttemplate.ExecuteStringStd(format, "{", "}", stamps)
}

// ExpandValues applies Expand to every string in ps, nested
// mappings and sequences included. Keys and non-string
// values are left as they are; ps is updated in place.
func ExpandValues(ps map[string]any, stamps map[string]interface{}) {
	if len(stamps) == 0 {
		return
	}

	for key, val := range ps {
		ps[key] = expandValue(val, stamps)
	}
}

func expandValue(val any, stamps map[string]interface{}) any {
	switch tv := val.(type) {
	case string:
		return Expand(tv, stamps)
	case map[string]any:
		ExpandValues(tv, stamps)
		return tv
	case []any:
		for i, el := range tv {
			tv[i] = expandValue(el, stamps)
		}

		return tv
	default:
		return val
	}
}
