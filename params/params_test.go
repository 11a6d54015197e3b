package params_test

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/provenance/params"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

func TestLoadFile_yaml(t *testing.T) {
	t.Parallel()

	pf := writeTemp(
		t, t.TempDir(), "params.yaml",
		"threshold: 5\nlabel: run-a\nenabled: true\nbands:\n  - 1\n  - 2\n",
	)

	ps, err := params.LoadFile(pf)

	require.NoError(t, err)
	assert.EqualValues(t, 5, ps["threshold"])
	assert.Equal(t, "run-a", ps["label"])
	assert.Equal(t, true, ps["enabled"])
	assert.Len(t, ps["bands"], 2)
}

func TestLoadFile_json(t *testing.T) {
	t.Parallel()

	pf := writeTemp(
		t, t.TempDir(), "params.json",
		`{"threshold": 5, "label": "run-a"}`,
	)

	ps, err := params.LoadFile(pf)

	require.NoError(t, err)
	assert.EqualValues(t, 5, ps["threshold"])
	assert.Equal(t, "run-a", ps["label"])
}

func TestLoadFile_missing(t *testing.T) {
	t.Parallel()

	_, err := params.LoadFile("/nonexistent/params.yaml")

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "loading parameter file")
}

func TestLoadFile_not_a_mapping(t *testing.T) {
	t.Parallel()

	pf := writeTemp(t, t.TempDir(), "list.yaml", "- a\n- b\n")

	_, err := params.LoadFile(pf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading parameter file")
}

func TestParseAssignments_typed_values(t *testing.T) {
	t.Parallel()

	ps, err := params.ParseAssignments([]string{
		"threshold=5",
		"ratio=1.5",
		"dry_run=false",
		"label=run a",
		"expr=a: b",
		"empty=",
		"version=1.10",
		"id=007",
		"hex=0x1F",
		"limit=.inf",
		"nan=.nan",
		"plus=+5",
		"big=1e3",
		"upper=TRUE",
		"neg=-3",
	})

	require.NoError(t, err)
	assert.EqualValues(t, 5, ps["threshold"])
	assert.EqualValues(t, 1.5, ps["ratio"])
	assert.Equal(t, false, ps["dry_run"])
	assert.Equal(t, "run a", ps["label"])
	assert.Equal(t, "a: b", ps["expr"])
	assert.Equal(t, "", ps["empty"])
	assert.Equal(t, "1.10", ps["version"])
	assert.Equal(t, "007", ps["id"])
	assert.Equal(t, "0x1F", ps["hex"])
	assert.Equal(t, ".inf", ps["limit"])
	assert.Equal(t, ".nan", ps["nan"])
	assert.Equal(t, "+5", ps["plus"])
	assert.Equal(t, "1e3", ps["big"])
	assert.Equal(t, "TRUE", ps["upper"])
	assert.EqualValues(t, -3, ps["neg"])
}

func TestParseAssignments_values_stay_serializable(t *testing.T) {
	t.Parallel()

	ps, err := params.ParseAssignments([]string{
		"limit=.inf", "low=-.inf", "nan=.NaN",
	})
	require.NoError(t, err)

	_, err = json.Marshal(ps)
	assert.NoError(t, err)
}

func TestParseAssignments_last_wins(t *testing.T) {
	t.Parallel()

	ps, err := params.ParseAssignments([]string{"k=1", "k=two"})

	require.NoError(t, err)
	assert.Len(t, ps, 1)
	assert.Equal(t, "two", ps["k"])
}

func TestParseAssignments_value_with_equals(t *testing.T) {
	t.Parallel()

	ps, err := params.ParseAssignments([]string{"query=a=b"})

	require.NoError(t, err)
	assert.Equal(t, "a=b", ps["query"])
}

func TestParseAssignments_rejects_malformed(t *testing.T) {
	t.Parallel()

	for _, pair := range []string{"novalue", "=5", " =x"} {
		_, err := params.ParseAssignments([]string{pair})
		assert.Error(t, err, pair)
	}
}

func TestLoadStamps_returns_map(t *testing.T) {
	t.Parallel()

	sf := writeTemp(
		t, t.TempDir(), "status.txt",
		"BUILD_USER alice\r\nGIT_SHA deadbeef\nBADLINE\n\nMSG hello world\n",
	)

	stamps, err := params.LoadStamps([]string{sf})

	require.NoError(t, err)
	assert.Len(t, stamps, 3)
	assert.Equal(t, "alice", stamps["BUILD_USER"])
	assert.Equal(t, "deadbeef", stamps["GIT_SHA"])
	assert.Equal(t, "hello world", stamps["MSG"])
}

func TestLoadStamps_later_file_overrides_earlier(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sf1 := writeTemp(t, dir, "s1.txt", "VER 1.0\n")
	sf2 := writeTemp(t, dir, "s2.txt", "VER 2.0\n")

	stamps, err := params.LoadStamps([]string{sf1, sf2})

	require.NoError(t, err)
	assert.Equal(t, "2.0", stamps["VER"])
}

func TestLoadStamps_missing_file(t *testing.T) {
	t.Parallel()

	_, err := params.LoadStamps([]string{"/nonexistent/stamp.txt"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading stamps")
}

func TestExpand(t *testing.T) {
	t.Parallel()

	stamps := map[string]interface{}{"GIT_SHA": "deadbeef"}

	assert.Equal(
		t,
		"meta-deadbeef-{UNKNOWN}.json",
		params.Expand("meta-{GIT_SHA}-{UNKNOWN}.json", stamps),
	)
	assert.Equal(t, "meta.json", params.Expand("meta.json", nil))
}

func FuzzExpand(f *testing.F) {
	f.Add("Hello {name}!", "name", "World")
	f.Add("{", "k", "v")
	f.Add("}", "k", "v")
	f.Add("", "key", "val")

	f.Fuzz(func(t *testing.T, format, key, val string) {
		// We only verify it does not panic.
		_ = params.Expand(format, map[string]interface{}{key: val})
	})
}

func TestExpandValues_nested(t *testing.T) {
	t.Parallel()

	ps := map[string]any{
		"label":  "build-{GIT_SHA}",
		"count":  3,
		"nested": map[string]any{"ref": "{GIT_SHA}"},
		"list":   []any{"{GIT_SHA}", 1, "{UNKNOWN}"},
	}

	params.ExpandValues(ps, map[string]interface{}{"GIT_SHA": "deadbeef"})

	assert.Equal(t, map[string]any{
		"label":  "build-deadbeef",
		"count":  3,
		"nested": map[string]any{"ref": "deadbeef"},
		"list":   []any{"deadbeef", 1, "{UNKNOWN}"},
	}, ps)
}

func TestExpandValues_no_stamps(t *testing.T) {
	t.Parallel()

	ps := map[string]any{"label": "{GIT_SHA}"}

	params.ExpandValues(ps, nil)

	assert.Equal(t, "{GIT_SHA}", ps["label"])
}
