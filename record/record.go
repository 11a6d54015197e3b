package record

import "time"

// Entry is one input or output file. An empty SHA1 means the
// digest has not been computed yet.
type Entry struct {
	Path string `json:"path"`
	SHA1 string `json:"sha1,omitempty"`
}

// Record holds the provenance of one job. Date and Time are
// free-form and left to the caller; empty means unset.
type Record struct {
	Inputs     []*Entry
	Outputs    []*Entry
	Parameters map[string]any
	Date       string
	Time       string
}

// New returns an empty Record.
func New() *Record {
	return &Record{Parameters: make(map[string]any)}
}

// AddInput appends an input entry for path. The path is
// neither checked nor deduplicated.
func (re *Record) AddInput(path string) *Entry {
	en := &Entry{Path: path}
	re.Inputs = append(re.Inputs, en)

	return en
}

// AddOutput appends an output entry for path.
func (re *Record) AddOutput(path string) *Entry {
	en := &Entry{Path: path}
	re.Outputs = append(re.Outputs, en)

	return en
}

// AddParam sets a parameter, overwriting any previous value
// for key.
func (re *Record) AddParam(key string, value any) {
	if re.Parameters == nil {
		re.Parameters = make(map[string]any)
	}

	re.Parameters[key] = value
}

// AddParams calls AddParam for every pair in ps.
func (re *Record) AddParams(ps map[string]any) {
	for key, val := range ps {
		re.AddParam(key, val)
	}
}

// SetCompletion stamps Date and Time from t as
// "2006-01-02" and "15:04:05".
func (re *Record) SetCompletion(t time.Time) {
	re.Date = t.Format(time.DateOnly)
	re.Time = t.Format(time.TimeOnly)
}
