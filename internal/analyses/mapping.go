package analyses

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jtgreer/vigil/pkg/query"
	"github.com/jtgreer/vigil/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("seq", "Seq").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("storage_key", "StorageKey").
	Project("label", "Label").
	Project("degraded", "Degraded").
	Project("classification", "Classification").
	Project("raw_response", "Raw").
	Project("created_at", "Timestamp")

// seq is a monotonic insertion counter; sorting on it keeps same-timestamp
// records in insertion order.
var defaultSort = query.SortField{
	Field:      "Seq",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. Label, Degraded, and ContentType use exact
// matching; Filename uses case-insensitive contains matching.
type Filters struct {
	Label       *string `json:"label,omitempty"`
	Degraded    *bool   `json:"degraded,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Label", f.Label).
		WhereEquals("Degraded", f.Degraded).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	if d := values.Get("degraded"); d != "" {
		if v, err := strconv.ParseBool(d); err == nil {
			f.Degraded = &v
		}
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var (
		a   Analysis
		cls []byte
		raw []byte
	)

	err := s.Scan(
		&a.ID,
		&a.Seq,
		&a.Filename,
		&a.ContentType,
		&a.SizeBytes,
		&a.StorageKey,
		&a.Label,
		&a.Degraded,
		&cls,
		&raw,
		&a.Timestamp,
	)
	if err != nil {
		return a, err
	}

	if err := json.Unmarshal(cls, &a.Classification); err != nil {
		return a, fmt.Errorf("decode classification for %s: %w", a.ID, err)
	}
	a.Raw = json.RawMessage(raw)

	return a, nil
}
