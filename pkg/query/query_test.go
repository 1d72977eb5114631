package query_test

import (
	"testing"

	"github.com/jtgreer/vigil/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "analyses", "a").
		Project("id", "ID").
		Project("filename", "Filename").
		Project("created_at", "CreatedAt")
}

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	got := p.From()
	want := "public.analyses a"
	if got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumn(t *testing.T) {
	p := testProjection()

	if got := p.Column("Filename"); got != "a.filename" {
		t.Errorf("Column(Filename) = %q, want a.filename", got)
	}
	if got := p.Column("Unmapped"); got != "Unmapped" {
		t.Errorf("Column(Unmapped) = %q, want passthrough", got)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "a.id, a.filename, a.created_at"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "single ascending",
			input: "filename",
			want:  []query.SortField{{Field: "filename", Descending: false}},
		},
		{
			name:  "single descending",
			input: "-createdAt",
			want:  []query.SortField{{Field: "createdAt", Descending: true}},
		},
		{
			name:  "multiple mixed",
			input: "filename,-createdAt",
			want: []query.SortField{
				{Field: "filename", Descending: false},
				{Field: "createdAt", Descending: true},
			},
		},
		{
			name:  "with spaces",
			input: " filename , -createdAt ",
			want: []query.SortField{
				{Field: "filename", Descending: false},
				{Field: "createdAt", Descending: true},
			},
		},
		{
			name:  "empty parts skipped",
			input: "filename,,createdAt",
			want: []query.SortField{
				{Field: "filename", Descending: false},
				{Field: "createdAt", Descending: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseSortFields(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.Build()

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a"
	if sql != wantSQL {
		t.Errorf("Build() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.analyses a"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	sql, args := b.BuildPage(2, 10)

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a ORDER BY a.created_at DESC LIMIT 10 OFFSET 10"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildPage() args = %v, want empty", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildSingle("ID", "abc-123")

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a WHERE a.id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("BuildSingle() args = %v, want [abc-123]", args)
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	label := "red"
	b := query.NewBuilder(testProjection()).WhereEquals("Filename", &label)
	sql, args := b.Build()

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a WHERE a.filename = $1"
	if sql != wantSQL {
		t.Errorf("WhereEquals sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 {
		t.Fatalf("args length = %d, want 1", len(args))
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	var nothing *string
	b := query.NewBuilder(testProjection()).WhereEquals("Filename", nothing)
	sql, args := b.Build()

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a"
	if sql != wantSQL {
		t.Errorf("nil WhereEquals sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereContains(t *testing.T) {
	needle := "site"
	b := query.NewBuilder(testProjection()).WhereContains("Filename", &needle)
	sql, args := b.Build()

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a WHERE a.filename ILIKE $1"
	if sql != wantSQL {
		t.Errorf("WhereContains sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%site%" {
		t.Errorf("args = %v, want [%%site%%]", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	needle := "needle"
	b := query.NewBuilder(testProjection()).WhereSearch(&needle, "Filename", "ID")
	sql, args := b.Build()

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a WHERE (a.filename ILIKE $1 OR a.id ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("WhereSearch sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 {
		t.Fatalf("args length = %d, want 2", len(args))
	}
}

func TestBuilderConditionNumbering(t *testing.T) {
	label := "red"
	needle := "site"
	b := query.NewBuilder(testProjection()).
		WhereEquals("ID", &label).
		WhereContains("Filename", &needle)
	sql, args := b.Build()

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a WHERE a.id = $1 AND a.filename ILIKE $2"
	if sql != wantSQL {
		t.Errorf("combined sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 {
		t.Fatalf("args length = %d, want 2", len(args))
	}
}

func TestBuilderOrderByFieldsOverridesDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	b.OrderByFields([]query.SortField{{Field: "Filename"}})
	sql, _ := b.Build()

	wantSQL := "SELECT a.id, a.filename, a.created_at FROM public.analyses a ORDER BY a.filename ASC"
	if sql != wantSQL {
		t.Errorf("OrderByFields sql = %q, want %q", sql, wantSQL)
	}
}
