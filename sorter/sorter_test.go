package sorter_test

import (
	"testing"

	"github.com/crudkit-go/crudkit/sorter"
	"github.com/stretchr/testify/assert"
)

func TestMakeFromStr(t *testing.T) {
	t.Parallel()

	allowed := []string{"name", "created_at"}

	tests := []struct {
		name  string
		input string
		want  sorter.SortOpts
	}{
		{
			name:  "empty string yields nil",
			input: "",
			want:  nil,
		},
		{
			name:  "single option",
			input: "name:asc",
			want:  sorter.Make(sorter.Opt{F: "name", D: sorter.Asc}),
		},
		{
			name:  "multiple options keep order",
			input: "name:asc,created_at:desc",
			want: sorter.Make(
				sorter.Opt{F: "name", D: sorter.Asc},
				sorter.Opt{F: "created_at", D: sorter.Desc},
			),
		},
		{
			name:  "disallowed field dropped",
			input: "name:asc,age:desc",
			want:  sorter.Make(sorter.Opt{F: "name", D: sorter.Asc}),
		},
		{
			name:  "unknown direction dropped",
			input: "name:ascending,created_at:desc",
			want:  sorter.Make(sorter.Opt{F: "created_at", D: sorter.Desc}),
		},
		{
			name:  "malformed pair without colon dropped",
			input: "name_asc,created_at:desc",
			want:  sorter.Make(sorter.Opt{F: "created_at", D: sorter.Desc}),
		},
		{
			name:  "surrounding spaces trimmed",
			input: " name : asc , created_at : desc ",
			want: sorter.Make(
				sorter.Opt{F: "name", D: sorter.Asc},
				sorter.Opt{F: "created_at", D: sorter.Desc},
			),
		},
		{
			name:  "direction is case insensitive",
			input: "name:ASC,created_at:DESC",
			want: sorter.Make(
				sorter.Opt{F: "name", D: sorter.Asc},
				sorter.Opt{F: "created_at", D: sorter.Desc},
			),
		},
		{
			name:  "empty pairs skipped",
			input: ",,name:asc,,created_at:desc,,",
			want: sorter.Make(
				sorter.Opt{F: "name", D: sorter.Asc},
				sorter.Opt{F: "created_at", D: sorter.Desc},
			),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, sorter.MakeFromStr(tc.input, allowed...))
		})
	}
}

func TestOptToSQL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name asc", sorter.Opt{F: "name", D: sorter.Asc}.ToSQL())
	assert.Equal(t, "created_at desc", sorter.Opt{F: "created_at", D: sorter.Desc}.ToSQL())
}

func TestSortOptsClauseOrder(t *testing.T) {
	t.Parallel()

	opts := sorter.MakeFromStr(
		"name:asc,created_at:desc,status:asc",
		"name", "created_at", "status", "updated_at",
	)

	clauses := make([]string, 0, len(opts))
	for _, opt := range opts {
		clauses = append(clauses, opt.ToSQL())
	}

	assert.Equal(t, []string{"name asc", "created_at desc", "status asc"}, clauses)
}
