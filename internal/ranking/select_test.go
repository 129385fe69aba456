package ranking

import (
	"testing"

	"resumematch/internal/domain"
)

func names(docs []domain.ScoredDocument) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Name
	}
	return out
}

func TestSelect_Table(t *testing.T) {
	tests := []struct {
		name       string
		candidates []domain.ScoredDocument
		limit      int
		expect     []string
	}{
		{
			name:   "empty",
			limit:  3,
			expect: []string{},
		},
		{
			name: "fewer than limit are not padded",
			candidates: []domain.ScoredDocument{
				{Name: "a", Score: 0.1},
				{Name: "b", Score: 0.7},
			},
			limit:  3,
			expect: []string{"b", "a"},
		},
		{
			name: "limit applied",
			candidates: []domain.ScoredDocument{
				{Name: "a", Score: 0.1},
				{Name: "b", Score: 0.9},
				{Name: "c", Score: 0.5},
				{Name: "d", Score: 0.7},
			},
			limit:  3,
			expect: []string{"b", "d", "c"},
		},
		{
			name: "ties keep corpus order",
			candidates: []domain.ScoredDocument{
				{Name: "a", Score: 0},
				{Name: "b", Score: 0.4},
				{Name: "c", Score: 0},
				{Name: "d", Score: 0.4},
				{Name: "e", Score: 0},
			},
			limit:  4,
			expect: []string{"b", "d", "a", "c"},
		},
		{
			name: "duplicate names keep best occurrence",
			candidates: []domain.ScoredDocument{
				{Name: "a", Score: 0.2, SourcePath: "/old"},
				{Name: "b", Score: 0.3},
				{Name: "a", Score: 0.8, SourcePath: "/new"},
			},
			limit:  3,
			expect: []string{"a", "b"},
		},
		{
			name: "non-positive limit uses default",
			candidates: []domain.ScoredDocument{
				{Name: "a", Score: 0.4}, {Name: "b", Score: 0.3}, {Name: "c", Score: 0.2}, {Name: "d", Score: 0.1},
			},
			limit:  0,
			expect: []string{"a", "b", "c"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Select(tc.candidates, tc.limit)
			gotNames := names(got)
			if len(gotNames) != len(tc.expect) {
				t.Fatalf("expected %v, got %v", tc.expect, gotNames)
			}
			for i := range gotNames {
				if gotNames[i] != tc.expect[i] {
					t.Fatalf("expected %v, got %v", tc.expect, gotNames)
				}
			}
			seen := map[string]bool{}
			for i, d := range got {
				if seen[d.Name] {
					t.Fatalf("name %q repeated", d.Name)
				}
				seen[d.Name] = true
				if i > 0 && got[i-1].Score < d.Score {
					t.Fatalf("not sorted: %+v", got)
				}
			}
		})
	}
}

func TestSelect_DuplicateKeepsFirstInScan(t *testing.T) {
	got := Select([]domain.ScoredDocument{
		{Name: "a", Score: 0.2, SourcePath: "/old"},
		{Name: "a", Score: 0.8, SourcePath: "/new"},
	}, 3)
	if len(got) != 1 || got[0].SourcePath != "/new" {
		t.Fatalf("expected single /new entry, got %+v", got)
	}
}

func TestScoredDocument_Percent(t *testing.T) {
	d := domain.ScoredDocument{Score: 0.4321}
	if p := d.Percent(); p < 43.20 || p > 43.22 {
		t.Fatalf("unexpected percent %v", p)
	}
}
