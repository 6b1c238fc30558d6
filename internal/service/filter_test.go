package service

import (
	"testing"

	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/testutil"
)

func ids(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestFilterRecipes(t *testing.T) {
	recipes := testutil.TestRecipes()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter keeps all", Filter{}, []string{"a", "b", "c", "d"}},
		{"query on name", Filter{Query: "pasta"}, []string{"c"}},
		{"query on description", Filter{Query: "GREENS"}, []string{"a"}},
		{"query on tag", Filter{Query: "sea"}, []string{"d"}},
		{"any tag", Filter{Tags: []string{"quick", "comfort food"}}, []string{"a", "b"}},
		{"tags case-insensitive", Filter{Tags: []string{"Italian"}}, []string{"c"}},
		{"difficulty", Filter{Difficulties: []string{"EASY"}}, []string{"a", "d"}},
		{"max total time", Filter{MaxTotalTime: 45}, []string{"a", "c", "d"}},
		{"min rating", Filter{MinRating: 4.5}, []string{"a", "b"}},
		{"conjunctive", Filter{Difficulties: []string{"easy"}, MinRating: 4.2}, []string{"a"}},
		{"no match", Filter{Query: "tofu"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterRecipes(recipes, tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("FilterRecipes() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FilterRecipes()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilterRecipes_SubsetOfInput(t *testing.T) {
	recipes := testutil.TestRecipes()
	filters := []Filter{
		{Query: "a"},
		{Tags: []string{"asian", "italian"}},
		{MaxTotalTime: 1},
		{Difficulties: []string{"medium", "hard"}, MinRating: 1},
	}

	for _, f := range filters {
		out := FilterRecipes(recipes, f)
		if len(out) > len(recipes) {
			t.Fatalf("output longer than input for %+v", f)
		}
		// Output must appear in input order.
		j := 0
		for _, r := range out {
			for j < len(recipes) && recipes[j].ID != r.ID {
				j++
			}
			if j == len(recipes) {
				t.Fatalf("recipe %q not found in order for %+v", r.ID, f)
			}
			j++
		}
	}
}

func TestFilter_IsEmpty(t *testing.T) {
	if !(Filter{Query: "  "}).IsEmpty() {
		t.Error("blank query should be empty")
	}
	if (Filter{MinRating: 1}).IsEmpty() {
		t.Error("MinRating filter should not be empty")
	}
}
