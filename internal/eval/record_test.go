package eval

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRecordValid(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
		want bool
	}{
		{
			name: "summary only",
			rec:  Record{"evaluation_summary": map[string]any{"overall_quality_rating": "4"}},
			want: true,
		},
		{
			name: "summary with ratings",
			rec: Record{
				"evaluation_summary": map[string]any{"overall_quality_rating": "4"},
				"criteria_ratings": map[string]any{
					"track_placement": map[string]any{"rating": "5", "justification": "well timed"},
				},
			},
			want: true,
		},
		{
			name: "missing summary",
			rec:  Record{"criteria_ratings": map[string]any{}},
			want: false,
		},
		{
			name: "rating entry without a rating",
			rec: Record{
				"evaluation_summary": map[string]any{},
				"criteria_ratings": map[string]any{
					"track_placement": map[string]any{"justification": "no score"},
				},
			},
			want: false,
		},
		{
			name: "ratings not an object",
			rec: Record{
				"evaluation_summary": map[string]any{},
				"criteria_ratings":   "great",
			},
			want: false,
		},
	}

	for _, tc := range cases {
		if got := tc.rec.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWriteRecordDeterministic(t *testing.T) {
	rec := Record{
		"evaluation_summary": map[string]any{"overall_quality_rating": "4", "strengths": "clear"},
		"criteria_ratings":   map[string]any{"track_placement": map[string]any{"rating": "5"}},
	}

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := WriteRecord(first, rec); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	if err := WriteRecord(second, rec); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Error("Expected identical records to serialize identically")
	}

	var parsed Record
	if err := json.Unmarshal(a, &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if !parsed.Valid() {
		t.Error("Expected the written record to round-trip as valid")
	}
}
