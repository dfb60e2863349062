package eval

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record is the model's structured judgment. The schema is a contract with
// the prompt rather than self-describing, and ratings arrive as strings or
// numbers depending on the model, so the shape stays dynamic here and is
// checked structurally instead.
type Record map[string]any

// Valid reports whether the record is a well-formed evaluation: it must carry
// the top-level evaluation summary, and any criteria ratings present must be
// objects carrying a rating.
func (r Record) Valid() bool {
	if _, ok := r["evaluation_summary"]; !ok {
		return false
	}
	if ratings, ok := r["criteria_ratings"]; ok {
		m, ok := ratings.(map[string]any)
		if !ok {
			return false
		}
		for _, v := range m {
			entry, ok := v.(map[string]any)
			if !ok {
				return false
			}
			if _, ok := entry["rating"]; !ok {
				return false
			}
		}
	}
	return true
}

// WriteRecord persists the record as the terminal artifact of a run. Map keys
// marshal in sorted order, so the output is deterministic.
func WriteRecord(path string, record Record) error {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode evaluation record: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}
