package clips

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/adbench/adeval/internal/timeline"
)

// Positional columns of the repaired single-column export.
const (
	repairStyleColumn = 14
	repairStartColumn = 15
	repairTextColumn  = 18
)

// Extract reads a header-keyed CSV shared across many videos and returns the
// clips belonging to one video/AD-track pair, sorted ascending by start time.
// Rows that cannot be coerced are skipped with a diagnostic; only a missing
// file or unreadable header aborts the batch.
func Extract(csvPath, videoID, audioDescriptionID string) ([]timeline.AudioClip, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header from %s: %v", csvPath, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var clips []timeline.AudioClip
	for rowNum := 2; ; rowNum++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("Warning: could not read row %d in CSV: %v", rowNum, err)
			continue
		}
		if field(row, columns, "youtube_id") != videoID ||
			field(row, columns, "audio_description_id") != audioDescriptionID {
			continue
		}

		start, err := strconv.ParseFloat(field(row, columns, "audio_clip_start_time"), 64)
		if err != nil {
			log.Printf("Warning: could not process row %d in CSV: bad start time: %v", rowNum, err)
			continue
		}
		clip := timeline.AudioClip{
			StartTime:        start,
			DescriptionStyle: field(row, columns, "audio_clip_playback_type"),
			Text:             field(row, columns, "audio_clip_transcript"),
		}
		if end, err := strconv.ParseFloat(field(row, columns, "audio_clip_end_time"), 64); err == nil {
			clip.EndTime = &end
		}
		clips = append(clips, clip)
	}

	Sort(clips)
	return clips, nil
}

// ExtractRepaired reads the degenerate export where every logical row is
// packed into a single CSV column and must be re-split on embedded commas
// before column access. These rows carry no end time, so none is fabricated.
func ExtractRepaired(csvPath string) ([]timeline.AudioClip, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var clips []timeline.AudioClip
	for rowNum := 1; ; rowNum++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("Warning: could not read row %d in CSV: %v", rowNum, err)
			continue
		}
		if len(row) == 0 {
			continue
		}

		fields := strings.Split(row[0], ",")
		if len(fields) <= repairTextColumn {
			log.Printf("Warning: could not process row %d in CSV: only %d columns after repair", rowNum, len(fields))
			continue
		}
		start, err := strconv.ParseFloat(strings.TrimSpace(fields[repairStartColumn]), 64)
		if err != nil {
			log.Printf("Warning: could not process row %d in CSV: bad start time: %v", rowNum, err)
			continue
		}
		clips = append(clips, timeline.AudioClip{
			StartTime:        start,
			Type:             "Visual",
			DescriptionStyle: fields[repairStyleColumn],
			Text:             fields[repairTextColumn],
		})
	}

	Sort(clips)
	return clips, nil
}

// Sort orders clips ascending by start time. The sort is stable: clips with
// equal start times keep their input order.
func Sort(clips []timeline.AudioClip) {
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].StartTime < clips[j].StartTime
	})
}

func field(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
