package clips

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adbench/adeval/internal/timeline"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestExtractFiltersAndSorts(t *testing.T) {
	csv := "youtube_id,audio_description_id,audio_clip_playback_type,audio_clip_start_time,audio_clip_end_time,audio_clip_transcript\n" +
		"vid1,ad1,inline,12.5,14.0,second clip\n" +
		"vid1,ad2,inline,1.0,2.0,other track\n" +
		"vid2,ad1,inline,3.0,4.0,other video\n" +
		"vid1,ad1,extended,4.25,9.0,first clip\n"
	path := writeFile(t, "clips.csv", csv)

	clips, err := Extract(path, "vid1", "ad1")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("Expected 2 clips after filtering, got %d", len(clips))
	}
	if clips[0].Text != "first clip" || clips[1].Text != "second clip" {
		t.Errorf("Expected clips sorted by start_time, got %q then %q", clips[0].Text, clips[1].Text)
	}
	if clips[0].EndTime == nil || *clips[0].EndTime != 9.0 {
		t.Errorf("Expected end_time 9.0, got %v", clips[0].EndTime)
	}
	if clips[0].DescriptionStyle != "extended" {
		t.Errorf("Expected description_style from playback type column, got %q", clips[0].DescriptionStyle)
	}
}

func TestExtractSkipsMalformedRows(t *testing.T) {
	csv := "youtube_id,audio_description_id,audio_clip_playback_type,audio_clip_start_time,audio_clip_end_time,audio_clip_transcript\n" +
		"vid1,ad1,inline,not-a-number,2.0,bad start\n" +
		"vid1,ad1,inline,5.0,6.0,good clip\n"
	path := writeFile(t, "clips.csv", csv)

	clips, err := Extract(path, "vid1", "ad1")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(clips) != 1 {
		t.Fatalf("Expected the malformed row to be dropped, got %d clips", len(clips))
	}
	if clips[0].Text != "good clip" {
		t.Errorf("Expected the valid row to survive, got %q", clips[0].Text)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "absent.csv"), "vid1", "ad1"); err == nil {
		t.Error("Expected an error for a missing CSV file")
	}
}

func TestExtractRepaired(t *testing.T) {
	// Each logical row is one quoted CSV field with embedded commas; the
	// repair pass re-splits it. Style, start and text live at fixed
	// positions 14, 15 and 18.
	row := func(style, start, text string) string {
		fields := make([]string, 20)
		for i := range fields {
			fields[i] = "x"
		}
		fields[14] = style
		fields[15] = start
		fields[18] = text
		quoted := "\""
		for i, f := range fields {
			if i > 0 {
				quoted += ","
			}
			quoted += f
		}
		return quoted + "\"\n"
	}
	csv := row("inline", "30.5", "late clip") +
		"\"too,few,columns\"\n" +
		row("extended", "oops", "bad start") +
		row("extended", "2.0", "early clip")
	path := writeFile(t, "human_vid1.csv", csv)

	clips, err := ExtractRepaired(path)
	if err != nil {
		t.Fatalf("ExtractRepaired failed: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("Expected 2 clips with malformed rows dropped, got %d", len(clips))
	}
	if clips[0].Text != "early clip" || clips[1].Text != "late clip" {
		t.Errorf("Expected clips sorted by start_time, got %q then %q", clips[0].Text, clips[1].Text)
	}
	for i, clip := range clips {
		if clip.Type != "Visual" {
			t.Errorf("Clip %d: expected type Visual, got %q", i, clip.Type)
		}
		if clip.EndTime != nil {
			t.Errorf("Clip %d: repaired rows carry no end time, got %v", i, *clip.EndTime)
		}
	}
}

func TestSortStable(t *testing.T) {
	clips := []timeline.AudioClip{
		{StartTime: 5, Text: "tie-a"},
		{StartTime: 1, Text: "lone"},
		{StartTime: 5, Text: "tie-b"},
		{StartTime: 5, Text: "tie-c"},
	}
	Sort(clips)

	want := []string{"lone", "tie-a", "tie-b", "tie-c"}
	for i, text := range want {
		if clips[i].Text != text {
			t.Errorf("Position %d: expected %q, got %q", i, text, clips[i].Text)
		}
	}
}
