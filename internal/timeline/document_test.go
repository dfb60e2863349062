package timeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDocumentIdempotent(t *testing.T) {
	end := 12.5
	doc := Document{
		DialogueTimestamps: []DialogueInterval{
			{StartTime: 1, EndTime: 2.9, Duration: 2.0, AudioText: "hello", SequenceNum: 1},
		},
		AudioClips: []AudioClip{
			{StartTime: 0.5, EndTime: &end, DescriptionStyle: "inline", Text: "a door opens"},
		},
	}

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := WriteDocument(first, doc); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	if err := WriteDocument(second, doc); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Expected byte-identical output for identical input")
	}
}

func TestWriteDocumentEmptyListsAreArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := WriteDocument(path, Document{}); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"dialogue_timestamps": []`) {
		t.Errorf("Expected empty dialogue list to serialize as [], got:\n%s", content)
	}
	if !strings.Contains(content, `"audio_clips": []`) {
		t.Errorf("Expected empty clip list to serialize as [], got:\n%s", content)
	}
}

func TestLoadDocumentRoundTrip(t *testing.T) {
	doc := Document{
		DialogueTimestamps: []DialogueInterval{
			{StartTime: 3, EndTime: 4.9, Duration: 2.0, SequenceNum: 1},
		},
		AudioClips: []AudioClip{
			{StartTime: 0.5, Type: "Visual", DescriptionStyle: "inline", Text: "a door opens"},
		},
	}
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	loaded, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if len(loaded.DialogueTimestamps) != 1 || len(loaded.AudioClips) != 1 {
		t.Fatalf("Round trip lost entries: %+v", loaded)
	}
	if loaded.AudioClips[0].EndTime != nil {
		t.Error("Expected absent end_time to stay absent through a round trip")
	}
	if loaded.AudioClips[0].Type != "Visual" {
		t.Errorf("Expected clip type to survive, got %q", loaded.AudioClips[0].Type)
	}
}

func TestLoadScenesMissingFile(t *testing.T) {
	if _, err := LoadScenes(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected an error for a missing scenes file")
	}
}
