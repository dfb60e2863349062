package eval

import (
	"strings"
	"testing"

	"github.com/adbench/adeval/internal/timeline"
)

func TestBuildPromptEmbedsDocument(t *testing.T) {
	doc := timeline.Document{
		DialogueTimestamps: []timeline.DialogueInterval{
			{StartTime: 1, EndTime: 2.9, Duration: 2.0, SequenceNum: 1},
		},
		AudioClips: []timeline.AudioClip{
			{StartTime: 0.5, DescriptionStyle: "inline", Text: "A woman walks through the doorway into a bright kitchen."},
		},
	}

	prompt, err := BuildPrompt(doc)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if !strings.Contains(prompt, `"dialogue_timestamps"`) || !strings.Contains(prompt, `"audio_clips"`) {
		t.Error("Expected the serialized timeline document in the prompt")
	}
	if !strings.Contains(prompt, "A woman walks through the doorway") {
		t.Error("Expected clip text to appear in the prompt")
	}
	if !strings.Contains(prompt, "English") {
		t.Error("Expected the detected AD language in the prompt")
	}
	if !strings.Contains(prompt, "Track Placement") {
		t.Error("Expected the evaluation criteria in the prompt")
	}
}

func TestBuildPromptEmptyClipsDefaultsToEnglish(t *testing.T) {
	prompt, err := BuildPrompt(timeline.Document{})
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if !strings.Contains(prompt, "English") {
		t.Error("Expected English as the fallback language for empty AD text")
	}
}
