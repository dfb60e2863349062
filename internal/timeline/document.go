package timeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadScenes reads a scene_info.json produced by the scene-detection step.
func LoadScenes(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scenes []Scene
	if err := json.Unmarshal(data, &scenes); err != nil {
		return nil, fmt.Errorf("could not decode scene data from %s: %v", path, err)
	}
	return scenes, nil
}

// LoadDocument reads a previously prepared timeline document.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("could not decode timeline document from %s: %v", path, err)
	}
	return doc, nil
}

// WriteDocument serializes the document with stable indentation. The encoding
// is fully deterministic, so re-running preparation over unchanged inputs
// yields byte-identical output.
func WriteDocument(path string, doc Document) error {
	if doc.DialogueTimestamps == nil {
		doc.DialogueTimestamps = []DialogueInterval{}
	}
	if doc.AudioClips == nil {
		doc.AudioClips = []AudioClip{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode timeline document: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}
