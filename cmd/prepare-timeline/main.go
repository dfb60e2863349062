// prepare-timeline turns a video folder's raw transcript and AD clip exports
// into the single timeline document the evaluators consume.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/adbench/adeval/internal/clips"
	"github.com/adbench/adeval/internal/timeline"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: prepare-timeline <video_folder>")
	}
	videoFolder := flag.Arg(0)
	videoID := filepath.Base(filepath.Clean(videoFolder))

	csvPath := filepath.Join(videoFolder, fmt.Sprintf("human_%s.csv", videoID))
	scenesPath := filepath.Join(videoFolder, fmt.Sprintf("%s_scenes", videoID), "scene_info.json")
	outputPath := filepath.Join(videoFolder, "final_data_human.json")

	scenes, err := timeline.LoadScenes(scenesPath)
	if err != nil {
		log.Fatalf("Failed to load scene data from %s: %v", scenesPath, err)
	}
	fmt.Printf("Successfully loaded scene data from %s.\n", scenesPath)

	dialogue := timeline.MergeDialogue(scenes)
	fmt.Printf("Successfully prepared %d dialogue entries.\n", len(dialogue))

	audioClips, err := clips.ExtractRepaired(csvPath)
	if err != nil {
		log.Fatalf("Failed to read CSV %s: %v", csvPath, err)
	}
	fmt.Printf("Successfully parsed and sorted %d audio clips.\n", len(audioClips))

	doc := timeline.Document{
		DialogueTimestamps: dialogue,
		AudioClips:         audioClips,
	}
	if err := timeline.WriteDocument(outputPath, doc); err != nil {
		log.Fatalf("Failed to write timeline document: %v", err)
	}
	fmt.Printf("Final JSON file saved to: %s\n", outputPath)
}
