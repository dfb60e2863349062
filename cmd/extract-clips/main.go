// extract-clips pulls the audio description clips for one video/track pair
// out of a shared multi-video CSV and writes them as JSON under
// videos/<video-id>/.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adbench/adeval/internal/clips"
	"github.com/adbench/adeval/internal/timeline"
)

func main() {
	flag.Parse()
	if flag.NArg() != 3 {
		log.Fatal("Usage: extract-clips <csv_path> <video_id> <audio_description_id>")
	}
	csvPath, videoID, adID := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	audioClips, err := clips.Extract(csvPath, videoID, adID)
	if err != nil {
		log.Fatalf("Failed to extract audio clips: %v", err)
	}
	if audioClips == nil {
		audioClips = []timeline.AudioClip{}
	}

	outputDir := filepath.Join("videos", videoID)
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	outputPath := filepath.Join(outputDir, fmt.Sprintf("human_%s_%s.json", videoID, adID))

	result := struct {
		AudioClips []timeline.AudioClip `json:"audio_clips"`
	}{AudioClips: audioClips}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode audio clips: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		log.Fatalf("Error writing to %s: %v", outputPath, err)
	}
	fmt.Printf("Written JSON output to %s\n", outputPath)
}
