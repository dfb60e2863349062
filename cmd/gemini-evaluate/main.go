// gemini-evaluate scores an audio description track against its video using
// the hosted Gemini API and writes the evaluation record next to the inputs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adbench/adeval/internal/config"
	"github.com/adbench/adeval/internal/eval"
	"github.com/adbench/adeval/internal/gemini"
	"github.com/adbench/adeval/internal/timeline"
)

func main() {
	config.Load()

	inputType := flag.String("input", "", "source label of the prepared timeline document (e.g. human, qwen, gemini)")
	flag.Parse()
	if flag.NArg() != 1 || *inputType == "" {
		log.Fatal("Usage: gemini-evaluate -input <label> <video_folder>")
	}
	videoFolder := flag.Arg(0)
	videoID := filepath.Base(filepath.Clean(videoFolder))

	videoPath := filepath.Join(videoFolder, videoID+".mp4")
	jsonPath := filepath.Join(videoFolder, fmt.Sprintf("final_data_%s.json", *inputType))

	if _, err := os.Stat(videoPath); err != nil {
		log.Fatalf("Missing video file '%s'", videoPath)
	}
	doc, err := timeline.LoadDocument(jsonPath)
	if err != nil {
		log.Fatalf("Failed to load timeline document '%s': %v", jsonPath, err)
	}
	fmt.Printf("Found video: %s\n", videoPath)
	fmt.Printf("Found JSON: %s\n", jsonPath)

	apiKey, err := config.GeminiAPIKey()
	if err != nil {
		log.Fatalf("%v", err)
	}
	prompt, err := eval.BuildPrompt(doc)
	if err != nil {
		log.Fatalf("Failed to build evaluation prompt: %v", err)
	}

	client := gemini.NewClient(apiKey)
	record, err := client.Evaluate(context.Background(), videoPath, prompt)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	outputPath := filepath.Join(videoFolder, fmt.Sprintf("gemini_evaluate_%s.json", *inputType))
	if err := eval.WriteRecord(outputPath, record); err != nil {
		log.Fatalf("Error saving file: %v", err)
	}
	fmt.Printf("Evaluation successfully saved to: %s\n", outputPath)
}
