// qwen-evaluate scores an audio description track against its video using a
// locally served Qwen2.5-VL, feeding the model one fixed-length chunk at a
// time with the full timeline document as shared context.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/adbench/adeval/internal/config"
	"github.com/adbench/adeval/internal/eval"
	"github.com/adbench/adeval/internal/media"
	"github.com/adbench/adeval/internal/qwen"
	"github.com/adbench/adeval/internal/timeline"
)

func main() {
	config.Load()

	inputType := flag.String("input", "", "source label of the prepared timeline document (e.g. human, qwen, gemini)")
	flag.Parse()
	if flag.NArg() != 1 || *inputType == "" {
		log.Fatal("Usage: qwen-evaluate -input <label> <video_folder>")
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
	fmt.Printf("Found input JSON: %s\n", jsonPath)

	prompt, err := eval.BuildPrompt(doc)
	if err != nil {
		log.Fatalf("Failed to build evaluation prompt: %v", err)
	}

	ctx := context.Background()
	tool := media.FFmpeg{}

	// Re-encode to a decoder-friendly format; fall back to the original on
	// encoder failure.
	evalPath := videoPath
	standardized := filepath.Join(videoFolder, fmt.Sprintf("%s_std_%s.mp4", videoID, uuid.NewString()))
	if err := tool.Standardize(ctx, videoPath, standardized); err != nil {
		log.Printf("ffmpeg failed to standardize %s: %v. Using original path.", videoPath, err)
		os.Remove(standardized)
	} else {
		evalPath = standardized
	}

	client := qwen.NewClient(config.QwenBaseURL(), config.QwenAPIKey(), config.QwenModel(), tool)
	chunker := &eval.Chunker{Media: tool, Model: client}
	record := chunker.Evaluate(ctx, evalPath, prompt)

	if evalPath != videoPath {
		if err := os.Remove(evalPath); err != nil {
			log.Printf("Warning: could not remove %s: %v", evalPath, err)
		} else {
			fmt.Printf("Cleaned up: %s\n", evalPath)
		}
	}

	outputPath := filepath.Join(videoFolder, fmt.Sprintf("qwen_evaluate_%s.json", *inputType))
	if err := eval.WriteRecord(outputPath, record); err != nil {
		log.Fatalf("Error saving file: %v", err)
	}
	fmt.Printf("Evaluation successfully saved to: %s\n", outputPath)
}
