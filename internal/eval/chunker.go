package eval

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/adbench/adeval/internal/media"
)

const (
	defaultWindowSeconds = 30.0
	maxChunkAttempts     = 2
)

// ErrMemoryExhausted marks a model failure caused by accelerator memory
// pressure. The chunker releases model memory and waits longer before
// retrying a chunk that failed this way.
var ErrMemoryExhausted = errors.New("model memory exhausted")

// ChunkModel is a vision-language model that can only judge one short media
// segment at a time. ReleaseMemory frees accelerator state; it is called
// before every inference attempt to bound peak usage.
type ChunkModel interface {
	EvaluateChunk(ctx context.Context, videoFile, prompt string) (string, error)
	ReleaseMemory(ctx context.Context)
}

// Window is one fixed-length slice of the video timeline.
type Window struct {
	Start    float64
	Duration float64
}

// End returns the absolute end of the window.
func (w Window) End() float64 {
	return w.Start + w.Duration
}

// Windows partitions [0, duration) into consecutive windows of the given
// size. The final window covers the remainder and is never zero-length; a
// non-positive duration yields no windows.
func Windows(duration, size float64) []Window {
	var windows []Window
	for start := 0.0; start < duration; {
		end := start + size
		if end > duration {
			end = duration
		}
		windows = append(windows, Window{Start: start, Duration: end - start})
		start = end
	}
	return windows
}

// Chunker drives a chunk-at-a-time model across a whole video, handing every
// chunk the same full timeline prompt as shared context. The model is
// expected to use the timestamps in the document to self-select the portion
// relevant to its chunk.
type Chunker struct {
	Media  media.Tool
	Model  ChunkModel
	Window float64             // seconds per chunk; 0 means 30
	Sleep  func(time.Duration) // nil means time.Sleep
}

// Evaluate partitions the video, submits each chunk in time order, and
// reduces the per-chunk responses first-valid-wins. It always returns a
// record: total failure yields an error record, never a Go error.
func (c *Chunker) Evaluate(ctx context.Context, videoFile, prompt string) Record {
	window := c.Window
	if window <= 0 {
		window = defaultWindowSeconds
	}

	duration, err := c.Media.ProbeDuration(ctx, videoFile)
	if err != nil {
		log.Printf("Could not determine duration for %s: %v", videoFile, err)
		duration = 0
	}

	var responses []string
	for i, w := range Windows(duration, window) {
		fmt.Printf("Processing chunk %d: %.1fs - %.1fs\n", i, w.Start, w.End())

		chunkFile := filepath.Join(filepath.Dir(videoFile), fmt.Sprintf("chunk_%s.mp4", uuid.NewString()))
		if err := c.Media.ExtractSegment(ctx, videoFile, w.Start, w.Duration, chunkFile); err != nil {
			log.Printf("Failed to create chunk %d: %v", i, err)
			os.Remove(chunkFile)
			continue
		}

		response, err := c.evaluateChunk(ctx, chunkFile, prompt, i)
		os.Remove(chunkFile)
		if err != nil {
			log.Printf("No response for chunk %d: %v", i, err)
			continue
		}
		responses = append(responses, response)
	}

	return Reduce(responses)
}

func (c *Chunker) evaluateChunk(ctx context.Context, chunkFile, prompt string, index int) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxChunkAttempts; attempt++ {
		c.Model.ReleaseMemory(ctx)

		response, err := c.Model.EvaluateChunk(ctx, chunkFile, prompt)
		if err == nil {
			fmt.Printf("Got response for chunk %d\n", index)
			return response, nil
		}
		lastErr = err
		log.Printf("Error processing chunk %d (attempt %d/%d): %v", index, attempt, maxChunkAttempts, err)
		if attempt == maxChunkAttempts {
			break
		}
		if errors.Is(err, ErrMemoryExhausted) {
			c.sleep(10 * time.Second)
		} else {
			c.sleep(5 * time.Second)
		}
	}
	return "", lastErr
}

// Reduce scans the per-chunk raw responses in window order and returns the
// first that parses into a well-formed record. When none do, the error
// record carries every raw response so the run can be diagnosed without
// re-running inference.
func Reduce(responses []string) Record {
	if len(responses) == 0 {
		return Record{"error": "no valid responses from chunks"}
	}
	for _, response := range responses {
		rec := Normalize(response)
		if rec.Valid() {
			return rec
		}
	}
	raw := make([]any, len(responses))
	for i, r := range responses {
		raw[i] = r
	}
	return Record{"error": "could not parse any chunk responses", "raw_responses": raw}
}

func (c *Chunker) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}
