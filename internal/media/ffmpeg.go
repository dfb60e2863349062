package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// FFmpeg runs the system ffmpeg and ffprobe binaries.
type FFmpeg struct{}

func (FFmpeg) ProbeDuration(ctx context.Context, videoFile string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		videoFile)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %v", err)
	}
	raw := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe duration %q: %v", raw, err)
	}
	return duration, nil
}

func (FFmpeg) ExtractSegment(ctx context.Context, videoFile string, start, duration float64, outFile string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-loglevel", "error",
		"-i", videoFile,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-c:v", "libx264", "-pix_fmt", "yuv420p", "-an",
		outFile)
	return runFFmpeg(cmd)
}

func (FFmpeg) Standardize(ctx context.Context, videoFile, outFile string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-loglevel", "error",
		"-i", videoFile,
		"-c:v", "libx264", "-pix_fmt", "yuv420p", "-an",
		outFile)
	return runFFmpeg(cmd)
}

func (f FFmpeg) ExtractFrames(ctx context.Context, videoFile string, maxFrames int) ([][]byte, error) {
	duration, err := f.ProbeDuration(ctx, videoFile)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("cannot sample frames: %s has zero duration", videoFile)
	}

	frameDir, err := os.MkdirTemp("", "adeval_frames_")
	if err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %v", err)
	}
	defer os.RemoveAll(frameDir)

	fps := float64(maxFrames) / duration
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-loglevel", "error",
		"-i", videoFile,
		"-vf", fmt.Sprintf("fps=%f", fps),
		"-frames:v", strconv.Itoa(maxFrames),
		filepath.Join(frameDir, "frame_%04d.jpg"))
	if err := runFFmpeg(cmd); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(frameDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %v", err)
	}
	var frames [][]byte
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(frameDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %s: %v", entry.Name(), err)
		}
		frames = append(frames, data)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames decoded from %s", videoFile)
	}
	return frames, nil
}

func runFFmpeg(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg error: %v\nStderr: %s", err, stderr.String())
	}
	return nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
