package media

import "context"

// Tool abstracts the external encoder so the evaluation pipeline can be
// exercised without real media files or an ffmpeg install.
type Tool interface {
	// ProbeDuration returns the media duration in seconds.
	ProbeDuration(ctx context.Context, videoFile string) (float64, error)

	// ExtractSegment writes an independent segment covering
	// [start, start+duration) to outFile.
	ExtractSegment(ctx context.Context, videoFile string, start, duration float64, outFile string) error

	// ExtractFrames samples up to maxFrames JPEG frames evenly across the
	// file.
	ExtractFrames(ctx context.Context, videoFile string, maxFrames int) ([][]byte, error)

	// Standardize re-encodes the video to H.264/yuv420p with audio stripped,
	// for decoder compatibility.
	Standardize(ctx context.Context, videoFile, outFile string) error
}
