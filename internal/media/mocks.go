package media

import "context"

type MockTool struct {
	ProbeDurationFunc  func(ctx context.Context, videoFile string) (float64, error)
	ExtractSegmentFunc func(ctx context.Context, videoFile string, start, duration float64, outFile string) error
	ExtractFramesFunc  func(ctx context.Context, videoFile string, maxFrames int) ([][]byte, error)
	StandardizeFunc    func(ctx context.Context, videoFile, outFile string) error
}

func (m *MockTool) ProbeDuration(ctx context.Context, videoFile string) (float64, error) {
	return m.ProbeDurationFunc(ctx, videoFile)
}

func (m *MockTool) ExtractSegment(ctx context.Context, videoFile string, start, duration float64, outFile string) error {
	return m.ExtractSegmentFunc(ctx, videoFile, start, duration, outFile)
}

func (m *MockTool) ExtractFrames(ctx context.Context, videoFile string, maxFrames int) ([][]byte, error) {
	return m.ExtractFramesFunc(ctx, videoFile, maxFrames)
}

func (m *MockTool) Standardize(ctx context.Context, videoFile, outFile string) error {
	return m.StandardizeFunc(ctx, videoFile, outFile)
}
