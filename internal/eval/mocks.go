package eval

import "context"

type MockChunkModel struct {
	EvaluateChunkFunc func(ctx context.Context, videoFile, prompt string) (string, error)
	ReleaseMemoryFunc func(ctx context.Context)
}

func (m *MockChunkModel) EvaluateChunk(ctx context.Context, videoFile, prompt string) (string, error) {
	return m.EvaluateChunkFunc(ctx, videoFile, prompt)
}

func (m *MockChunkModel) ReleaseMemory(ctx context.Context) {
	if m.ReleaseMemoryFunc != nil {
		m.ReleaseMemoryFunc(ctx)
	}
}
