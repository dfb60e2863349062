package timeline

// Scene is one scene-detected segment of a video, as produced by the upstream
// scene-detection step. Transcript line offsets are relative to StartTime.
type Scene struct {
	StartTime  float64          `json:"start_time"`
	EndTime    float64          `json:"end_time"`
	Transcript []TranscriptLine `json:"transcript"`
}

// TranscriptLine is a single spoken line within a scene.
type TranscriptLine struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// DialogueInterval is an absolute-time dialogue span built from one or more
// merged transcript lines. SequenceNum is 1-based and gapless in emission
// order.
type DialogueInterval struct {
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Duration    float64 `json:"duration"`
	AudioText   string  `json:"audio_text,omitempty"`
	SequenceNum int     `json:"sequence_num"`
}

// AudioClip is a human- or model-authored audio description insertion.
// EndTime is a pointer because some sources carry no end column; absence
// means "unknown end", not zero duration.
type AudioClip struct {
	StartTime        float64  `json:"start_time"`
	EndTime          *float64 `json:"end_time,omitempty"`
	Type             string   `json:"type,omitempty"`
	DescriptionStyle string   `json:"description_style"`
	Text             string   `json:"text"`
}

// Document is the unit of exchange between the preparation and evaluation
// steps: all dialogue intervals and AD clips for one video/track pair, each
// list sorted by start time.
type Document struct {
	DialogueTimestamps []DialogueInterval `json:"dialogue_timestamps"`
	AudioClips         []AudioClip        `json:"audio_clips"`
}
