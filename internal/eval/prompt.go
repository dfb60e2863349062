package eval

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/adbench/adeval/internal/timeline"
)

// SystemInstruction frames the model's role for backends that take a separate
// system prompt.
const SystemInstruction = "You are an expert Accessibility Consultant specializing in the quality assurance of audio description (AD) for video content."

const promptTemplate = `ROLE: You are an expert Accessibility Consultant specializing in the quality assurance of audio description (AD) for video content.

CONTEXT: I am providing you with two assets:
1.  A video file.
2.  The structured JSON data of the existing audio description, written in %s, which is included below.

JSON DATA:
` + "```json\n%s\n```" + `

TASK: Analyze the video and the JSON data to evaluate the quality of the audio description track.

SCALE (1-5):
1 = very poor, 2 = poor, 3 = acceptable, 4 = good, 5 = exemplary.

CATEGORIES & CRITERIA:
Reads Text-on-Screen: Captures visible text accurately and at the right time. (If there is no on-screen text in the video, score = 5 with justification "no on-screen text present.")
Inline Track Quality: Effectiveness of short ADs placed during natural pauses. (Inline ADs are preferred over extended ones when they can convey the same info.)
Extended Track Quality: Effectiveness of longer ADs inserted into pauses or gaps.
Balance of Inline and Extended: Optimal mix of brief (preferred) and in-depth AD.
Track Placement: Narration is well-timed and does not overlap original video dialog or music.

OUTPUT FORMAT:
You MUST return your response as a single, valid JSON object. Do not include any text, notes, or markdown formatting before or after the JSON block.
The JSON object should have the following structure:
{
  "evaluation_summary": {
    "overall_quality_rating": "A rating from 1 to 5, where 1 is poor and 5 is excellent.",
    "strengths": "A brief summary of what was done well.",
    "areas_for_improvement": "A brief summary of what could be improved."
  },
  "criteria_ratings": {
    "reads_text_on_screen": { "rating": "1-5", "justification": "..." },
    "inline_track_quality": { "rating": "1-5", "justification": "..." },
    "extended_track_quality": { "rating": "1-5", "justification": "..." },
    "balance_of_inline_and_extended": { "rating": "1-5", "justification": "..." },
    "track_placement": { "rating": "1-5", "justification": "..." }
  }
}
`

// BuildPrompt serializes the timeline document into the evaluation prompt,
// pinned to the dominant language of the AD text so justifications come back
// in the language of the track under review.
func BuildPrompt(doc timeline.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize timeline document: %v", err)
	}
	return fmt.Sprintf(promptTemplate, detectLanguage(doc), string(data)), nil
}

func detectLanguage(doc timeline.Document) string {
	var b strings.Builder
	for _, clip := range doc.AudioClips {
		b.WriteString(clip.Text)
		b.WriteString(" ")
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "English"
	}

	detector := lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build()
	language, ok := detector.DetectLanguageOf(text)
	if !ok {
		return "English"
	}
	return language.String()
}
