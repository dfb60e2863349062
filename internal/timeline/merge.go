package timeline

import "math"

// gapThreshold is both the adjacency tolerance between consecutive transcript
// lines and the trailing trim applied to every interval's end, so that an
// interval's end never coincides exactly with the next one's start.
const gapThreshold = 0.1

// MergeDialogue coalesces per-line transcript timestamps into
// sequence-numbered dialogue intervals. A line that starts within the gap
// threshold of the previous line's raw end, where that previous line ran up
// against its scene boundary, extends the previous interval instead of
// opening a new one: the scene detector's cut point split one utterance in
// two, and treating the halves as independent beats would produce false
// placement conflicts downstream.
func MergeDialogue(scenes []Scene) []DialogueInterval {
	var dialogue []DialogueInterval
	sequenceNum := 1
	var lastDialogueEnd float64
	haveLast := false
	continuing := false

	for _, scene := range scenes {
		for _, line := range scene.Transcript {
			start := scene.StartTime + line.Start
			end := scene.StartTime + line.End

			if haveLast && math.Abs(start-lastDialogueEnd) < gapThreshold && len(dialogue) > 0 && continuing {
				last := &dialogue[len(dialogue)-1]
				last.EndTime = end - gapThreshold
				last.Duration = round2(last.EndTime - last.StartTime)
				if line.Text != "" {
					if last.AudioText != "" {
						last.AudioText += " "
					}
					last.AudioText += line.Text
				}
				continuing = false
				lastDialogueEnd = end
				continue
			}

			dialogue = append(dialogue, DialogueInterval{
				StartTime:   start,
				EndTime:     end - gapThreshold,
				Duration:    round2(end - start),
				AudioText:   line.Text,
				SequenceNum: sequenceNum,
			})
			sequenceNum++

			// A line that reaches its scene's end may continue seamlessly
			// into the next scene's opening line.
			continuing = end >= scene.EndTime-gapThreshold
			lastDialogueEnd = end
			haveLast = true
		}
	}

	return dialogue
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
