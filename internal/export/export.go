// Package export renders a generated script into downloadable artifacts: the
// raw script JSON and an EDL-style timeline for video editors.
package export

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/vibegen/vibegen-studio/internal/script"
	"github.com/vibegen/vibegen-studio/internal/studio"
)

const maxFilenameLen = 64

// ScriptJSON renders the project's script as pretty-printed JSON plus a safe
// download filename derived from the prompt.
func ScriptJSON(p *studio.Project) ([]byte, string, error) {
	if p.GeneratedScript == nil {
		return nil, "", fmt.Errorf("project %s has no generated script", p.ID)
	}

	raw, err := json.MarshalIndent(p.GeneratedScript, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal script: %w", err)
	}

	name := SanitizeName(p.Prompt, maxFilenameLen)
	if name == "" {
		name = p.ID
	}
	return raw, name + ".json", nil
}

// Timeline renders the scene list as an EDL so the script timing can be
// pulled into an editor. Record and source times coincide because scenes are
// contiguous.
func Timeline(vs *script.VideoScript, title string, fps int) string {
	if fps <= 0 {
		fps = 60
	}

	lines := []string{
		fmt.Sprintf("TITLE: %s", title),
		"FCM: NON-DROP FRAME",
		"",
	}

	offset := 0
	for i := range vs.Scenes {
		scene := &vs.Scenes[i]
		d := scene.DurationMS
		if d <= 0 {
			d = script.DefaultSceneDurationMS
		}
		in := msToTimecode(offset, fps)
		out := msToTimecode(offset+d, fps)

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, "AX", "V", in, out, in, out),
			fmt.Sprintf("* FROM CLIP NAME:  %s", sceneClipName(scene.Type, i)),
		)
		offset += d
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func sceneClipName(sceneType string, index int) string {
	return fmt.Sprintf("scene_%02d_%s", index+1, sceneType)
}

func msToTimecode(ms int, fps int) string {
	totalFrames := int(math.Round(float64(ms) * float64(fps) / 1000.0))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
