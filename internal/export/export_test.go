package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vibegen/vibegen-studio/internal/script"
	"github.com/vibegen/vibegen-studio/internal/studio"
)

func TestScriptJSON(t *testing.T) {
	vs := script.Fallback("neural network from scratch", "neon", script.DefaultSettings())
	p := &studio.Project{
		ID:              "p1",
		Prompt:          "neural network from scratch",
		GeneratedScript: vs,
	}

	raw, filename, err := ScriptJSON(p)
	if err != nil {
		t.Fatalf("ScriptJSON() error = %v", err)
	}
	if filename != "neural network from scratch.json" {
		t.Errorf("filename = %q", filename)
	}

	var decoded script.VideoScript
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("export did not round trip: %v", err)
	}
	if len(decoded.Scenes) != len(vs.Scenes) {
		t.Errorf("scenes = %d, want %d", len(decoded.Scenes), len(vs.Scenes))
	}
}

func TestScriptJSON_NoScript(t *testing.T) {
	if _, _, err := ScriptJSON(&studio.Project{ID: "p1"}); err == nil {
		t.Error("ScriptJSON() accepted a project without a script")
	}
}

func TestScriptJSON_HostileFilename(t *testing.T) {
	p := &studio.Project{
		ID:              "p1",
		Prompt:          "../../etc/passwd\x00<script>",
		GeneratedScript: script.Fallback("x", "neon", script.DefaultSettings()),
	}

	_, filename, err := ScriptJSON(p)
	if err != nil {
		t.Fatalf("ScriptJSON() error = %v", err)
	}
	if strings.ContainsAny(filename, "/\\<>\x00") {
		t.Errorf("filename %q contains unsafe characters", filename)
	}
}

func TestTimeline(t *testing.T) {
	vs := &script.VideoScript{
		Scenes: []script.VideoScene{
			{Type: script.SceneIntro, DurationMS: 2000},
			{Type: script.SceneCodeTyping, DurationMS: 5000},
			{Type: script.SceneOutro, DurationMS: 3000},
		},
	}

	edl := Timeline(vs, "demo", 60)

	if !strings.HasPrefix(edl, "TITLE: demo\nFCM: NON-DROP FRAME") {
		t.Errorf("unexpected header:\n%s", edl)
	}
	for _, want := range []string{
		"001", "002", "003",
		"scene_01_intro", "scene_02_code_typing", "scene_03_outro",
		// 2000ms at 60fps is 120 frames: two seconds exactly.
		"00:00:02:00",
		// 7000ms in, 10000ms out for the outro row.
		"00:00:07:00 00:00:10:00",
	} {
		if !strings.Contains(edl, want) {
			t.Errorf("timeline missing %q:\n%s", want, edl)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello world", 0, "hello world"},
		{"a/b\\c:d", 0, "a_b_c_d"},
		{"  padded  ", 0, "padded"},
		{"toolongname", 4, "tool"},
		{"tab\there", 0, "tabhere"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("SanitizeName(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
