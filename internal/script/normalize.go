package script

var validSceneTypes = map[string]bool{
	SceneIntro:      true,
	SceneCodeTyping: true,
	SceneCodeReveal: true,
	SceneTransition: true,
	SceneHighlight:  true,
	SceneZoom:       true,
	SceneOutro:      true,
}

// NormalizeSceneType maps any out-of-domain scene type to code_typing. Model
// output is untrusted, so unknown values are coerced instead of rejected.
func NormalizeSceneType(t string) string {
	if validSceneTypes[t] {
		return t
	}
	return SceneCodeTyping
}

// Normalize repairs a parsed script in place: scene types are coerced into
// the enumerated set, non-positive durations get the default, and
// code_content is dropped from scene types that never render code.
func Normalize(s *VideoScript) {
	for i := range s.Scenes {
		scene := &s.Scenes[i]
		scene.Type = NormalizeSceneType(scene.Type)
		if scene.DurationMS <= 0 {
			scene.DurationMS = DefaultSceneDurationMS
		}
		if !HasCode(scene.Type) {
			scene.CodeContent = ""
		}
	}
}

// HasCode reports whether a scene type renders typed code.
func HasCode(sceneType string) bool {
	return sceneType == SceneCodeTyping || sceneType == SceneCodeReveal
}
