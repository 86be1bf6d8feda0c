package studio

import (
	"time"

	"github.com/google/uuid"

	"github.com/vibegen/vibegen-studio/internal/script"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Project is one generation request and its resulting script. The script
// column stores the canonical VideoScript JSON; scene rows are a parallel,
// queryable projection of the same data.
type Project struct {
	ID              string                   `json:"id"`
	Prompt          string                   `json:"prompt"`
	Style           string                   `json:"style"`
	Settings        script.AlgorithmSettings `json:"algorithm_settings"`
	GeneratedScript *script.VideoScript      `json:"generated_script,omitempty"`
	Status          string                   `json:"status"`
	Resolution      string                   `json:"resolution,omitempty"`
	DurationSeconds int                      `json:"duration_seconds,omitempty"`
	ViewsCount      int                      `json:"views_count"`
	LikesCount      int                      `json:"likes_count"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// Generation is one attempt log row: model, token usage and timing.
type Generation struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"project_id"`
	ModelUsed        string    `json:"model_used"`
	Status           string    `json:"status"`
	PromptTokens     int       `json:"prompt_tokens,omitempty"`
	CompletionTokens int       `json:"completion_tokens,omitempty"`
	ProcessingTimeMS int64     `json:"processing_time_ms,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// SceneRow is the persisted projection of one scene. StartTimeMS is computed
// from preceding durations at write time and recomputed on any rewrite; it
// is never treated as a source of truth.
type SceneRow struct {
	ID              string                 `json:"id"`
	ProjectID       string                 `json:"project_id"`
	SceneOrder      int                    `json:"scene_order"`
	SceneType       string                 `json:"scene_type"`
	CodeContent     string                 `json:"code_content,omitempty"`
	Language        string                 `json:"language,omitempty"`
	AnimationConfig script.AnimationConfig `json:"animation_config"`
	DurationMS      int                    `json:"duration_ms"`
	StartTimeMS     int                    `json:"start_time_ms"`
	CreatedAt       time.Time              `json:"created_at"`
}

// Template is a reusable generation preset.
type Template struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Style           string                   `json:"style"`
	DefaultSettings script.AlgorithmSettings `json:"default_settings"`
	SceneTemplates  []script.VideoScene      `json:"scene_templates,omitempty"`
	UsageCount      int                      `json:"usage_count"`
	CreatedAt       time.Time                `json:"created_at"`
}

func NewID() string {
	return uuid.NewString()
}
