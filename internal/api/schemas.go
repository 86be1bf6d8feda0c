package api

import (
	"time"

	"github.com/vibegen/vibegen-studio/internal/playback"
	"github.com/vibegen/vibegen-studio/internal/script"
	"github.com/vibegen/vibegen-studio/internal/studio"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type StatusResponse struct {
	State         string  `json:"state"`
	ProjectsCount int     `json:"projects_count"`
	Generating    bool    `json:"generating"`
	PlayerState   string  `json:"player_state"`
	MemoryRSS     uint64  `json:"memory_rss_bytes"`
	MemoryVMS     uint64  `json:"memory_vms_bytes"`
	CPUPercent    float64 `json:"cpu_percent"`
}

type GenerateRequest struct {
	Prompt   string                    `json:"prompt"`
	Style    string                    `json:"style,omitempty"`
	Settings *script.AlgorithmSettings `json:"settings,omitempty"`
}

type GenerateResponse struct {
	Success          bool                `json:"success"`
	Script           *script.VideoScript `json:"script"`
	ProcessingTimeMS int64               `json:"processing_time_ms"`
	ProjectID        string              `json:"project_id"`
	UsedFallback     bool                `json:"used_fallback"`
}

type ProjectResponse struct {
	ID              string                   `json:"id"`
	Prompt          string                   `json:"prompt"`
	Style           string                   `json:"style"`
	Settings        script.AlgorithmSettings `json:"algorithm_settings"`
	GeneratedScript *script.VideoScript      `json:"generated_script,omitempty"`
	Status          string                   `json:"status"`
	Resolution      string                   `json:"resolution,omitempty"`
	DurationSeconds int                      `json:"duration_seconds"`
	ViewsCount      int                      `json:"views_count"`
	LikesCount      int                      `json:"likes_count"`
	CreatedAt       string                   `json:"created_at"`
	UpdatedAt       string                   `json:"updated_at"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type SceneResponse struct {
	ID          string `json:"id"`
	SceneOrder  int    `json:"scene_order"`
	SceneType   string `json:"scene_type"`
	CodeContent string `json:"code_content,omitempty"`
	Language    string `json:"language,omitempty"`
	DurationMS  int    `json:"duration_ms"`
	StartTimeMS int    `json:"start_time_ms"`
}

type ScenesResponse struct {
	Scenes []SceneResponse `json:"scenes"`
}

type GenerationResponse struct {
	ID               string `json:"id"`
	ModelUsed        string `json:"model_used"`
	Status           string `json:"status"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
	Error            string `json:"error,omitempty"`
	CreatedAt        string `json:"created_at"`
}

type GenerationsResponse struct {
	Generations []GenerationResponse `json:"generations"`
}

type CreateTemplateRequest struct {
	Name     string                    `json:"name"`
	Style    string                    `json:"style,omitempty"`
	Settings *script.AlgorithmSettings `json:"settings,omitempty"`
	Scenes   []script.VideoScene       `json:"scenes,omitempty"`
}

type TemplateResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Style           string                   `json:"style"`
	DefaultSettings script.AlgorithmSettings `json:"default_settings"`
	SceneTemplates  []script.VideoScene      `json:"scene_templates,omitempty"`
	UsageCount      int                      `json:"usage_count"`
	CreatedAt       string                   `json:"created_at"`
}

type TemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

type LoadPlayerRequest struct {
	ProjectID string `json:"project_id"`
}

type SeekRequest struct {
	PositionMS int `json:"position_ms"`
}

type SkipRequest struct {
	DeltaMS int `json:"delta_ms"`
}

type SceneJumpRequest struct {
	Index int `json:"index"`
}

type MuteRequest struct {
	Muted bool `json:"muted"`
}

type PlayerResponse struct {
	State            string              `json:"state"`
	CursorMS         int                 `json:"cursor_ms"`
	TotalDurationMS  int                 `json:"total_duration_ms"`
	ActiveSceneIndex int                 `json:"active_scene_index"`
	SceneProgress    float64             `json:"scene_progress"`
	TypedCode        string              `json:"typed_code"`
	Muted            bool                `json:"muted"`
	Particles        []playback.Particle `json:"particles,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func ProjectToResponse(p *studio.Project) ProjectResponse {
	return ProjectResponse{
		ID:              p.ID,
		Prompt:          p.Prompt,
		Style:           p.Style,
		Settings:        p.Settings,
		GeneratedScript: p.GeneratedScript,
		Status:          p.Status,
		Resolution:      p.Resolution,
		DurationSeconds: p.DurationSeconds,
		ViewsCount:      p.ViewsCount,
		LikesCount:      p.LikesCount,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

func SceneToResponse(s *studio.SceneRow) SceneResponse {
	return SceneResponse{
		ID:          s.ID,
		SceneOrder:  s.SceneOrder,
		SceneType:   s.SceneType,
		CodeContent: s.CodeContent,
		Language:    s.Language,
		DurationMS:  s.DurationMS,
		StartTimeMS: s.StartTimeMS,
	}
}

func GenerationToResponse(g *studio.Generation) GenerationResponse {
	return GenerationResponse{
		ID:               g.ID,
		ModelUsed:        g.ModelUsed,
		Status:           g.Status,
		PromptTokens:     g.PromptTokens,
		CompletionTokens: g.CompletionTokens,
		ProcessingTimeMS: g.ProcessingTimeMS,
		Error:            g.ErrorMessage,
		CreatedAt:        g.CreatedAt.Format(time.RFC3339),
	}
}

func TemplateToResponse(t *studio.Template) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		Name:            t.Name,
		Style:           t.Style,
		DefaultSettings: t.DefaultSettings,
		SceneTemplates:  t.SceneTemplates,
		UsageCount:      t.UsageCount,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}

func PlayerToResponse(st playback.Status, particles []playback.Particle) PlayerResponse {
	return PlayerResponse{
		State:            st.StateName,
		CursorMS:         st.CursorMS,
		TotalDurationMS:  st.TotalDurationMS,
		ActiveSceneIndex: st.ActiveSceneIndex,
		SceneProgress:    st.SceneProgress,
		TypedCode:        st.TypedCode,
		Muted:            st.Muted,
		Particles:        particles,
	}
}
