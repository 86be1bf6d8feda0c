package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vibegen/vibegen-studio/internal/config"
	"github.com/vibegen/vibegen-studio/internal/export"
	"github.com/vibegen/vibegen-studio/internal/generator"
	"github.com/vibegen/vibegen-studio/internal/llm"
	"github.com/vibegen/vibegen-studio/internal/script"
	"github.com/vibegen/vibegen-studio/internal/studio"
	"github.com/vibegen/vibegen-studio/internal/system"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Post("/generate", generateHandler(cfg))

		r.Get("/projects", listProjectsHandler(cfg))
		r.Get("/projects/{id}", getProjectHandler(cfg))
		r.Get("/projects/{id}/scenes", listScenesHandler(cfg))
		r.Get("/projects/{id}/generations", listGenerationsHandler(cfg))
		r.Get("/projects/{id}/export", exportScriptHandler(cfg))
		r.Get("/projects/{id}/timeline", exportTimelineHandler(cfg))

		r.Get("/templates", listTemplatesHandler(cfg))
		r.Post("/templates", createTemplateHandler(cfg))
		r.Get("/templates/{id}", getTemplateHandler(cfg))
		r.Post("/templates/{id}/use", useTemplateHandler(cfg))

		r.Get("/player", playerStatusHandler(cfg))
		r.Post("/player/load", playerLoadHandler(cfg))
		r.Post("/player/play", playerControlHandler(cfg, func(s ServerConfig) { s.Player.Play() }))
		r.Post("/player/pause", playerControlHandler(cfg, func(s ServerConfig) { s.Player.Pause() }))
		r.Post("/player/toggle", playerControlHandler(cfg, func(s ServerConfig) { s.Player.TogglePlay() }))
		r.Post("/player/seek", playerSeekHandler(cfg))
		r.Post("/player/skip", playerSkipHandler(cfg))
		r.Post("/player/scene", playerSceneHandler(cfg))
		r.Post("/player/mute", playerMuteHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: config.Version,
			UptimeS: uptime,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, _ := cfg.Studio.CountProjects(r.Context())
		mem := system.Collect()

		state := "idle"
		if cfg.Generator.InFlight() {
			state = "generating"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:         state,
			ProjectsCount: count,
			Generating:    cfg.Generator.InFlight(),
			PlayerState:   cfg.Player.Status().StateName,
			MemoryRSS:     mem.RSSBytes,
			MemoryVMS:     mem.VMSBytes,
			CPUPercent:    mem.CPUPercent,
		})
	}
}

// generateHandler runs the whole pipeline synchronously: create the project,
// generate the script, persist everything, return the script.
func generateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		settings := script.DefaultSettings()
		if req.Settings != nil {
			settings = *req.Settings
		}

		project, err := cfg.Studio.CreateProject(r.Context(), req.Prompt, req.Style, settings)
		if err != nil {
			if errors.Is(err, studio.ErrEmptyPrompt) {
				WriteError(w, http.StatusBadRequest, "prompt is required", "BAD_REQUEST")
				return
			}
			WriteError(w, http.StatusInternalServerError, "failed to create project", "INTERNAL_ERROR")
			return
		}

		result, err := cfg.Generator.Generate(r.Context(), generator.Request{
			ProjectID: project.ID,
			Prompt:    project.Prompt,
			Style:     project.Style,
			Settings:  settings,
		})
		if err != nil {
			writeGenerateError(w, err)
			return
		}

		WriteJSON(w, http.StatusOK, GenerateResponse{
			Success:          true,
			Script:           result.Script,
			ProcessingTimeMS: result.ProcessingTimeMS,
			ProjectID:        result.ProjectID,
			UsedFallback:     result.UsedFallback,
		})
	}
}

func writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generator.ErrGenerationInFlight):
		WriteError(w, http.StatusConflict, err.Error(), "GENERATION_IN_FLIGHT")
	case errors.Is(err, llm.ErrRateLimited):
		WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment.", "RATE_LIMITED")
	case errors.Is(err, llm.ErrQuotaExhausted):
		WriteError(w, http.StatusPaymentRequired, "AI credits exhausted. Please add more credits.", "QUOTA_EXHAUSTED")
	default:
		WriteError(w, http.StatusBadGateway, "AI generation failed: "+err.Error(), "UPSTREAM_ERROR")
	}
}

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := cfg.Studio.ListProjects(r.Context(), 50)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}

		resp := ProjectsResponse{Projects: make([]ProjectResponse, len(projects))}
		for i, p := range projects {
			resp.Projects[i] = ProjectToResponse(p)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := fetchProject(w, r, cfg)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, ProjectToResponse(project))
	}
}

func listScenesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := fetchProject(w, r, cfg)
		if !ok {
			return
		}

		scenes, err := cfg.Studio.ListScenes(r.Context(), project.ID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list scenes", "INTERNAL_ERROR")
			return
		}

		resp := ScenesResponse{Scenes: make([]SceneResponse, len(scenes))}
		for i, s := range scenes {
			resp.Scenes[i] = SceneToResponse(s)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func listGenerationsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := fetchProject(w, r, cfg)
		if !ok {
			return
		}

		gens, err := cfg.Repository.ListGenerations(r.Context(), project.ID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list generations", "INTERNAL_ERROR")
			return
		}

		resp := GenerationsResponse{Generations: make([]GenerationResponse, len(gens))}
		for i, g := range gens {
			resp.Generations[i] = GenerationToResponse(g)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func exportScriptHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := fetchProject(w, r, cfg)
		if !ok {
			return
		}

		raw, filename, err := export.ScriptJSON(project)
		if err != nil {
			WriteError(w, http.StatusConflict, "project has no generated script", "NO_SCRIPT")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(raw)
	}
}

func exportTimelineHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := fetchProject(w, r, cfg)
		if !ok {
			return
		}
		if project.GeneratedScript == nil {
			WriteError(w, http.StatusConflict, "project has no generated script", "NO_SCRIPT")
			return
		}

		fps := project.GeneratedScript.Metadata.FPS
		edl := export.Timeline(project.GeneratedScript, project.Prompt, fps)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(edl))
	}
}

func listTemplatesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates, err := cfg.Studio.ListTemplates(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list templates", "INTERNAL_ERROR")
			return
		}

		resp := TemplatesResponse{Templates: make([]TemplateResponse, len(templates))}
		for i, t := range templates {
			resp.Templates[i] = TemplateToResponse(t)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createTemplateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTemplateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		settings := script.DefaultSettings()
		if req.Settings != nil {
			settings = *req.Settings
		}

		tpl, err := cfg.Studio.CreateTemplate(r.Context(), req.Name, req.Style, settings, req.Scenes)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusCreated, TemplateToResponse(tpl))
	}
}

func getTemplateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tpl, err := cfg.Studio.GetTemplate(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if tpl == nil {
			WriteError(w, http.StatusNotFound, "template not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, TemplateToResponse(tpl))
	}
}

func useTemplateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tpl, err := cfg.Studio.UseTemplate(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if tpl == nil {
			WriteError(w, http.StatusNotFound, "template not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, TemplateToResponse(tpl))
	}
}

func playerStatusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := cfg.Player.Status()
		cfg.Simulation.Step()
		WriteJSON(w, http.StatusOK, PlayerToResponse(st, cfg.Simulation.Snapshot()))
	}
}

// playerLoadHandler loads a completed project's script into the player and
// resets the particle field from the script's particle system.
func playerLoadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoadPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.ProjectID == "" {
			WriteError(w, http.StatusBadRequest, "project_id is required", "BAD_REQUEST")
			return
		}

		project, err := cfg.Studio.GetProject(r.Context(), req.ProjectID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if project == nil {
			WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
			return
		}
		if project.GeneratedScript == nil {
			WriteError(w, http.StatusConflict, "project has no generated script", "NO_SCRIPT")
			return
		}

		cfg.Player.Load(project.GeneratedScript)
		cfg.Simulation.Init(project.GeneratedScript.ParticleSystem)

		WriteJSON(w, http.StatusOK, PlayerToResponse(cfg.Player.Status(), nil))
	}
}

func playerControlHandler(cfg ServerConfig, action func(ServerConfig)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action(cfg)
		WriteJSON(w, http.StatusOK, PlayerToResponse(cfg.Player.Status(), nil))
	}
}

func playerSeekHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Player.Seek(req.PositionMS)
		WriteJSON(w, http.StatusOK, PlayerToResponse(cfg.Player.Status(), nil))
	}
}

func playerSkipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SkipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Player.SkipBy(req.DeltaMS)
		WriteJSON(w, http.StatusOK, PlayerToResponse(cfg.Player.Status(), nil))
	}
}

func playerSceneHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SceneJumpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Player.SeekToScene(req.Index)
		WriteJSON(w, http.StatusOK, PlayerToResponse(cfg.Player.Status(), nil))
	}
}

func playerMuteHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MuteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Player.SetMuted(req.Muted)
		WriteJSON(w, http.StatusOK, PlayerToResponse(cfg.Player.Status(), nil))
	}
}

func fetchProject(w http.ResponseWriter, r *http.Request, cfg ServerConfig) (*studio.Project, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
		return nil, false
	}

	project, err := cfg.Studio.GetProject(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
		return nil, false
	}
	if project == nil {
		WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
		return nil, false
	}
	return project, true
}
