// Package generator orchestrates one video script generation: prompt
// assembly, the gateway call, parse-with-fallback, scene enrichment and
// persistence. One generation runs at a time.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vibegen/vibegen-studio/internal/llm"
	"github.com/vibegen/vibegen-studio/internal/script"
	"github.com/vibegen/vibegen-studio/internal/studio"
)

// ErrGenerationInFlight rejects a second concurrent generation request.
var ErrGenerationInFlight = errors.New("a generation is already in progress")

// Completer is the slice of the gateway client the generator needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (*llm.Completion, error)
	Model() string
}

// GenerationStore persists the attempt log rows.
type GenerationStore interface {
	CreateGeneration(ctx context.Context, g *studio.Generation) error
	UpdateGeneration(ctx context.Context, g *studio.Generation) error
}

// ScriptStore persists the generated script and its scene projection.
type ScriptStore interface {
	SaveScript(ctx context.Context, projectID string, s *script.VideoScript, language string) error
	FailProject(ctx context.Context, projectID string) error
}

type Request struct {
	ProjectID string
	Prompt    string
	Style     string
	Settings  script.AlgorithmSettings
}

type Result struct {
	Script           *script.VideoScript
	ProjectID        string
	ProcessingTimeMS int64
	UsedFallback     bool
	PromptTokens     int
	CompletionTokens int
}

type Service struct {
	llm        Completer
	scripts    ScriptStore
	gens       GenerationStore
	progress   ProgressFunc
	onComplete func(Result)
	logger     *slog.Logger
	inFlight   atomic.Bool
}

func NewService(completer Completer, scripts ScriptStore, gens GenerationStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		llm:     completer,
		scripts: scripts,
		gens:    gens,
		logger:  logger,
	}
}

// SetProgressFunc installs an observer for simulated progress updates. Must
// be called before any Generate.
func (s *Service) SetProgressFunc(fn ProgressFunc) {
	s.progress = fn
}

// SetCompletionFunc installs an observer for finished generations. Must be
// called before any Generate.
func (s *Service) SetCompletionFunc(fn func(Result)) {
	s.onComplete = fn
}

// InFlight reports whether a generation is currently running.
func (s *Service) InFlight() bool {
	return s.inFlight.Load()
}

// Generate runs one generation end to end. A gateway failure fails the
// project and propagates; unparseable model output does not fail anything,
// it switches to the deterministic fallback script. Persistence failures
// after a script exists are logged and swallowed so the caller still
// receives the script.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer s.inFlight.Store(false)

	start := time.Now()

	s.logger.Info("starting generation",
		"project_id", req.ProjectID,
		"style", req.Style,
		"prompt_length", len(req.Prompt),
	)

	gen := &studio.Generation{
		ID:        studio.NewID(),
		ProjectID: req.ProjectID,
		ModelUsed: s.llm.Model(),
		Status:    studio.StatusProcessing,
		CreatedAt: start,
	}
	if err := s.gens.CreateGeneration(ctx, gen); err != nil {
		s.logger.Warn("failed to create generation log", "project_id", req.ProjectID, "error", err)
	}

	tracker := startProgress(req.ProjectID, s.progress)

	systemPrompt := BuildSystemPrompt(req.Style, req.Settings)
	userPrompt := BuildUserPrompt(req.Prompt, req.Settings)

	completion, err := s.llm.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		tracker.finish(false)
		s.failGeneration(ctx, req.ProjectID, gen, err, start)
		return nil, err
	}

	vs, usedFallback := s.parseScript(completion.Content, req)

	language := req.Settings.CodeStyle
	if language == "" {
		language = script.DefaultLanguage
	}
	script.ApplyCodeSnippets(vs, req.Prompt, language)
	script.Normalize(vs)

	processingTime := time.Since(start).Milliseconds()

	gen.Status = studio.StatusCompleted
	gen.PromptTokens = completion.PromptTokens
	gen.CompletionTokens = completion.CompletionTokens
	gen.ProcessingTimeMS = processingTime

	// The script is already in hand; storage trouble must not turn a
	// successful generation into a failed response.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.scripts.SaveScript(gctx, req.ProjectID, vs, language)
	})
	g.Go(func() error {
		return s.gens.UpdateGeneration(gctx, gen)
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to persist generation", "project_id", req.ProjectID, "error", err)
	}

	tracker.finish(true)

	s.logger.Info("generation completed",
		"project_id", req.ProjectID,
		"processing_time_ms", processingTime,
		"used_fallback", usedFallback,
		"scenes", len(vs.Scenes),
	)

	result := Result{
		Script:           vs,
		ProjectID:        req.ProjectID,
		ProcessingTimeMS: processingTime,
		UsedFallback:     usedFallback,
		PromptTokens:     completion.PromptTokens,
		CompletionTokens: completion.CompletionTokens,
	}
	if s.onComplete != nil {
		s.onComplete(result)
	}
	return &result, nil
}

// parseScript decodes the model output, falling back to the deterministic
// template when the output is not a usable script document.
func (s *Service) parseScript(content string, req Request) (*script.VideoScript, bool) {
	raw := ExtractJSON(content)

	var vs script.VideoScript
	if err := json.Unmarshal([]byte(raw), &vs); err != nil {
		s.logger.Warn("model output was not valid JSON, using fallback script",
			"project_id", req.ProjectID, "error", err)
		return script.Fallback(req.Prompt, req.Style, req.Settings), true
	}
	if len(vs.Scenes) == 0 {
		s.logger.Warn("model output had no scenes, using fallback script",
			"project_id", req.ProjectID)
		return script.Fallback(req.Prompt, req.Style, req.Settings), true
	}
	return &vs, false
}

func (s *Service) failGeneration(ctx context.Context, projectID string, gen *studio.Generation, cause error, start time.Time) {
	if err := s.scripts.FailProject(ctx, projectID); err != nil {
		s.logger.Error("failed to mark project failed", "project_id", projectID, "error", err)
	}

	gen.Status = studio.StatusFailed
	gen.ErrorMessage = cause.Error()
	gen.ProcessingTimeMS = time.Since(start).Milliseconds()
	if err := s.gens.UpdateGeneration(ctx, gen); err != nil {
		s.logger.Error("failed to update generation log", "project_id", projectID, "error", err)
	}

	s.logger.Error("generation failed", "project_id", projectID, "error", cause)
}
