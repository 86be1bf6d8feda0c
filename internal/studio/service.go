package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vibegen/vibegen-studio/internal/script"
)

// ErrEmptyPrompt rejects project creation before any generation starts.
var ErrEmptyPrompt = errors.New("prompt is required")

type StudioService interface {
	CreateProject(ctx context.Context, prompt, style string, settings script.AlgorithmSettings) (*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context, limit int) ([]*Project, error)
	CountProjects(ctx context.Context) (int, error)
	SaveScript(ctx context.Context, projectID string, s *script.VideoScript, language string) error
	FailProject(ctx context.Context, projectID string) error
	ListScenes(ctx context.Context, projectID string) ([]*SceneRow, error)

	CreateTemplate(ctx context.Context, name, style string, settings script.AlgorithmSettings, scenes []script.VideoScene) (*Template, error)
	GetTemplate(ctx context.Context, id string) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	UseTemplate(ctx context.Context, id string) (*Template, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateProject(ctx context.Context, prompt, style string, settings script.AlgorithmSettings) (*Project, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if style == "" {
		style = script.DefaultStyle
	}

	now := time.Now()
	p := &Project{
		ID:              NewID(),
		Prompt:          prompt,
		Style:           style,
		Settings:        settings,
		Status:          StatusProcessing,
		Resolution:      settings.Resolution,
		DurationSeconds: settings.Duration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("project created", "project_id", p.ID, "style", style)
	}
	return p, nil
}

func (s *Service) GetProject(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *Service) ListProjects(ctx context.Context, limit int) ([]*Project, error) {
	return s.repo.ListProjects(ctx, limit)
}

func (s *Service) CountProjects(ctx context.Context) (int, error) {
	return s.repo.CountProjects(ctx)
}

// SaveScript stores the generated script on the project and rewrites the
// scene projection. Start times are recomputed here from scene order, never
// copied from any persisted value.
func (s *Service) SaveScript(ctx context.Context, projectID string, vs *script.VideoScript, language string) error {
	if err := s.repo.UpdateProjectScript(ctx, projectID, vs, StatusCompleted); err != nil {
		return fmt.Errorf("update project script: %w", err)
	}

	now := time.Now()
	rows := make([]*SceneRow, len(vs.Scenes))
	for i, scene := range vs.Scenes {
		rows[i] = &SceneRow{
			ID:              NewID(),
			ProjectID:       projectID,
			SceneOrder:      i,
			SceneType:       script.NormalizeSceneType(scene.Type),
			CodeContent:     scene.CodeContent,
			Language:        language,
			AnimationConfig: scene.AnimationConfig,
			DurationMS:      scene.DurationMS,
			StartTimeMS:     vs.StartTimeMS(i),
			CreatedAt:       now,
		}
	}

	if err := s.repo.ReplaceScenes(ctx, projectID, rows); err != nil {
		return fmt.Errorf("replace scenes: %w", err)
	}
	return nil
}

func (s *Service) FailProject(ctx context.Context, projectID string) error {
	return s.repo.UpdateProjectStatus(ctx, projectID, StatusFailed)
}

func (s *Service) ListScenes(ctx context.Context, projectID string) ([]*SceneRow, error) {
	return s.repo.ListScenes(ctx, projectID)
}

func (s *Service) CreateTemplate(ctx context.Context, name, style string, settings script.AlgorithmSettings, scenes []script.VideoScene) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("template name is required")
	}
	if style == "" {
		style = script.DefaultStyle
	}

	t := &Template{
		ID:              NewID(),
		Name:            name,
		Style:           style,
		DefaultSettings: settings,
		SceneTemplates:  scenes,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("template created", "template_id", t.ID, "name", name)
	}
	return t, nil
}

func (s *Service) GetTemplate(ctx context.Context, id string) (*Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

func (s *Service) ListTemplates(ctx context.Context) ([]*Template, error) {
	return s.repo.ListTemplates(ctx)
}

// UseTemplate bumps the usage counter and returns the template.
func (s *Service) UseTemplate(ctx context.Context, id string) (*Template, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	if err := s.repo.IncrementTemplateUsage(ctx, id); err != nil {
		return nil, err
	}
	t.UsageCount++
	return t, nil
}
