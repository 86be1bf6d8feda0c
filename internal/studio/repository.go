package studio

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vibegen/vibegen-studio/internal/script"
)

type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context, limit int) ([]*Project, error)
	UpdateProjectScript(ctx context.Context, id string, s *script.VideoScript, status string) error
	UpdateProjectStatus(ctx context.Context, id, status string) error
	MarkInterruptedProjects(ctx context.Context) error
	CountProjects(ctx context.Context) (int, error)

	CreateGeneration(ctx context.Context, g *Generation) error
	UpdateGeneration(ctx context.Context, g *Generation) error
	ListGenerations(ctx context.Context, projectID string) ([]*Generation, error)

	ReplaceScenes(ctx context.Context, projectID string, rows []*SceneRow) error
	ListScenes(ctx context.Context, projectID string) ([]*SceneRow, error)

	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, id string) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	IncrementTemplateUsage(ctx context.Context, id string) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, p *Project) error {
	settings, err := json.Marshal(p.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, prompt, style, algorithm_settings, generated_script, status,
			resolution, duration_seconds, views_count, likes_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?, ?, ?, 0, 0, ?, ?)
	`, p.ID, p.Prompt, p.Style, string(settings), p.Status,
		nullString(p.Resolution), p.DurationSeconds,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	return err
}

const projectColumns = `id, prompt, style, algorithm_settings, generated_script, status,
	resolution, duration_seconds, views_count, likes_count, created_at, updated_at`

func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func (r *SQLiteRepository) ListProjects(ctx context.Context, limit int) ([]*Project, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var p Project
	var settings string
	var generated, resolution sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Prompt, &p.Style, &settings, &generated, &p.Status,
		&resolution, &p.DurationSeconds, &p.ViewsCount, &p.LikesCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(settings), &p.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings for project %s: %w", p.ID, err)
	}
	if generated.Valid && generated.String != "" {
		var vs script.VideoScript
		if err := json.Unmarshal([]byte(generated.String), &vs); err != nil {
			return nil, fmt.Errorf("unmarshal script for project %s: %w", p.ID, err)
		}
		p.GeneratedScript = &vs
	}
	p.Resolution = resolution.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

func (r *SQLiteRepository) UpdateProjectScript(ctx context.Context, id string, s *script.VideoScript, status string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE projects SET generated_script = ?, status = ?, updated_at = datetime('now') WHERE id = ?
	`, string(raw), status, id)
	return err
}

func (r *SQLiteRepository) UpdateProjectStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE projects SET status = ?, updated_at = datetime('now') WHERE id = ?
	`, status, id)
	return err
}

// MarkInterruptedProjects fails any project left in processing by a crash or
// restart so the UI never shows a generation that can no longer complete.
func (r *SQLiteRepository) MarkInterruptedProjects(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE projects SET status = 'failed', updated_at = datetime('now') WHERE status = 'processing'
	`)
	return err
}

func (r *SQLiteRepository) CountProjects(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

func (r *SQLiteRepository) CreateGeneration(ctx context.Context, g *Generation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO generations (id, project_id, model_used, status, prompt_tokens,
			completion_tokens, processing_time_ms, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.ProjectID, g.ModelUsed, g.Status, g.PromptTokens,
		g.CompletionTokens, g.ProcessingTimeMS, nullString(g.ErrorMessage),
		g.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) UpdateGeneration(ctx context.Context, g *Generation) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE generations SET status = ?, prompt_tokens = ?, completion_tokens = ?,
			processing_time_ms = ?, error_message = ?
		WHERE id = ?
	`, g.Status, g.PromptTokens, g.CompletionTokens, g.ProcessingTimeMS,
		nullString(g.ErrorMessage), g.ID)
	return err
}

func (r *SQLiteRepository) ListGenerations(ctx context.Context, projectID string) ([]*Generation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, model_used, status, prompt_tokens, completion_tokens,
			processing_time_ms, error_message, created_at
		FROM generations WHERE project_id = ? ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []*Generation
	for rows.Next() {
		var g Generation
		var errMsg sql.NullString
		var createdAt string
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.ModelUsed, &g.Status, &g.PromptTokens,
			&g.CompletionTokens, &g.ProcessingTimeMS, &errMsg, &createdAt); err != nil {
			return nil, err
		}
		g.ErrorMessage = errMsg.String
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		gens = append(gens, &g)
	}
	return gens, rows.Err()
}

// ReplaceScenes rewrites the scene projection for a project in one
// transaction so readers never observe a half-written timeline.
func (r *SQLiteRepository) ReplaceScenes(ctx context.Context, projectID string, scenes []*SceneRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM scenes WHERE project_id = ?", projectID); err != nil {
		return err
	}

	for _, s := range scenes {
		anim, err := json.Marshal(s.AnimationConfig)
		if err != nil {
			return fmt.Errorf("marshal animation config: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO scenes (id, project_id, scene_order, scene_type, code_content,
				language, animation_config, duration_ms, start_time_ms, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, s.ID, s.ProjectID, s.SceneOrder, s.SceneType, nullString(s.CodeContent),
			nullString(s.Language), string(anim), s.DurationMS, s.StartTimeMS,
			s.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) ListScenes(ctx context.Context, projectID string) ([]*SceneRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, scene_order, scene_type, code_content, language,
			animation_config, duration_ms, start_time_ms, created_at
		FROM scenes WHERE project_id = ? ORDER BY scene_order ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenes []*SceneRow
	for rows.Next() {
		var s SceneRow
		var code, language sql.NullString
		var anim, createdAt string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.SceneOrder, &s.SceneType, &code,
			&language, &anim, &s.DurationMS, &s.StartTimeMS, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(anim), &s.AnimationConfig); err != nil {
			return nil, fmt.Errorf("unmarshal animation config for scene %s: %w", s.ID, err)
		}
		s.CodeContent = code.String
		s.Language = language.String
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		scenes = append(scenes, &s)
	}
	return scenes, rows.Err()
}

func (r *SQLiteRepository) CreateTemplate(ctx context.Context, t *Template) error {
	settings, err := json.Marshal(t.DefaultSettings)
	if err != nil {
		return fmt.Errorf("marshal default settings: %w", err)
	}
	scenes, err := json.Marshal(t.SceneTemplates)
	if err != nil {
		return fmt.Errorf("marshal scene templates: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO templates (id, name, style, default_settings, scene_templates, usage_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Style, string(settings), string(scenes), t.UsageCount,
		t.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetTemplate(ctx context.Context, id string) (*Template, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, style, default_settings, scene_templates, usage_count, created_at
		FROM templates WHERE id = ?
	`, id)
	return scanTemplate(row)
}

func (r *SQLiteRepository) ListTemplates(ctx context.Context) ([]*Template, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, style, default_settings, scene_templates, usage_count, created_at
		FROM templates ORDER BY usage_count DESC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func scanTemplate(row rowScanner) (*Template, error) {
	var t Template
	var settings, scenes, createdAt string

	err := row.Scan(&t.ID, &t.Name, &t.Style, &settings, &scenes, &t.UsageCount, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(settings), &t.DefaultSettings); err != nil {
		return nil, fmt.Errorf("unmarshal default settings for template %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(scenes), &t.SceneTemplates); err != nil {
		return nil, fmt.Errorf("unmarshal scene templates for template %s: %w", t.ID, err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &t, nil
}

func (r *SQLiteRepository) IncrementTemplateUsage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE templates SET usage_count = usage_count + 1 WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
