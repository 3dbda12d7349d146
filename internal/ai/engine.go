package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/skillsphere/backend/internal/config"
	"github.com/skillsphere/backend/pkg/apperr"
	"github.com/skillsphere/backend/pkg/gateway"
	"github.com/skillsphere/backend/pkg/models"
	"github.com/skillsphere/backend/pkg/repository"
)

// Generator is the slice of the gateway client the engine uses. The real
// implementation is *gateway.Client; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, model string, prompt string) (string, error)
}

// Engine turns user input into prompts, invokes the model gateway, and
// validates the untrusted response into typed domain values. It performs no
// persistence.
type Engine struct {
	gen    Generator
	cfg    config.EngineConfig
	loader *Loader
	logger *slog.Logger

	roadmapTpl *models.Template
	resumeTpl  *models.Template
}

// NewEngine loads the roadmap and resume prompt templates and the schema
// cache. Missing templates are a startup failure, not a per-request one.
func NewEngine(ctx context.Context, gen Generator, cfg config.EngineConfig, sr repository.SchemaRepo, tr repository.TemplateRepo, logger *slog.Logger) (*Engine, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if sr == nil {
		return nil, fmt.Errorf("schema repo is required")
	}
	if tr == nil {
		return nil, fmt.Errorf("template repo is required")
	}
	if cfg.TemplateVersion == "" {
		cfg.TemplateVersion = "v1"
	}
	if logger == nil {
		logger = slog.Default()
	}

	loader, err := NewLoader(ctx, sr)
	if err != nil {
		return nil, fmt.Errorf("create loader: %w", err)
	}

	e := &Engine{gen: gen, cfg: cfg, loader: loader, logger: logger}

	for _, name := range []string{"roadmap", "resume"} {
		tpl, err := tr.GetTemplate(ctx, name, cfg.TemplateVersion)
		if err != nil {
			return nil, fmt.Errorf("load template %s: %w", name, err)
		}
		if tpl == nil || tpl.TemplateTxt == "" {
			return nil, fmt.Errorf("template %s:%s not found", name, cfg.TemplateVersion)
		}
		if name == "roadmap" {
			e.roadmapTpl = tpl
		} else {
			e.resumeTpl = tpl
		}
	}

	return e, nil
}

func (e *Engine) ReloadSchemas(ctx context.Context) error {
	return e.loader.Reload(ctx)
}

// GenerateRoadmap asks the model for a step-by-step plan for the requested
// role transition and validates the response. Steps come back ordered 1..N
// with no gaps; any shape violation fails the whole response rather than
// renumbering or dropping steps.
func (e *Engine) GenerateRoadmap(ctx context.Context, req models.RoadmapRequest) ([]models.RoadmapStep, error) {
	currentRole := strings.TrimSpace(req.CurrentRole)
	desiredRole := strings.TrimSpace(req.DesiredRole)
	if currentRole == "" || desiredRole == "" {
		return nil, fmt.Errorf("%w: current_role and desired_role are required", apperr.ErrInvalidInput)
	}

	skills := "None"
	if len(req.CurrentSkills) > 0 {
		skills = strings.Join(req.CurrentSkills, ", ")
	}

	prompt, err := gateway.RenderTemplate(e.roadmapTpl.TemplateTxt, map[string]any{
		"CurrentRole": currentRole,
		"DesiredRole": desiredRole,
		"Skills":      skills,
	})
	if err != nil {
		return nil, fmt.Errorf("render roadmap template: %w", err)
	}

	out, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw := ExtractJSONArray(out)
	if raw == "" {
		e.logger.Error("no JSON array in model output", slog.Int("output_len", len(out)))
		return nil, fmt.Errorf("%w: no JSON array found in model response", apperr.ErrValidation)
	}

	if err := e.validateAgainstSchema(ctx, e.roadmapTpl, "roadmap-v1", raw); err != nil {
		return nil, err
	}

	var steps []models.RoadmapStep
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, fmt.Errorf("%w: decode steps: %v", apperr.ErrValidation, err)
	}

	return validateSteps(steps)
}

// validateSteps enforces the step invariants: every step well-formed, numbers
// exactly 1..N contiguous once sorted, at least one step. The returned slice
// is in step order.
func validateSteps(steps []models.RoadmapStep) ([]models.RoadmapStep, error) {
	if len(steps) == 0 {
		// a syntactically valid but empty plan is treated as a model
		// contract failure: a roadmap must have at least one step
		return nil, fmt.Errorf("%w: model returned an empty roadmap", apperr.ErrValidation)
	}

	for i := range steps {
		s := &steps[i]
		if s.Step < 1 {
			return nil, fmt.Errorf("%w: step number %d out of range", apperr.ErrValidation, s.Step)
		}
		if strings.TrimSpace(s.Title) == "" {
			return nil, fmt.Errorf("%w: step %d has an empty title", apperr.ErrValidation, s.Step)
		}
		if s.Resources == nil {
			s.Resources = []string{}
		}
	}

	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Step < steps[j].Step })
	for i := range steps {
		if steps[i].Step != i+1 {
			return nil, fmt.Errorf("%w: step numbers are not a contiguous 1..%d sequence", apperr.ErrValidation, len(steps))
		}
	}

	return steps, nil
}

// rawExperience and rawEducation absorb the field-name variations the model
// is known to emit before normalization into the domain types.
type rawExperience struct {
	Role        string `json:"role"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type rawEducation struct {
	Degree         string `json:"degree"`
	University     string `json:"university"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationYear *int   `json:"graduation_year"`
}

type rawProfile struct {
	Skills     map[string][]string `json:"skills"`
	Experience []rawExperience     `json:"experience"`
	Education  []rawEducation      `json:"education"`
}

// ParseResume extracts a categorized skill profile from resume text. A
// partial resume is expected, not an error: missing sections come back as
// empty, never absent. Nothing is persisted.
func (e *Engine) ParseResume(ctx context.Context, resumeText string) (*models.SkillProfile, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("%w: resume_text is required", apperr.ErrInvalidInput)
	}

	prompt, err := gateway.RenderTemplate(e.resumeTpl.TemplateTxt, map[string]any{
		"ResumeText": resumeText,
	})
	if err != nil {
		return nil, fmt.Errorf("render resume template: %w", err)
	}

	out, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw := ExtractJSONObject(out)
	if raw == "" {
		e.logger.Error("no JSON object in model output", slog.Int("output_len", len(out)))
		return nil, fmt.Errorf("%w: no JSON object found in model response", apperr.ErrValidation)
	}

	if err := e.validateAgainstSchema(ctx, e.resumeTpl, "resume-v1", raw); err != nil {
		return nil, err
	}

	var rp rawProfile
	if err := json.Unmarshal([]byte(raw), &rp); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", apperr.ErrValidation, err)
	}

	return normalizeProfile(&rp), nil
}

// normalizeProfile maps the model's loose output onto the SkillProfile
// contract: alias fields folded in, every section present even when empty,
// category keys non-empty.
func normalizeProfile(rp *rawProfile) *models.SkillProfile {
	p := &models.SkillProfile{
		Skills:     make(map[string][]string, len(rp.Skills)),
		Experience: make([]models.Experience, 0, len(rp.Experience)),
		Education:  make([]models.Education, 0, len(rp.Education)),
	}

	for category, names := range rp.Skills {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		if names == nil {
			names = []string{}
		}
		p.Skills[category] = names
	}

	for _, x := range rp.Experience {
		role := x.Role
		if role == "" {
			role = x.Title
		}
		summary := x.Summary
		if summary == "" {
			summary = x.Description
		}
		p.Experience = append(p.Experience, models.Experience{
			Role:    role,
			Company: x.Company,
			Summary: summary,
		})
	}

	for _, ed := range rp.Education {
		university := ed.University
		if university == "" {
			university = ed.Institution
		}
		if university == "" {
			university = ed.Location
		}
		p.Education = append(p.Education, models.Education{
			Degree:         ed.Degree,
			University:     university,
			GraduationYear: ed.GraduationYear,
		})
	}

	return p
}

// generate invokes the gateway under the engine's timeout.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	out, err := e.gen.Generate(ctx, e.cfg.Model, prompt)
	if err != nil {
		if errors.Is(err, apperr.ErrGateway) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", apperr.ErrGateway, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty model response", apperr.ErrValidation)
	}
	return out, nil
}

// validateAgainstSchema checks the extracted payload against the stored
// schema for the template, preferring the template's bound schema version.
func (e *Engine) validateAgainstSchema(ctx context.Context, tpl *models.Template, fallbackVersion, payload string) error {
	schemaVer := fallbackVersion
	if tpl.SchemaVer != nil && *tpl.SchemaVer != "" {
		schemaVer = *tpl.SchemaVer
	}

	schema, ok := e.loader.GetSchema(schemaVer)
	if !ok || schema == nil {
		return fmt.Errorf("no schema found for version %s", schemaVer)
	}

	verrs, err := schema.ValidateBytes(ctx, []byte(payload))
	if err != nil {
		return fmt.Errorf("schema validate error: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return fmt.Errorf("%w: response does not match schema: %s", apperr.ErrValidation, sb.String())
	}

	return nil
}
