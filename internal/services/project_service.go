package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/doc-studio/engine/internal/generator"
	"github.com/doc-studio/engine/internal/models"
	"github.com/doc-studio/engine/internal/render"
	"github.com/doc-studio/engine/internal/repository"
	appErr "github.com/doc-studio/engine/pkg/errors"
	"github.com/doc-studio/engine/pkg/logger"
)

// initialPrompt labels the revision created by whole-project generation,
// where no user instruction exists.
const initialPrompt = "Initial generation"

// DocumentRenderer is the export collaborator.
type DocumentRenderer interface {
	Render(ctx context.Context, p *models.Project) (*render.Result, error)
}

// ProjectService is the project/section lifecycle manager. It owns the
// generation state machine: when content exists, when it is regenerated,
// how revisions accumulate, and how feedback attaches. Every operation is
// scoped to the calling user; a project owned by someone else is
// indistinguishable from a missing one.
type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, input *CreateProjectInput) (*models.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	GetProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error)
	GenerateContent(ctx context.Context, projectID, userID uuid.UUID, regenerate bool) (*models.Project, error)
	RefineSection(ctx context.Context, sectionID, userID uuid.UUID, instruction string) (*models.Section, error)
	LeaveFeedback(ctx context.Context, sectionID, userID uuid.UUID, input *FeedbackInput) (*models.Section, error)
	ExportProject(ctx context.Context, projectID, userID uuid.UUID) (*render.Result, error)
	DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error
}

type CreateProjectInput struct {
	Title    string
	Topic    string
	DocType  string
	Headings []string
	// Config is opaque metadata, stored and returned verbatim.
	Config json.RawMessage
}

type FeedbackInput struct {
	IsPositive *bool
	Comment    *string
}

type projectService struct {
	projects repository.ProjectRepository
	sections repository.SectionRepository
	gen      generator.ContentGenerator
	renderer DocumentRenderer
}

func NewProjectService(
	projects repository.ProjectRepository,
	sections repository.SectionRepository,
	gen generator.ContentGenerator,
	renderer DocumentRenderer,
) ProjectService {
	return &projectService{projects: projects, sections: sections, gen: gen, renderer: renderer}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, userID uuid.UUID, input *CreateProjectInput) (*models.Project, error) {
	logger.L().Info("create project", zap.String("user_id", userID.String()), zap.String("title", input.Title))

	if len(input.Headings) == 0 {
		return nil, appErr.New(appErr.CodeInvalid, "at least one section is required")
	}
	if input.DocType != models.DocTypeWord && input.DocType != models.DocTypePPT {
		return nil, appErr.New(appErr.CodeInvalid, "doc_type must be word or ppt")
	}

	cfg := input.Config
	if len(cfg) == 0 {
		cfg = json.RawMessage("{}")
	}

	p := &models.Project{
		UserID:  userID,
		Title:   input.Title,
		Topic:   input.Topic,
		DocType: input.DocType,
		Status:  models.StatusDraft,
		Config:  datatypes.JSON(cfg),
	}

	sections := make([]models.Section, len(input.Headings))
	for i, heading := range input.Headings {
		sections[i] = models.Section{
			Position: i,
			Heading:  heading,
			Content:  "",
		}
	}

	if err := s.projects.CreateWithSections(ctx, p, sections); err != nil {
		return nil, err
	}

	logger.L().Info("project created",
		zap.String("project_id", p.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("sections", len(sections)),
	)
	return p, nil
}

func (s *projectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

func (s *projectService) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	var p models.Project
	if err := s.projects.GetOwned(ctx, projectID, userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// generationAction is the per-section decision for a generation pass.
type generationAction int

const (
	actionSkip generationAction = iota
	actionGenerate
)

// decideGeneration keeps existing content unless the caller asked to
// regenerate. This is the only branching in the generation pass.
func decideGeneration(sec *models.Section, regenerate bool) generationAction {
	if sec.Content != "" && !regenerate {
		return actionSkip
	}
	return actionGenerate
}

func (s *projectService) GenerateContent(ctx context.Context, projectID, userID uuid.UUID, regenerate bool) (*models.Project, error) {
	logger.L().Info("generate content",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("regenerate", regenerate),
	)

	var p models.Project
	if err := s.projects.GetOwned(ctx, projectID, userID, &p); err != nil {
		return nil, err
	}

	// Persist the transition before the first generation call so concurrent
	// readers observe it.
	if err := s.projects.UpdateStatus(ctx, p.ID, models.StatusGenerating); err != nil {
		return nil, err
	}

	for i := range p.Sections {
		sec := &p.Sections[i]
		if decideGeneration(sec, regenerate) == actionSkip {
			continue
		}

		// The generator never fails: a provider error comes back as
		// sentinel text and is stored like any other content, so one bad
		// section cannot block the rest of the pass.
		content := s.gen.GenerateSection(ctx, generator.SectionInput{
			Topic:   p.Topic,
			DocType: p.DocType,
			Heading: sec.Heading,
		})

		prompt := initialPrompt
		if err := s.sections.SaveGenerated(ctx, sec.ID, content, &prompt); err != nil {
			return nil, err
		}
		sec.Content = content
	}

	// Every section has been attempted, sentinel results included.
	if err := s.projects.UpdateStatus(ctx, p.ID, models.StatusReady); err != nil {
		return nil, err
	}

	var out models.Project
	if err := s.projects.GetOwned(ctx, projectID, userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *projectService) RefineSection(ctx context.Context, sectionID, userID uuid.UUID, instruction string) (*models.Section, error) {
	logger.L().Info("refine section",
		zap.String("section_id", sectionID.String()),
		zap.String("user_id", userID.String()),
	)

	if strings.TrimSpace(instruction) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "refinement instruction is required")
	}

	var sec models.Section
	if err := s.sections.GetOwned(ctx, sectionID, userID, &sec); err != nil {
		return nil, err
	}

	var p models.Project
	if err := s.projects.GetByID(ctx, sec.ProjectID, &p); err != nil {
		return nil, err
	}

	content := s.gen.GenerateSection(ctx, generator.SectionInput{
		Topic:          p.Topic,
		DocType:        p.DocType,
		Heading:        sec.Heading,
		CurrentContent: sec.Content,
		RefinePrompt:   instruction,
	})

	if err := s.sections.SaveGenerated(ctx, sectionID, content, &instruction); err != nil {
		return nil, err
	}

	var out models.Section
	if err := s.sections.GetOwned(ctx, sectionID, userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *projectService) LeaveFeedback(ctx context.Context, sectionID, userID uuid.UUID, input *FeedbackInput) (*models.Section, error) {
	var sec models.Section
	if err := s.sections.GetOwned(ctx, sectionID, userID, &sec); err != nil {
		return nil, err
	}

	fb := &models.SectionFeedback{
		SectionID:  sec.ID,
		IsPositive: input.IsPositive,
		Comment:    input.Comment,
	}
	if err := s.sections.AddFeedback(ctx, fb); err != nil {
		return nil, err
	}

	var out models.Section
	if err := s.sections.GetOwned(ctx, sectionID, userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *projectService) ExportProject(ctx context.Context, projectID, userID uuid.UUID) (*render.Result, error) {
	logger.L().Info("export project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
	)

	var p models.Project
	if err := s.projects.GetOwned(ctx, projectID, userID, &p); err != nil {
		return nil, err
	}

	res, err := s.renderer.Render(ctx, &p)
	if err != nil {
		if errors.Is(err, render.ErrDependencyMissing) {
			return nil, appErr.Wrap(err, appErr.CodeUnavailable, "document renderer unavailable")
		}
		if errors.Is(err, render.ErrUnsupportedDocType) {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "unsupported document type")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "render project failed")
	}
	return res, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	logger.L().Info("delete project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
	)

	var p models.Project
	if err := s.projects.GetOwned(ctx, projectID, userID, &p); err != nil {
		return err
	}
	return s.projects.DeleteCascade(ctx, p.ID)
}
