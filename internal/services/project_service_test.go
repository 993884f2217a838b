package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/doc-studio/engine/internal/generator"
	"github.com/doc-studio/engine/internal/models"
	"github.com/doc-studio/engine/internal/render"
	appErr "github.com/doc-studio/engine/pkg/errors"
)

type serviceFixture struct {
	projects *mockProjectRepository
	sections *mockSectionRepository
	gen      *fakeGenerator
	renderer *fakeRenderer
	svc      ProjectService
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		projects: &mockProjectRepository{},
		sections: &mockSectionRepository{},
		gen:      &fakeGenerator{},
		renderer: &fakeRenderer{},
	}
	f.svc = NewProjectService(f.projects, f.sections, f.gen, f.renderer)
	return f
}

func ownedProject(userID uuid.UUID, sections ...models.Section) *models.Project {
	p := &models.Project{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    "Q1 Report",
		Topic:    "Quarterly results",
		DocType:  models.DocTypeWord,
		Status:   models.StatusDraft,
		Sections: sections,
	}
	for i := range p.Sections {
		if p.Sections[i].ID == uuid.Nil {
			p.Sections[i].ID = uuid.New()
		}
		p.Sections[i].ProjectID = p.ID
	}
	return p
}

func TestCreateProject(t *testing.T) {
	userID := uuid.New()

	t.Run("zero sections rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.CreateProject(context.Background(), userID, &CreateProjectInput{
			Title:   "Empty",
			Topic:   "t",
			DocType: models.DocTypeWord,
		})
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
		f.projects.AssertNotCalled(t, "CreateWithSections", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unsupported doc type rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.CreateProject(context.Background(), userID, &CreateProjectInput{
			Title:    "x",
			Topic:    "t",
			DocType:  "pdf",
			Headings: []string{"Intro"},
		})
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	})

	t.Run("sections get positions in input order", func(t *testing.T) {
		f := newFixture()
		headings := []string{"Intro", "Body", "Conclusion"}

		f.projects.On("CreateWithSections", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		p, err := f.svc.CreateProject(context.Background(), userID, &CreateProjectInput{
			Title:    "Q1 Report",
			Topic:    "Quarterly results",
			DocType:  models.DocTypeWord,
			Headings: headings,
		})
		require.NoError(t, err)
		require.Equal(t, models.StatusDraft, p.Status)
		require.Len(t, p.Sections, 3)
		for i, sec := range p.Sections {
			require.Equal(t, i, sec.Position)
			require.Equal(t, headings[i], sec.Heading)
			require.Empty(t, sec.Content)
		}
		f.projects.AssertExpectations(t)
	})

	t.Run("config stored verbatim with empty default", func(t *testing.T) {
		f := newFixture()
		f.projects.On("CreateWithSections", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

		p, err := f.svc.CreateProject(context.Background(), userID, &CreateProjectInput{
			Title: "a", Topic: "b", DocType: models.DocTypePPT, Headings: []string{"h"},
		})
		require.NoError(t, err)
		require.JSONEq(t, "{}", string(p.Config))

		raw := json.RawMessage(`{"theme":"dark","slides":7}`)
		p, err = f.svc.CreateProject(context.Background(), userID, &CreateProjectInput{
			Title: "a", Topic: "b", DocType: models.DocTypePPT, Headings: []string{"h"}, Config: raw,
		})
		require.NoError(t, err)
		require.Equal(t, datatypes.JSON(raw), p.Config)
	})
}

func TestGenerateContent(t *testing.T) {
	userID := uuid.New()

	t.Run("skips non-empty sections unless regenerating", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID,
			models.Section{Position: 0, Heading: "Intro", Content: "already written"},
			models.Section{Position: 1, Heading: "Body", Content: ""},
		)

		var events []string
		f.projects.On("GetOwned", mock.Anything, p.ID, userID, mock.Anything).Return(nil, p).Twice()
		f.projects.On("UpdateStatus", mock.Anything, p.ID, models.StatusGenerating).
			Run(func(mock.Arguments) { events = append(events, "generating") }).Return(nil).Once()
		f.projects.On("UpdateStatus", mock.Anything, p.ID, models.StatusReady).
			Run(func(mock.Arguments) { events = append(events, "ready") }).Return(nil).Once()
		f.sections.On("SaveGenerated", mock.Anything, p.Sections[1].ID, "generated: Body", mock.MatchedBy(func(prompt *string) bool {
			return prompt != nil && *prompt == initialPrompt
		})).Run(func(mock.Arguments) { events = append(events, "save") }).Return(nil).Once()

		_, err := f.svc.GenerateContent(context.Background(), p.ID, userID, false)
		require.NoError(t, err)

		// exactly one generation call, for the empty section only
		require.Len(t, f.gen.calls, 1)
		require.Equal(t, "Body", f.gen.calls[0].Heading)
		require.Equal(t, p.Topic, f.gen.calls[0].Topic)
		require.Empty(t, f.gen.calls[0].RefinePrompt)

		// generating persisted before any save, ready only after all attempts
		require.Equal(t, []string{"generating", "save", "ready"}, events)
		f.projects.AssertExpectations(t)
		f.sections.AssertExpectations(t)
	})

	t.Run("regenerate overwrites every section", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID,
			models.Section{Position: 0, Heading: "Intro", Content: "already written"},
			models.Section{Position: 1, Heading: "Body", Content: "also written"},
		)

		f.projects.On("GetOwned", mock.Anything, p.ID, userID, mock.Anything).Return(nil, p).Twice()
		f.projects.On("UpdateStatus", mock.Anything, p.ID, models.StatusGenerating).Return(nil).Once()
		f.projects.On("UpdateStatus", mock.Anything, p.ID, models.StatusReady).Return(nil).Once()
		f.sections.On("SaveGenerated", mock.Anything, p.Sections[0].ID, "generated: Intro", mock.Anything).Return(nil).Once()
		f.sections.On("SaveGenerated", mock.Anything, p.Sections[1].ID, "generated: Body", mock.Anything).Return(nil).Once()

		_, err := f.svc.GenerateContent(context.Background(), p.ID, userID, true)
		require.NoError(t, err)
		require.Len(t, f.gen.calls, 2)
		// sections attempted in position order
		require.Equal(t, "Intro", f.gen.calls[0].Heading)
		require.Equal(t, "Body", f.gen.calls[1].Heading)
		f.sections.AssertExpectations(t)
	})

	t.Run("provider failure is stored as sentinel and project still becomes ready", func(t *testing.T) {
		f := newFixture()
		f.gen.respond = func(in generator.SectionInput) string { return "AI Error: provider timeout" }

		p := ownedProject(userID, models.Section{Position: 0, Heading: "Intro"})

		f.projects.On("GetOwned", mock.Anything, p.ID, userID, mock.Anything).Return(nil, p).Twice()
		f.projects.On("UpdateStatus", mock.Anything, p.ID, models.StatusGenerating).Return(nil).Once()
		f.projects.On("UpdateStatus", mock.Anything, p.ID, models.StatusReady).Return(nil).Once()
		f.sections.On("SaveGenerated", mock.Anything, p.Sections[0].ID, "AI Error: provider timeout", mock.Anything).Return(nil).Once()

		_, err := f.svc.GenerateContent(context.Background(), p.ID, userID, false)
		require.NoError(t, err)
		f.projects.AssertExpectations(t)
		f.sections.AssertExpectations(t)
	})

	t.Run("unowned project is not found and untouched", func(t *testing.T) {
		f := newFixture()
		projectID := uuid.New()

		f.projects.On("GetOwned", mock.Anything, projectID, userID, mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "project not found"), nil).Once()

		_, err := f.svc.GenerateContent(context.Background(), projectID, userID, true)
		require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		f.projects.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		require.Empty(t, f.gen.calls)
	})
}

func TestDecideGeneration(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		regenerate bool
		want       generationAction
	}{
		{"empty content always generates", "", false, actionGenerate},
		{"empty content with regenerate", "", true, actionGenerate},
		{"existing content is kept", "text", false, actionSkip},
		{"existing content regenerates on request", "text", true, actionGenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := &models.Section{Content: tt.content}
			require.Equal(t, tt.want, decideGeneration(sec, tt.regenerate))
		})
	}
}

func TestRefineSection(t *testing.T) {
	userID := uuid.New()

	t.Run("empty instruction rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.RefineSection(context.Background(), uuid.New(), userID, "   ")
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
		require.Empty(t, f.gen.calls)
	})

	t.Run("appends one revision with the instruction as prompt", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID, models.Section{Position: 0, Heading: "Intro", Content: "draft text"})
		sec := p.Sections[0]

		f.sections.On("GetOwned", mock.Anything, sec.ID, userID, mock.Anything).Return(nil, &sec).Twice()
		f.projects.On("GetByID", mock.Anything, sec.ProjectID, mock.Anything).Return(nil, p).Once()
		f.sections.On("SaveGenerated", mock.Anything, sec.ID, "generated: Intro", mock.MatchedBy(func(prompt *string) bool {
			return prompt != nil && *prompt == "make it formal"
		})).Return(nil).Once()

		out, err := f.svc.RefineSection(context.Background(), sec.ID, userID, "make it formal")
		require.NoError(t, err)
		require.Equal(t, sec.ID, out.ID)

		require.Len(t, f.gen.calls, 1)
		require.Equal(t, "draft text", f.gen.calls[0].CurrentContent)
		require.Equal(t, "make it formal", f.gen.calls[0].RefinePrompt)
		f.sections.AssertExpectations(t)
	})

	t.Run("unowned section is not found", func(t *testing.T) {
		f := newFixture()
		sectionID := uuid.New()

		f.sections.On("GetOwned", mock.Anything, sectionID, userID, mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "section not found"), nil).Once()

		_, err := f.svc.RefineSection(context.Background(), sectionID, userID, "expand")
		require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		require.Empty(t, f.gen.calls)
	})
}

func TestLeaveFeedback(t *testing.T) {
	userID := uuid.New()

	t.Run("appends a row without touching content", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID, models.Section{Position: 0, Heading: "Intro", Content: "kept"})
		sec := p.Sections[0]

		positive := true
		comment := "love it"

		f.sections.On("GetOwned", mock.Anything, sec.ID, userID, mock.Anything).Return(nil, &sec).Twice()
		f.sections.On("AddFeedback", mock.Anything, mock.MatchedBy(func(fb *models.SectionFeedback) bool {
			return fb.SectionID == sec.ID && fb.IsPositive != nil && *fb.IsPositive && *fb.Comment == "love it"
		})).Return(nil).Once()

		out, err := f.svc.LeaveFeedback(context.Background(), sec.ID, userID, &FeedbackInput{IsPositive: &positive, Comment: &comment})
		require.NoError(t, err)
		require.Equal(t, "kept", out.Content)
		f.sections.AssertNotCalled(t, "SaveGenerated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("two submissions produce two rows", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID, models.Section{Position: 0, Heading: "Intro"})
		sec := p.Sections[0]

		f.sections.On("GetOwned", mock.Anything, sec.ID, userID, mock.Anything).Return(nil, &sec).Times(4)
		f.sections.On("AddFeedback", mock.Anything, mock.Anything).Return(nil).Twice()

		_, err := f.svc.LeaveFeedback(context.Background(), sec.ID, userID, &FeedbackInput{})
		require.NoError(t, err)
		_, err = f.svc.LeaveFeedback(context.Background(), sec.ID, userID, &FeedbackInput{})
		require.NoError(t, err)
		f.sections.AssertNumberOfCalls(t, "AddFeedback", 2)
	})
}

func TestExportProject(t *testing.T) {
	userID := uuid.New()

	t.Run("passes the owned project to the renderer", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID, models.Section{Position: 0, Heading: "Intro", Content: "text"})
		f.renderer.result = &render.Result{Data: []byte("PK"), Filename: "Q1_Report.docx", MimeType: render.MimeDOCX}

		f.projects.On("GetOwned", mock.Anything, p.ID, userID, mock.Anything).Return(nil, p).Once()

		res, err := f.svc.ExportProject(context.Background(), p.ID, userID)
		require.NoError(t, err)
		require.Equal(t, "Q1_Report.docx", res.Filename)
		require.Equal(t, 1, f.renderer.calls)
	})

	t.Run("renderer dependency missing surfaces as unavailable", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID)
		f.renderer.err = render.ErrDependencyMissing

		f.projects.On("GetOwned", mock.Anything, p.ID, userID, mock.Anything).Return(nil, p).Once()

		_, err := f.svc.ExportProject(context.Background(), p.ID, userID)
		require.True(t, appErr.IsCode(err, appErr.CodeUnavailable))
	})

	t.Run("unowned project is not found and never rendered", func(t *testing.T) {
		f := newFixture()
		projectID := uuid.New()

		f.projects.On("GetOwned", mock.Anything, projectID, userID, mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "project not found"), nil).Once()

		_, err := f.svc.ExportProject(context.Background(), projectID, userID)
		require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		require.Zero(t, f.renderer.calls)
	})
}

func TestDeleteProject(t *testing.T) {
	userID := uuid.New()

	t.Run("cascades after ownership check", func(t *testing.T) {
		f := newFixture()
		p := ownedProject(userID)

		f.projects.On("GetOwned", mock.Anything, p.ID, userID, mock.Anything).Return(nil, p).Once()
		f.projects.On("DeleteCascade", mock.Anything, p.ID).Return(nil).Once()

		require.NoError(t, f.svc.DeleteProject(context.Background(), p.ID, userID))
		f.projects.AssertExpectations(t)
	})

	t.Run("unowned project is not deleted", func(t *testing.T) {
		f := newFixture()
		projectID := uuid.New()

		f.projects.On("GetOwned", mock.Anything, projectID, userID, mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "project not found"), nil).Once()

		err := f.svc.DeleteProject(context.Background(), projectID, userID)
		require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		f.projects.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
	})
}
