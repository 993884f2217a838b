package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/doc-studio/engine/internal/models"
)

func TestNewProjectDetailView_OrdersSectionsByPosition(t *testing.T) {
	p := &models.Project{
		ID:      uuid.New(),
		Title:   "Plan",
		Topic:   "Q3",
		DocType: models.DocTypeWord,
		Status:  models.StatusReady,
		Sections: []models.Section{
			{ID: uuid.New(), Heading: "Conclusion", Position: 2},
			{ID: uuid.New(), Heading: "Intro", Position: 0},
			{ID: uuid.New(), Heading: "Body", Position: 1},
		},
	}

	view := NewProjectDetailView(p)

	require.Len(t, view.Sections, 3)
	require.Equal(t, "Intro", view.Sections[0].Heading)
	require.Equal(t, "Body", view.Sections[1].Heading)
	require.Equal(t, "Conclusion", view.Sections[2].Heading)
}

func TestNewSectionView_OrdersHistoryByCreatedAt(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	prompt := "tighten"
	s := &models.Section{
		ID:      uuid.New(),
		Heading: "Intro",
		Content: "latest",
		Revisions: []models.SectionRevision{
			{ID: uuid.New(), Content: "second", Prompt: &prompt, CreatedAt: base.Add(time.Hour)},
			{ID: uuid.New(), Content: "first", CreatedAt: base},
		},
		Feedback: []models.SectionFeedback{
			{ID: uuid.New(), CreatedAt: base.Add(2 * time.Hour)},
			{ID: uuid.New(), CreatedAt: base},
		},
	}

	view := NewSectionView(s)

	require.Equal(t, "first", view.Revisions[0].Content)
	require.Equal(t, "second", view.Revisions[1].Content)
	require.True(t, view.Feedback[0].CreatedAt.Before(view.Feedback[1].CreatedAt))
}

func TestNewProjectView_ConfigDefaultsToEmptyObject(t *testing.T) {
	p := &models.Project{ID: uuid.New(), DocType: models.DocTypePPT, Status: models.StatusDraft}

	view := NewProjectView(p)

	require.Equal(t, json.RawMessage("{}"), view.Config)
}

func TestNewProjectView_ConfigPreservedVerbatim(t *testing.T) {
	raw := `{"tone":"formal","slides":12}`
	p := &models.Project{ID: uuid.New(), Config: []byte(raw)}

	view := NewProjectView(p)

	require.JSONEq(t, raw, string(view.Config))
}
