package types

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/doc-studio/engine/internal/models"
)

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectView struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Topic     string          `json:"topic"`
	DocType   string          `json:"doc_type"`
	Status    string          `json:"status"`
	Config    json.RawMessage `json:"config"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ProjectDetailView struct {
	ProjectView
	Sections []SectionView `json:"sections"`
}

type SectionView struct {
	ID        uuid.UUID      `json:"id"`
	Heading   string         `json:"heading"`
	Content   string         `json:"content"`
	Position  int            `json:"position"`
	UpdatedAt time.Time      `json:"updated_at"`
	Revisions []RevisionView `json:"revisions"`
	Feedback  []FeedbackView `json:"feedback"`
}

type RevisionView struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Prompt    *string   `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackView struct {
	ID         uuid.UUID `json:"id"`
	IsPositive *bool     `json:"is_positive"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func NewProjectView(p *models.Project) ProjectView {
	cfg := json.RawMessage(p.Config)
	if len(cfg) == 0 {
		cfg = json.RawMessage("{}")
	}
	return ProjectView{
		ID:        p.ID,
		Title:     p.Title,
		Topic:     p.Topic,
		DocType:   p.DocType,
		Status:    p.Status,
		Config:    cfg,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewProjectListView(projects []models.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, NewProjectView(&projects[i]))
	}
	return views
}

// NewProjectDetailView shapes a fully loaded project. Sections are ordered by
// position and each section's history by creation time, regardless of how the
// associations were loaded.
func NewProjectDetailView(p *models.Project) ProjectDetailView {
	sections := make([]SectionView, 0, len(p.Sections))
	for i := range p.Sections {
		sections = append(sections, NewSectionView(&p.Sections[i]))
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Position < sections[j].Position })
	return ProjectDetailView{ProjectView: NewProjectView(p), Sections: sections}
}

func NewSectionView(s *models.Section) SectionView {
	revisions := make([]RevisionView, 0, len(s.Revisions))
	for _, r := range s.Revisions {
		revisions = append(revisions, RevisionView{ID: r.ID, Content: r.Content, Prompt: r.Prompt, CreatedAt: r.CreatedAt})
	}
	sort.Slice(revisions, func(i, j int) bool { return revisions[i].CreatedAt.Before(revisions[j].CreatedAt) })

	feedback := make([]FeedbackView, 0, len(s.Feedback))
	for _, f := range s.Feedback {
		feedback = append(feedback, FeedbackView{ID: f.ID, IsPositive: f.IsPositive, Comment: f.Comment, CreatedAt: f.CreatedAt})
	}
	sort.Slice(feedback, func(i, j int) bool { return feedback[i].CreatedAt.Before(feedback[j].CreatedAt) })

	return SectionView{
		ID:        s.ID,
		Heading:   s.Heading,
		Content:   s.Content,
		Position:  s.Position,
		UpdatedAt: s.UpdatedAt,
		Revisions: revisions,
		Feedback:  feedback,
	}
}
