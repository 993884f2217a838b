package repository

import (
	"context"
	"errors"

	"github.com/doc-studio/engine/internal/models"
	appErr "github.com/doc-studio/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	BaseRepository[models.Project]

	// CreateWithSections persists a project and its sections in one
	// transaction: either all rows exist afterwards or none do.
	CreateWithSections(ctx context.Context, p *models.Project, sections []models.Section) error

	// GetOwned loads a project by id scoped to its owner, with sections
	// ordered by position and revision/feedback history in creation order.
	// A missing project and a project owned by someone else are
	// indistinguishable: both return not_found.
	GetOwned(ctx context.Context, projectID, userID uuid.UUID, dest *models.Project) error

	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	UpdateStatus(ctx context.Context, projectID uuid.UUID, status string) error

	// DeleteCascade removes a project and everything it owns, walking the
	// ownership tree top-down (feedback, revisions, sections, project) in
	// one transaction.
	DeleteCascade(ctx context.Context, projectID uuid.UUID) error
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) CreateWithSections(ctx context.Context, p *models.Project, sections []models.Section) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for i := range sections {
			sections[i].ProjectID = p.ID
			if err := tx.Create(&sections[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create project with sections failed")
	}
	p.Sections = sections
	return nil
}

func (r *projectRepository) GetOwned(ctx context.Context, projectID, userID uuid.UUID, dest *models.Project) error {
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.position ASC")
		}).
		Preload("Sections.Revisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_revisions.created_at ASC")
		}).
		Preload("Sections.Feedback", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_feedback.created_at ASC")
		}).
		Where("id = ? AND user_id = ?", projectID, userID).
		First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "project not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get owned project failed")
	}
	return nil
}

func (r *projectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by user failed")
	}
	return out, nil
}

func (r *projectRepository) UpdateStatus(ctx context.Context, projectID uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", projectID).Update("status", status)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update project status failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "project not found")
	}
	return nil
}

func (r *projectRepository) DeleteCascade(ctx context.Context, projectID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sectionIDs := tx.Model(&models.Section{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&models.SectionFeedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&models.SectionRevision{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", projectID).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "project not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "delete project failed")
	}
	return nil
}
