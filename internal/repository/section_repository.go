package repository

import (
	"context"
	"errors"

	"github.com/doc-studio/engine/internal/models"
	appErr "github.com/doc-studio/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionRepository interface {
	BaseRepository[models.Section]

	// GetOwned loads a section by id, scoped to the owner of its parent
	// project. History is preloaded in creation order. Missing and
	// not-owned both return not_found.
	GetOwned(ctx context.Context, sectionID, userID uuid.UUID, dest *models.Section) error

	// SaveGenerated overwrites the section's content and appends exactly
	// one revision recording the prompt that produced it, atomically.
	SaveGenerated(ctx context.Context, sectionID uuid.UUID, content string, prompt *string) error

	AddFeedback(ctx context.Context, fb *models.SectionFeedback) error
}

type sectionRepository struct {
	BaseRepository[models.Section]
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{BaseRepository: NewBaseRepository[models.Section](db), db: db}
}

func (r *sectionRepository) GetOwned(ctx context.Context, sectionID, userID uuid.UUID, dest *models.Section) error {
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = sections.project_id").
		Where("sections.id = ? AND projects.user_id = ?", sectionID, userID).
		Preload("Revisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_revisions.created_at ASC")
		}).
		Preload("Feedback", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_feedback.created_at ASC")
		}).
		First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "section not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get owned section failed")
	}
	return nil
}

func (r *sectionRepository) SaveGenerated(ctx context.Context, sectionID uuid.UUID, content string, prompt *string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Section{}).Where("id = ?", sectionID).Update("content", content)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&models.SectionRevision{
			SectionID: sectionID,
			Prompt:    prompt,
			Content:   content,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "section not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "save generated content failed")
	}
	return nil
}

func (r *sectionRepository) AddFeedback(ctx context.Context, fb *models.SectionFeedback) error {
	if err := r.db.WithContext(ctx).Create(fb).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "add section feedback failed")
	}
	return nil
}
