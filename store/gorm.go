package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"adscribe-server/models"
)

type gormStore struct {
	db *gorm.DB
}

// New creates a Store backed by the given gorm connection.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateProject(ctx context.Context, p *models.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (s *gormStore) DeleteProject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Unit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

func (s *gormStore) CreateUnits(ctx context.Context, units []models.Unit) error {
	if len(units) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&units).Error
}

func (s *gormStore) GetUnits(ctx context.Context, projectID string) ([]models.Unit, error) {
	var units []models.Unit
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("`order` ASC").
		Find(&units).Error
	return units, err
}

func (s *gormStore) UpdateProject(ctx context.Context, id string, upd Update) error {
	updates := upd.fields()
	updates["updated_at"] = time.Now()
	return s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Updates(updates).Error
}
