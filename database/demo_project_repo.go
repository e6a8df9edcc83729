package database

import (
	"context"
	"errors"

	"github.com/rpupo63/myfolio-api/models"
	"gorm.io/gorm"
)

type DemoProjectRepo struct {
	db *gorm.DB
}

func NewDemoProjectRepo(db *gorm.DB) *DemoProjectRepo {
	return &DemoProjectRepo{db}
}

// FindAll returns all demo projects ordered by id
func (r *DemoProjectRepo) FindAll(ctx context.Context) ([]*models.DemoProject, error) {
	var projects []*models.DemoProject
	err := r.db.WithContext(ctx).Order("id").Find(&projects).Error
	return projects, err
}

// FindByID returns the demo project with the given id, or nil when no row matches.
func (r *DemoProjectRepo) FindByID(ctx context.Context, id uint) (*models.DemoProject, error) {
	var project models.DemoProject
	err := r.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new demo project; the assigned id is written back into project.
func (r *DemoProjectRepo) Add(ctx context.Context, project *models.DemoProject) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Delete removes a demo project from the database by id
func (r *DemoProjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DemoProject{}, id).Error
}
