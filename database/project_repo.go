package database

import (
	"context"

	"github.com/rpupo63/myfolio-api/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects ordered by id. A NULL image_url comes back as an empty list.
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.db.WithContext(ctx).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ImageURL == nil {
			p.ImageURL = models.ImageList{}
		}
	}
	return projects, nil
}
