package project

import (
	"errors"
	"strings"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/query"

	"gorm.io/gorm"
)

type Filter struct {
	ProjectNameLike string
	ProjectType     string
}

var sortColumns = map[string]string{
	"projectName": "project_name",
	"projectType": "project_type",
	"startPrice":  "start_price",
	"createdAt":   "created_at",
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(f Filter, page query.Page) ([]models.Project, int64, error) {
	q := r.db.Model(&models.Project{})
	if f.ProjectType != "" {
		q = q.Where("project_type = ?", f.ProjectType)
	}
	if f.ProjectNameLike != "" {
		q = q.Where("LOWER(project_name) LIKE ?", "%"+strings.ToLower(f.ProjectNameLike)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	q = q.Order(page.OrderClause(sortColumns, "created_at DESC")).Offset(page.Offset())
	if limit := page.Limit(); limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *Repo) GetDetail(id string) (*models.Project, error) {
	var p models.Project
	err := r.db.Preload("Area").Preload("Developer").Preload("Creator").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Project not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
