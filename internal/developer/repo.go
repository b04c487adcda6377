package developer

import (
	"errors"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/query"

	"gorm.io/gorm"
)

type Filter struct {
	DeveloperName string
}

var sortColumns = map[string]string{
	"developerName": "developer_name",
	"createdAt":     "created_at",
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(f Filter, page query.Page) ([]models.Developer, int64, error) {
	q := r.db.Model(&models.Developer{})
	if f.DeveloperName != "" {
		q = q.Where("developer_name = ?", f.DeveloperName)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var developers []models.Developer
	q = q.Order(page.OrderClause(sortColumns, "created_at DESC")).Offset(page.Offset())
	if limit := page.Limit(); limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&developers).Error; err != nil {
		return nil, 0, err
	}
	return developers, total, nil
}

func (r *Repo) GetDetail(id string) (*models.Developer, error) {
	var d models.Developer
	err := r.db.Preload("Creator").First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Developer not found")
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
