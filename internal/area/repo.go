package area

import (
	"errors"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/query"

	"gorm.io/gorm"
)

type Filter struct {
	AreaName string
}

var sortColumns = map[string]string{
	"areaName":  "area_name",
	"location":  "location",
	"createdAt": "created_at",
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(f Filter, page query.Page) ([]models.Area, int64, error) {
	q := r.db.Model(&models.Area{})
	if f.AreaName != "" {
		q = q.Where("area_name = ?", f.AreaName)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var areas []models.Area
	q = q.Order(page.OrderClause(sortColumns, "created_at DESC")).Offset(page.Offset())
	if limit := page.Limit(); limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&areas).Error; err != nil {
		return nil, 0, err
	}
	return areas, total, nil
}

func (r *Repo) GetDetail(id string) (*models.Area, error) {
	var a models.Area
	err := r.db.Preload("Creator").First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Area not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
