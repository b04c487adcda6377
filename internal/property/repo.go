package property

import (
	"errors"
	"strings"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/query"

	"gorm.io/gorm"
)

type Filter struct {
	TitleLike    string
	PropertyType string
}

var sortColumns = map[string]string{
	"title":        "title",
	"price":        "price",
	"propertyType": "property_type",
	"status":       "status",
	"createdAt":    "created_at",
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(f Filter, page query.Page) ([]models.Property, int64, error) {
	q := r.db.Model(&models.Property{})
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.TitleLike != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.TitleLike)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	q = q.Order(page.OrderClause(sortColumns, "created_at DESC")).Offset(page.Offset())
	if limit := page.Limit(); limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *Repo) GetDetail(id string) (*models.Property, error) {
	var p models.Property
	err := r.db.Preload("Creator").Preload("Area").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Property not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
