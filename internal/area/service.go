package area

import (
	"errors"
	"strings"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/audit"
	"bayhomes-backend/internal/media"
	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/refs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateAreaRequest struct {
	AreaName    string   `json:"areaName"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
	Location    string   `json:"location"`
	Email       string   `json:"email"`
}

type UpdateAreaRequest struct {
	AreaName    string   `json:"areaName"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
	Location    string   `json:"location"`
}

type Service struct {
	db   *gorm.DB
	blob media.Service
}

func NewService(db *gorm.DB, blob media.Service) *Service {
	return &Service{db: db, blob: blob}
}

func (s *Service) Create(req CreateAreaRequest) (*models.Area, error) {
	req.AreaName = strings.TrimSpace(req.AreaName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.AreaName == "" {
		return nil, apperr.Validation("areaName is required")
	}
	if req.Email == "" {
		return nil, apperr.Validation("email is required")
	}

	// The owning user must exist before anything is uploaded or written.
	var user models.User
	if err := s.db.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.RelatedMissing("User not found")
		}
		return nil, err
	}

	imageURL, err := media.ResolveOne(s.blob, req.Image)
	if err != nil {
		return nil, err
	}

	a := models.Area{
		ID:          uuid.NewString(),
		AreaName:    req.AreaName,
		Description: req.Description,
		Features:    models.StringList(req.Features),
		Image:       imageURL,
		Location:    req.Location,
		CreatorID:   user.ID,
		PropertyIDs: models.IDList{},
		ProjectIDs:  models.IDList{},
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		user.AllAreas = refs.Add(user.AllAreas, a.ID)
		return tx.Model(&user).Update("all_areas", user.AllAreas).Error
	})
	if err != nil {
		return nil, err
	}

	_ = audit.WriteLog(s.db, audit.LogOptions{
		ActorEmail: user.Email,
		EntityType: "area",
		EntityID:   a.ID,
		Action:     models.AuditActionCreate,
		After:      a,
	})

	return &a, nil
}

func (s *Service) Update(id string, req UpdateAreaRequest) (*models.Area, error) {
	var existing models.Area
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Area not found")
		}
		return nil, err
	}

	imageURL, err := media.ResolveOne(s.blob, req.Image)
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		imageURL = existing.Image
	}

	updated := existing
	updated.AreaName = strings.TrimSpace(req.AreaName)
	updated.Description = req.Description
	updated.Features = models.StringList(req.Features)
	updated.Image = imageURL
	updated.Location = req.Location

	if updated.AreaName == "" {
		return nil, apperr.Validation("areaName is required")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	// Reclaim the replaced image after the commit, best effort.
	if existing.Image != "" && existing.Image != updated.Image {
		media.DestroyAll(s.blob, []string{existing.Image})
	}

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "area",
		EntityID:   updated.ID,
		Action:     models.AuditActionUpdate,
		Before:     existing,
		After:      updated,
	})

	return &updated, nil
}

func (s *Service) Delete(id string) error {
	var a models.Area
	if err := s.db.Preload("Creator").First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Area not found")
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Area{}, "id = ?", id).Error; err != nil {
			return err
		}
		if a.Creator != nil {
			a.Creator.AllAreas = refs.Drop(a.Creator.AllAreas, a.ID)
			if err := tx.Model(a.Creator).Update("all_areas", a.Creator.AllAreas).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Blob release stays outside the transaction; a failure here leaves an
	// orphaned blob, which is logged and accepted.
	media.DestroyAll(s.blob, []string{a.Image})

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "area",
		EntityID:   a.ID,
		Action:     models.AuditActionDelete,
		Before:     a,
	})

	return nil
}
