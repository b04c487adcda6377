package developer

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

type CreateDeveloperRequest struct {
	DeveloperName string `json:"developerName"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	Email         string `json:"email"`
}

type UpdateDeveloperRequest struct {
	DeveloperName string `json:"developerName"`
	Description   string `json:"description"`
	Image         string `json:"image"`
}

type Service struct {
	db   *gorm.DB
	blob media.Service
}

func NewService(db *gorm.DB, blob media.Service) *Service {
	return &Service{db: db, blob: blob}
}

func (s *Service) Create(req CreateDeveloperRequest) (*models.Developer, error) {
	req.DeveloperName = strings.TrimSpace(req.DeveloperName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.DeveloperName == "" {
		return nil, apperr.Validation("developerName is required")
	}
	if req.Email == "" {
		return nil, apperr.Validation("email is required")
	}

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

	d := models.Developer{
		ID:            uuid.NewString(),
		DeveloperName: req.DeveloperName,
		Description:   req.Description,
		Image:         imageURL,
		CreatorID:     user.ID,
		ProjectIDs:    models.IDList{},
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&d).Error; err != nil {
			return err
		}
		user.AllDevelopers = refs.Add(user.AllDevelopers, d.ID)
		return tx.Model(&user).Update("all_developers", user.AllDevelopers).Error
	})
	if err != nil {
		return nil, err
	}

	_ = audit.WriteLog(s.db, audit.LogOptions{
		ActorEmail: user.Email,
		EntityType: "developer",
		EntityID:   d.ID,
		Action:     models.AuditActionCreate,
		After:      d,
	})

	return &d, nil
}

func (s *Service) Update(id string, req UpdateDeveloperRequest) (*models.Developer, error) {
	var existing models.Developer
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Developer not found")
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
	updated.DeveloperName = strings.TrimSpace(req.DeveloperName)
	updated.Description = req.Description
	updated.Image = imageURL

	if updated.DeveloperName == "" {
		return nil, apperr.Validation("developerName is required")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	if existing.Image != "" && existing.Image != updated.Image {
		media.DestroyAll(s.blob, []string{existing.Image})
	}

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "developer",
		EntityID:   updated.ID,
		Action:     models.AuditActionUpdate,
		Before:     existing,
		After:      updated,
	})

	return &updated, nil
}

func (s *Service) Delete(id string) error {
	var d models.Developer
	if err := s.db.Preload("Creator").First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Developer not found")
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Developer{}, "id = ?", id).Error; err != nil {
			return err
		}
		if d.Creator != nil {
			d.Creator.AllDevelopers = refs.Drop(d.Creator.AllDevelopers, d.ID)
			if err := tx.Model(d.Creator).Update("all_developers", d.Creator.AllDevelopers).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	media.DestroyAll(s.blob, []string{d.Image})

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "developer",
		EntityID:   d.ID,
		Action:     models.AuditActionDelete,
		Before:     d,
	})

	return nil
}
