package property

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

type CreatePropertyRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PropertyType    string   `json:"propertyType"`
	Location        string   `json:"location"`
	Price           float64  `json:"price"`
	PropImages      []string `json:"propImages"`
	BackgroundImage string   `json:"backgroundImage"`
	Email           string   `json:"email"`
	NumOfBathrooms  int      `json:"numOfbathrooms"`
	NumOfRooms      int      `json:"numOfrooms"`
	Size            string   `json:"size"`
	Features        []string `json:"features"`
	PermitNo        string   `json:"permitNo"`
	AreaName        string   `json:"areaName"`
	Purpose         string   `json:"purpose"`
	FurnishingType  string   `json:"furnishingType"`
	Classification  string   `json:"classification"`
	Featured        bool     `json:"featured"`
	ProjectName     string   `json:"projectName"`
	Barcode         string   `json:"barcode"`
}

type UpdatePropertyRequest struct {
	CreatePropertyRequest

	// A payload carrying status takes the lifecycle fast path: only the
	// status column is written, images and relations stay untouched.
	Status *models.PropertyStatus `json:"status"`
}

type Service struct {
	db   *gorm.DB
	blob media.Service
}

func NewService(db *gorm.DB, blob media.Service) *Service {
	return &Service{db: db, blob: blob}
}

func (s *Service) Create(req CreatePropertyRequest) (*models.Property, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.AreaName = strings.TrimSpace(req.AreaName)

	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if req.Email == "" {
		return nil, apperr.Validation("email is required")
	}
	if req.AreaName == "" {
		return nil, apperr.Validation("areaName is required")
	}

	// Required relations are resolved before any upload: a missing user or
	// area must not cost a single blob-store call.
	var user models.User
	if err := s.db.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.RelatedMissing("User not found")
		}
		return nil, err
	}

	var a models.Area
	if err := s.db.First(&a, "area_name = ?", req.AreaName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.RelatedMissing("Area '%s' not found. Please create the area first.", req.AreaName)
		}
		return nil, err
	}

	propImageURLs, err := media.UploadAll(s.blob, req.PropImages)
	if err != nil {
		return nil, err
	}
	backgroundURL, err := media.ResolveOne(s.blob, req.BackgroundImage)
	if err != nil {
		return nil, err
	}
	barcodeURL, err := media.ResolveOne(s.blob, req.Barcode)
	if err != nil {
		return nil, err
	}

	p := models.Property{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Location:     req.Location,
		Price:        req.Price,
		Images: models.PropertyImages{
			PropImages:      models.StringList(propImageURLs),
			BackgroundImage: backgroundURL,
		},
		NumOfRooms:     req.NumOfRooms,
		NumOfBathrooms: req.NumOfBathrooms,
		Size:           req.Size,
		Features:       models.StringList(req.Features),
		PermitNo:       req.PermitNo,
		AreaID:         a.ID,
		Purpose:        req.Purpose,
		FurnishingType: req.FurnishingType,
		Classification: req.Classification,
		Featured:       req.Featured,
		ProjectName:    req.ProjectName,
		Barcode:        barcodeURL,
		Status:         models.PropertyActive,
		CreatorID:      user.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		user.AllProperties = refs.Add(user.AllProperties, p.ID)
		if err := tx.Model(&user).Update("all_properties", user.AllProperties).Error; err != nil {
			return err
		}
		a.PropertyIDs = refs.Add(a.PropertyIDs, p.ID)
		return tx.Model(&a).Update("property_ids", a.PropertyIDs).Error
	})
	if err != nil {
		return nil, err
	}

	_ = audit.WriteLog(s.db, audit.LogOptions{
		ActorEmail: user.Email,
		EntityType: "property",
		EntityID:   p.ID,
		Action:     models.AuditActionCreate,
		After:      p,
	})

	return &p, nil
}

// UpdateStatus is the lifecycle fast path: it writes the status column and
// nothing else, so calling it twice with the same payload stays idempotent
// and never touches the blob store.
func (s *Service) UpdateStatus(id string, status models.PropertyStatus) (*models.Property, error) {
	if status != models.PropertyActive && status != models.PropertyArchived {
		return nil, apperr.Validation("status must be '%s' or '%s'", models.PropertyActive, models.PropertyArchived)
	}

	var p models.Property
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}

	if err := s.db.Model(&p).Update("status", status).Error; err != nil {
		return nil, err
	}
	p.Status = status

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType:  "property",
		EntityID:    p.ID,
		Action:      models.AuditActionUpdate,
		Description: "status changed to " + string(status),
	})

	return &p, nil
}

func (s *Service) Update(id string, req UpdatePropertyRequest) (*models.Property, error) {
	if req.Status != nil {
		return s.UpdateStatus(id, *req.Status)
	}

	var existing models.Property
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.AreaName = strings.TrimSpace(req.AreaName)
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if req.AreaName == "" {
		return nil, apperr.Validation("areaName is required")
	}

	var a models.Area
	if err := s.db.First(&a, "area_name = ?", req.AreaName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.RelatedMissing("Area '%s' not found. Please create the area first.", req.AreaName)
		}
		return nil, err
	}

	// Values that are already blob URLs pass through untouched; only raw
	// payloads are uploaded.
	propImageURLs, err := media.ResolveAll(s.blob, req.PropImages)
	if err != nil {
		return nil, err
	}
	backgroundURL, err := media.ResolveOne(s.blob, req.BackgroundImage)
	if err != nil {
		return nil, err
	}
	if backgroundURL == "" {
		backgroundURL = existing.Images.BackgroundImage
	}
	barcodeURL, err := media.ResolveOne(s.blob, req.Barcode)
	if err != nil {
		return nil, err
	}
	if barcodeURL == "" {
		barcodeURL = existing.Barcode
	}

	updated := existing
	updated.Title = req.Title
	updated.Description = req.Description
	updated.PropertyType = req.PropertyType
	updated.Location = req.Location
	updated.Price = req.Price
	updated.Images = models.PropertyImages{
		PropImages:      models.StringList(propImageURLs),
		BackgroundImage: backgroundURL,
	}
	updated.NumOfRooms = req.NumOfRooms
	updated.NumOfBathrooms = req.NumOfBathrooms
	updated.Size = req.Size
	updated.Features = models.StringList(req.Features)
	updated.PermitNo = req.PermitNo
	updated.AreaID = a.ID
	updated.Purpose = req.Purpose
	updated.FurnishingType = req.FurnishingType
	updated.Classification = req.Classification
	updated.Featured = req.Featured
	updated.ProjectName = req.ProjectName
	updated.Barcode = barcodeURL

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		if existing.AreaID != a.ID {
			return s.moveAreaRef(tx, existing.AreaID, &a, updated.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reclaim superseded blobs after the commit, best effort.
	var gone []string
	gone = append(gone, media.Superseded(existing.Images.PropImages, updated.Images.PropImages)...)
	if existing.Images.BackgroundImage != "" && existing.Images.BackgroundImage != updated.Images.BackgroundImage {
		gone = append(gone, existing.Images.BackgroundImage)
	}
	if existing.Barcode != "" && existing.Barcode != updated.Barcode {
		gone = append(gone, existing.Barcode)
	}
	media.DestroyAll(s.blob, gone)

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "property",
		EntityID:   updated.ID,
		Action:     models.AuditActionUpdate,
		Before:     existing,
		After:      updated,
	})

	return &updated, nil
}

// moveAreaRef moves the property id from the old area's list to the new
// one's, inside the caller's transaction.
func (s *Service) moveAreaRef(tx *gorm.DB, oldAreaID string, next *models.Area, propertyID string) error {
	if oldAreaID != "" {
		var old models.Area
		if err := tx.First(&old, "id = ?", oldAreaID).Error; err == nil {
			old.PropertyIDs = refs.Drop(old.PropertyIDs, propertyID)
			if err := tx.Model(&old).Update("property_ids", old.PropertyIDs).Error; err != nil {
				return err
			}
		}
	}
	next.PropertyIDs = refs.Add(next.PropertyIDs, propertyID)
	return tx.Model(next).Update("property_ids", next.PropertyIDs).Error
}

func (s *Service) Delete(id string) error {
	var p models.Property
	if err := s.db.Preload("Creator").Preload("Area").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Property not found")
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Property{}, "id = ?", id).Error; err != nil {
			return err
		}
		if p.Creator != nil {
			p.Creator.AllProperties = refs.Drop(p.Creator.AllProperties, p.ID)
			if err := tx.Model(p.Creator).Update("all_properties", p.Creator.AllProperties).Error; err != nil {
				return err
			}
		}
		if p.Area != nil {
			p.Area.PropertyIDs = refs.Drop(p.Area.PropertyIDs, p.ID)
			if err := tx.Model(p.Area).Update("property_ids", p.Area.PropertyIDs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Blob release happens after the committed transaction; failures leave
	// orphaned blobs, which is logged and accepted.
	owned := append([]string{}, p.Images.PropImages...)
	owned = append(owned, p.Images.BackgroundImage, p.Barcode)
	media.DestroyAll(s.blob, owned)

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "property",
		EntityID:   p.ID,
		Action:     models.AuditActionDelete,
		Before:     p,
	})

	return nil
}
