package project

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

type CreateProjectRequest struct {
	ProjectName     string             `json:"projectName"`
	Description     string             `json:"description"`
	ProjectType     string             `json:"projectType"`
	StartPrice      *float64           `json:"startPrice"`
	Size            *string            `json:"size"`
	Rooms           *int               `json:"rooms"`
	HandoverDate    *string            `json:"handoverDate"`
	Amenities       []string           `json:"aminities"`
	InImages        []string           `json:"inImages"`
	OutImages       []string           `json:"outImages"`
	BackgroundImage string             `json:"backgroundImage"`
	FloorPlans      []models.FloorPlan `json:"floorPlans"`
	DeveloperName   string             `json:"developerName"`
	AreaName        string             `json:"areaName"`
	Location        string             `json:"location"`
	AboutMap        string             `json:"aboutMap"`
	MapURL          string             `json:"mapURL"`
	Email           string             `json:"email"`
}

type Service struct {
	db   *gorm.DB
	blob media.Service
}

func NewService(db *gorm.DB, blob media.Service) *Service {
	return &Service{db: db, blob: blob}
}

func (s *Service) Create(req CreateProjectRequest) (*models.Project, error) {
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	req.DeveloperName = strings.TrimSpace(req.DeveloperName)
	req.AreaName = strings.TrimSpace(req.AreaName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.ProjectName == "" {
		return nil, apperr.Validation("projectName is required")
	}
	if req.DeveloperName == "" {
		return nil, apperr.Validation("developerName is required")
	}
	if req.AreaName == "" {
		return nil, apperr.Validation("areaName is required")
	}
	if req.Email == "" {
		return nil, apperr.Validation("email is required")
	}

	// All three relations are resolved before any upload so a missing one
	// never costs a blob-store call.
	dev, a, user, err := s.resolveRelations(req.DeveloperName, req.AreaName, req.Email)
	if err != nil {
		return nil, err
	}

	inURLs, err := media.UploadAll(s.blob, req.InImages)
	if err != nil {
		return nil, err
	}
	outURLs, err := media.UploadAll(s.blob, req.OutImages)
	if err != nil {
		return nil, err
	}
	backgroundURL, err := media.ResolveOne(s.blob, req.BackgroundImage)
	if err != nil {
		return nil, err
	}
	plans, err := s.resolveFloorPlans(req.FloorPlans, nil)
	if err != nil {
		return nil, err
	}

	p := models.Project{
		ID:           uuid.NewString(),
		ProjectName:  req.ProjectName,
		Description:  req.Description,
		ProjectType:  req.ProjectType,
		StartPrice:   req.StartPrice,
		Size:         req.Size,
		Rooms:        req.Rooms,
		HandoverDate: req.HandoverDate,
		Amenities:    models.StringList(req.Amenities),
		Images: models.ProjectImages{
			InImages:        models.StringList(inURLs),
			OutImages:       models.StringList(outURLs),
			BackgroundImage: backgroundURL,
		},
		FloorPlans:  plans,
		AreaID:      a.ID,
		DeveloperID: dev.ID,
		Location:    req.Location,
		AboutMap:    req.AboutMap,
		MapURL:      req.MapURL,
		CreatorID:   user.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		dev.ProjectIDs = refs.Add(dev.ProjectIDs, p.ID)
		if err := tx.Model(dev).Update("project_ids", dev.ProjectIDs).Error; err != nil {
			return err
		}
		a.ProjectIDs = refs.Add(a.ProjectIDs, p.ID)
		if err := tx.Model(a).Update("project_ids", a.ProjectIDs).Error; err != nil {
			return err
		}
		user.AllProjects = refs.Add(user.AllProjects, p.ID)
		return tx.Model(user).Update("all_projects", user.AllProjects).Error
	})
	if err != nil {
		return nil, err
	}

	_ = audit.WriteLog(s.db, audit.LogOptions{
		ActorEmail: user.Email,
		EntityType: "project",
		EntityID:   p.ID,
		Action:     models.AuditActionCreate,
		After:      p,
	})

	return &p, nil
}

func (s *Service) Update(id string, req CreateProjectRequest) (*models.Project, error) {
	var existing models.Project
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}

	req.ProjectName = strings.TrimSpace(req.ProjectName)
	req.DeveloperName = strings.TrimSpace(req.DeveloperName)
	req.AreaName = strings.TrimSpace(req.AreaName)

	if req.ProjectName == "" {
		return nil, apperr.Validation("projectName is required")
	}
	if req.DeveloperName == "" {
		return nil, apperr.Validation("developerName is required")
	}
	if req.AreaName == "" {
		return nil, apperr.Validation("areaName is required")
	}

	var dev models.Developer
	if err := s.db.First(&dev, "developer_name = ?", req.DeveloperName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.RelatedMissing("Developer not found. Please create the developer first.")
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

	inURLs, err := media.ResolveAll(s.blob, req.InImages)
	if err != nil {
		return nil, err
	}
	outURLs, err := media.ResolveAll(s.blob, req.OutImages)
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
	plans, err := s.resolveFloorPlans(req.FloorPlans, existing.FloorPlans)
	if err != nil {
		return nil, err
	}

	updated := existing
	updated.ProjectName = req.ProjectName
	updated.Description = req.Description
	updated.ProjectType = req.ProjectType
	updated.StartPrice = req.StartPrice
	updated.Size = req.Size
	updated.Rooms = req.Rooms
	updated.HandoverDate = req.HandoverDate
	updated.Amenities = models.StringList(req.Amenities)
	updated.Images = models.ProjectImages{
		InImages:        models.StringList(inURLs),
		OutImages:       models.StringList(outURLs),
		BackgroundImage: backgroundURL,
	}
	updated.FloorPlans = plans
	updated.AreaID = a.ID
	updated.DeveloperID = dev.ID
	updated.Location = req.Location
	updated.AboutMap = req.AboutMap
	updated.MapURL = req.MapURL

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		if existing.AreaID != a.ID {
			if err := s.moveAreaRef(tx, existing.AreaID, &a, updated.ID); err != nil {
				return err
			}
		}
		if existing.DeveloperID != dev.ID {
			if err := s.moveDeveloperRef(tx, existing.DeveloperID, &dev, updated.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reclaim superseded blobs after the commit, best effort.
	var gone []string
	gone = append(gone, media.Superseded(existing.Images.InImages, updated.Images.InImages)...)
	gone = append(gone, media.Superseded(existing.Images.OutImages, updated.Images.OutImages)...)
	if existing.Images.BackgroundImage != "" && existing.Images.BackgroundImage != updated.Images.BackgroundImage {
		gone = append(gone, existing.Images.BackgroundImage)
	}
	gone = append(gone, media.Superseded(floorPlanImages(existing.FloorPlans), floorPlanImages(updated.FloorPlans))...)
	media.DestroyAll(s.blob, gone)

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "project",
		EntityID:   updated.ID,
		Action:     models.AuditActionUpdate,
		Before:     existing,
		After:      updated,
	})

	return &updated, nil
}

func (s *Service) Delete(id string) error {
	var p models.Project
	err := s.db.Preload("Creator").Preload("Area").Preload("Developer").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Project not found")
	}
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
			return err
		}
		if p.Creator != nil {
			p.Creator.AllProjects = refs.Drop(p.Creator.AllProjects, p.ID)
			if err := tx.Model(p.Creator).Update("all_projects", p.Creator.AllProjects).Error; err != nil {
				return err
			}
		}
		if p.Area != nil {
			p.Area.ProjectIDs = refs.Drop(p.Area.ProjectIDs, p.ID)
			if err := tx.Model(p.Area).Update("project_ids", p.Area.ProjectIDs).Error; err != nil {
				return err
			}
		}
		if p.Developer != nil {
			p.Developer.ProjectIDs = refs.Drop(p.Developer.ProjectIDs, p.ID)
			if err := tx.Model(p.Developer).Update("project_ids", p.Developer.ProjectIDs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	owned := append([]string{}, p.Images.InImages...)
	owned = append(owned, p.Images.OutImages...)
	owned = append(owned, p.Images.BackgroundImage)
	owned = append(owned, floorPlanImages(p.FloorPlans)...)
	media.DestroyAll(s.blob, owned)

	_ = audit.WriteLog(s.db, audit.LogOptions{
		EntityType: "project",
		EntityID:   p.ID,
		Action:     models.AuditActionDelete,
		Before:     p,
	})

	return nil
}

func (s *Service) resolveRelations(developerName, areaName, email string) (*models.Developer, *models.Area, *models.User, error) {
	var dev models.Developer
	if err := s.db.First(&dev, "developer_name = ?", developerName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperr.RelatedMissing("Developer not found. Please create the developer first.")
		}
		return nil, nil, nil, err
	}
	var a models.Area
	if err := s.db.First(&a, "area_name = ?", areaName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperr.RelatedMissing("Area '%s' not found. Please create the area first.", areaName)
		}
		return nil, nil, nil, err
	}
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperr.RelatedMissing("User not found")
		}
		return nil, nil, nil, err
	}
	return &dev, &a, &user, nil
}

// resolveFloorPlans uploads raw plan images in place. On updates a plan with
// an empty image keeps the stored image at the same index, mirroring the
// background fallback.
func (s *Service) resolveFloorPlans(plans []models.FloorPlan, existing []models.FloorPlan) ([]models.FloorPlan, error) {
	out := make([]models.FloorPlan, len(plans))
	for i, plan := range plans {
		img, err := media.ResolveOne(s.blob, plan.FloorImage)
		if err != nil {
			return nil, err
		}
		if img == "" && i < len(existing) {
			img = existing[i].FloorImage
		}
		plan.FloorImage = img
		out[i] = plan
	}
	return out, nil
}

func (s *Service) moveAreaRef(tx *gorm.DB, oldAreaID string, next *models.Area, projectID string) error {
	if oldAreaID != "" {
		var old models.Area
		if err := tx.First(&old, "id = ?", oldAreaID).Error; err == nil {
			old.ProjectIDs = refs.Drop(old.ProjectIDs, projectID)
			if err := tx.Model(&old).Update("project_ids", old.ProjectIDs).Error; err != nil {
				return err
			}
		}
	}
	next.ProjectIDs = refs.Add(next.ProjectIDs, projectID)
	return tx.Model(next).Update("project_ids", next.ProjectIDs).Error
}

func (s *Service) moveDeveloperRef(tx *gorm.DB, oldDeveloperID string, next *models.Developer, projectID string) error {
	if oldDeveloperID != "" {
		var old models.Developer
		if err := tx.First(&old, "id = ?", oldDeveloperID).Error; err == nil {
			old.ProjectIDs = refs.Drop(old.ProjectIDs, projectID)
			if err := tx.Model(&old).Update("project_ids", old.ProjectIDs).Error; err != nil {
				return err
			}
		}
	}
	next.ProjectIDs = refs.Add(next.ProjectIDs, projectID)
	return tx.Model(next).Update("project_ids", next.ProjectIDs).Error
}

func floorPlanImages(plans []models.FloorPlan) []string {
	imgs := make([]string, 0, len(plans))
	for _, plan := range plans {
		if plan.FloorImage != "" {
			imgs = append(imgs, plan.FloorImage)
		}
	}
	return imgs
}
