package project

import (
	"errors"
	"sync"
	"testing"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeBlob struct {
	mu        sync.Mutex
	uploads   []string
	destroyed []string
}

func (f *fakeBlob) Upload(image string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, image)
	return "http://blobs.test/" + image + ".jpg", nil
}

func (f *fakeBlob) Destroy(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, url)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Area{}, &models.Developer{},
		&models.Project{}, &models.Property{}, &models.AuditLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	user := models.User{
		ID:    uuid.NewString(),
		Name:  "Test User",
		Email: email,
		Role:  models.RoleMember,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedArea(t *testing.T, db *gorm.DB, name string) models.Area {
	a := models.Area{ID: uuid.NewString(), AreaName: name}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedDeveloper(t *testing.T, db *gorm.DB, name string) models.Developer {
	d := models.Developer{ID: uuid.NewString(), DeveloperName: name}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func TestCreateProjectMissingDeveloperCostsNoUploads(t *testing.T) {
	db := newTestDB(t)
	blob := &fakeBlob{}
	svc := NewService(db, blob)
	user := seedUser(t, db, "agent@example.com")
	seedArea(t, db, "Downtown")

	_, err := svc.Create(CreateProjectRequest{
		ProjectName:   "Skyline Towers",
		DeveloperName: "Emaar",
		AreaName:      "Downtown",
		Email:         user.Email,
		InImages:      []string{"raw-in"},
		OutImages:     []string{"raw-out"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrRelatedMissing))
	assert.Equal(t, "Developer not found. Please create the developer first.", err.Error())
	assert.Empty(t, blob.uploads)
}

func TestCreateProjectWiresAllBackReferences(t *testing.T) {
	db := newTestDB(t)
	blob := &fakeBlob{}
	svc := NewService(db, blob)
	user := seedUser(t, db, "agent@example.com")
	area := seedArea(t, db, "Downtown")
	dev := seedDeveloper(t, db, "Emaar")

	p, err := svc.Create(CreateProjectRequest{
		ProjectName:     "Skyline Towers",
		ProjectType:     "residential",
		DeveloperName:   "Emaar",
		AreaName:        "Downtown",
		Email:           user.Email,
		InImages:        []string{"raw-in1", "raw-in2"},
		OutImages:       []string{"raw-out"},
		BackgroundImage: "raw-bg",
		FloorPlans: []models.FloorPlan{
			{FloorType: "2BR", FloorSize: "1200 sqft", FloorImage: "raw-plan", NumOfRooms: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, area.ID, p.AreaID)
	assert.Equal(t, dev.ID, p.DeveloperID)
	assert.Equal(t, models.StringList{
		"http://blobs.test/raw-in1.jpg",
		"http://blobs.test/raw-in2.jpg",
	}, p.Images.InImages)
	assert.Equal(t, models.StringList{"http://blobs.test/raw-out.jpg"}, p.Images.OutImages)
	assert.Equal(t, "http://blobs.test/raw-bg.jpg", p.Images.BackgroundImage)
	require.Len(t, p.FloorPlans, 1)
	assert.Equal(t, "http://blobs.test/raw-plan.jpg", p.FloorPlans[0].FloorImage)

	var storedDev models.Developer
	require.NoError(t, db.First(&storedDev, "id = ?", dev.ID).Error)
	assert.Equal(t, models.IDList{p.ID}, storedDev.ProjectIDs)

	var storedArea models.Area
	require.NoError(t, db.First(&storedArea, "id = ?", area.ID).Error)
	assert.Equal(t, models.IDList{p.ID}, storedArea.ProjectIDs)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, "id = ?", user.ID).Error)
	assert.Equal(t, models.IDList{p.ID}, storedUser.AllProjects)
}

func TestUpdateProjectMovesAreaAndDeveloperReferences(t *testing.T) {
	db := newTestDB(t)
	blob := &fakeBlob{}
	svc := NewService(db, blob)
	user := seedUser(t, db, "agent@example.com")
	seedArea(t, db, "Downtown")
	seedDeveloper(t, db, "Emaar")
	newArea := seedArea(t, db, "Marina")
	newDev := seedDeveloper(t, db, "Damac")

	p, err := svc.Create(CreateProjectRequest{
		ProjectName:   "Skyline Towers",
		DeveloperName: "Emaar",
		AreaName:      "Downtown",
		Email:         user.Email,
	})
	require.NoError(t, err)

	updated, err := svc.Update(p.ID, CreateProjectRequest{
		ProjectName:   "Skyline Towers",
		DeveloperName: "Damac",
		AreaName:      "Marina",
	})
	require.NoError(t, err)
	assert.Equal(t, newArea.ID, updated.AreaID)
	assert.Equal(t, newDev.ID, updated.DeveloperID)

	var oldArea, movedArea models.Area
	require.NoError(t, db.First(&oldArea, "area_name = ?", "Downtown").Error)
	require.NoError(t, db.First(&movedArea, "area_name = ?", "Marina").Error)
	assert.NotContains(t, oldArea.ProjectIDs, p.ID)
	assert.Equal(t, models.IDList{p.ID}, movedArea.ProjectIDs)

	var oldDev, movedDev models.Developer
	require.NoError(t, db.First(&oldDev, "developer_name = ?", "Emaar").Error)
	require.NoError(t, db.First(&movedDev, "developer_name = ?", "Damac").Error)
	assert.NotContains(t, oldDev.ProjectIDs, p.ID)
	assert.Equal(t, models.IDList{p.ID}, movedDev.ProjectIDs)
}

func TestUpdateProjectReplacesSupersededImages(t *testing.T) {
	db := newTestDB(t)
	blob := &fakeBlob{}
	svc := NewService(db, blob)
	user := seedUser(t, db, "agent@example.com")
	seedArea(t, db, "Downtown")
	seedDeveloper(t, db, "Emaar")

	p, err := svc.Create(CreateProjectRequest{
		ProjectName:     "Skyline Towers",
		DeveloperName:   "Emaar",
		AreaName:        "Downtown",
		Email:           user.Email,
		InImages:        []string{"raw-in1", "raw-in2"},
		BackgroundImage: "raw-bg",
	})
	require.NoError(t, err)
	kept := p.Images.InImages[0]
	dropped := p.Images.InImages[1]

	updated, err := svc.Update(p.ID, CreateProjectRequest{
		ProjectName:   "Skyline Towers",
		DeveloperName: "Emaar",
		AreaName:      "Downtown",
		InImages:      []string{kept, "raw-in3"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StringList{kept, "http://blobs.test/raw-in3.jpg"}, updated.Images.InImages)
	assert.Equal(t, []string{dropped}, blob.destroyed)

	// Omitted background keeps the stored value.
	assert.Equal(t, "http://blobs.test/raw-bg.jpg", updated.Images.BackgroundImage)
}

func TestDeleteProjectCleansUp(t *testing.T) {
	db := newTestDB(t)
	blob := &fakeBlob{}
	svc := NewService(db, blob)
	user := seedUser(t, db, "agent@example.com")
	area := seedArea(t, db, "Downtown")
	dev := seedDeveloper(t, db, "Emaar")

	p, err := svc.Create(CreateProjectRequest{
		ProjectName:     "Skyline Towers",
		DeveloperName:   "Emaar",
		AreaName:        "Downtown",
		Email:           user.Email,
		InImages:        []string{"raw-in"},
		OutImages:       []string{"raw-out"},
		BackgroundImage: "raw-bg",
		FloorPlans: []models.FloorPlan{
			{FloorType: "2BR", FloorImage: "raw-plan"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(p.ID))

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count)

	var storedDev models.Developer
	require.NoError(t, db.First(&storedDev, "id = ?", dev.ID).Error)
	assert.NotContains(t, storedDev.ProjectIDs, p.ID)

	var storedArea models.Area
	require.NoError(t, db.First(&storedArea, "id = ?", area.ID).Error)
	assert.NotContains(t, storedArea.ProjectIDs, p.ID)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, "id = ?", user.ID).Error)
	assert.NotContains(t, storedUser.AllProjects, p.ID)

	assert.ElementsMatch(t, []string{
		"http://blobs.test/raw-in.jpg",
		"http://blobs.test/raw-out.jpg",
		"http://blobs.test/raw-bg.jpg",
		"http://blobs.test/raw-plan.jpg",
	}, blob.destroyed)
}

func TestDeleteProjectNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &fakeBlob{})

	err := svc.Delete(uuid.NewString())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
