package property

import (
	"errors"
	"testing"

	"bayhomes-backend/internal/apperr"
	"bayhomes-backend/internal/models"
	"bayhomes-backend/internal/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedListing(t *testing.T, db *gorm.DB, title, propertyType string, price float64) models.Property {
	p := models.Property{
		ID:           uuid.NewString(),
		Title:        title,
		PropertyType: propertyType,
		Price:        price,
		Status:       models.PropertyActive,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestListFiltersByTitleSubstring(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	seedListing(t, db, "Marina View Apartment", "apartment", 1250000)
	seedListing(t, db, "Downtown Loft", "apartment", 900000)
	seedListing(t, db, "Palm Villa", "villa", 4500000)

	got, total, err := repo.List(Filter{TitleLike: "marina"}, query.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Marina View Apartment", got[0].Title)
}

func TestListFiltersByPropertyType(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	seedListing(t, db, "Marina View Apartment", "apartment", 1250000)
	seedListing(t, db, "Downtown Loft", "apartment", 900000)
	seedListing(t, db, "Palm Villa", "villa", 4500000)

	got, total, err := repo.List(Filter{PropertyType: "apartment"}, query.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 2)
}

func TestListPaginationWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		seedListing(t, db, title, "apartment", 100)
	}

	page := query.Page{Start: 1, End: 3, Sort: "title", Order: "asc"}
	got, total, err := repo.List(Filter{}, page)
	require.NoError(t, err)

	// Total reflects the whole filtered set, not the window.
	assert.EqualValues(t, 5, total)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Title)
	assert.Equal(t, "C", got[1].Title)
}

func TestListSortsByWhitelistedField(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	seedListing(t, db, "Cheap", "apartment", 100)
	seedListing(t, db, "Pricey", "apartment", 900)
	seedListing(t, db, "Middle", "apartment", 500)

	got, _, err := repo.List(Filter{}, query.Page{Sort: "price", Order: "desc"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Pricey", got[0].Title)
	assert.Equal(t, "Cheap", got[2].Title)
}

func TestGetDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)

	_, err := repo.GetDetail(uuid.NewString())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, "Property not found", err.Error())
}
