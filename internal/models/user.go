package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// IDList is a manually maintained list of related entity ids, stored as a
// JSON column. The store enforces no foreign keys; the mutation workflows
// keep these lists in sync through the refs ledger.
type IDList = datatypes.JSONSlice[string]

// StringList is a JSON column holding a plain list of strings (features,
// amenities, image URLs).
type StringList = datatypes.JSONSlice[string]

type User struct {
	ID           string   `gorm:"primaryKey;size:36" json:"id"`
	Name         string   `gorm:"size:100" json:"name"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Avatar       string   `gorm:"size:500" json:"avatar"`
	PasswordHash string   `gorm:"size:255" json:"-"` // empty for UI-login users
	Role         UserRole `gorm:"size:20;not null;default:member" json:"role"`

	AllProperties IDList `json:"allProperties"`
	AllAreas      IDList `json:"allAreas"`
	AllDevelopers IDList `json:"allDevelopers"`
	AllProjects   IDList `json:"allProjects"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
