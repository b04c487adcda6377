package models

import "time"

type Area struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	AreaName    string     `gorm:"size:150;uniqueIndex;not null" json:"areaName"`
	Description string     `gorm:"size:2000" json:"description"`
	Features    StringList `json:"features"`
	Image       string     `gorm:"size:500" json:"image"`
	Location    string     `gorm:"size:255" json:"location"`

	CreatorID string `gorm:"size:36;index" json:"-"`
	Creator   *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	// Ids of the properties and projects located in this area.
	PropertyIDs IDList `gorm:"column:property_ids" json:"propertyId"`
	ProjectIDs  IDList `gorm:"column:project_ids" json:"projectId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
