package models

import "time"

type Developer struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	DeveloperName string `gorm:"size:150;uniqueIndex;not null" json:"developerName"`
	Description   string `gorm:"size:2000" json:"description"`
	Image         string `gorm:"size:500" json:"image"`

	CreatorID string `gorm:"size:36;index" json:"-"`
	Creator   *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	// Ids of the projects built by this developer.
	ProjectIDs IDList `gorm:"column:project_ids" json:"projectId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
