package models

import (
	"time"

	"gorm.io/datatypes"
)

type FloorPlan struct {
	FloorType  string `json:"floorType"`
	FloorSize  string `json:"floorSize"`
	FloorImage string `json:"floorImage"`
	NumOfRooms int    `json:"numOfrooms"`
}

type ProjectImages struct {
	InImages        StringList `json:"inImages"`
	OutImages       StringList `json:"outImages"`
	BackgroundImage string     `gorm:"size:500" json:"backgroundImage"`
}

type Project struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	ProjectName string `gorm:"size:150;uniqueIndex;not null" json:"projectName"`
	Description string `gorm:"size:2000" json:"description"`
	ProjectType string `gorm:"size:50;index" json:"projectType"`

	StartPrice   *float64   `json:"startPrice"`
	Size         *string    `gorm:"size:50" json:"size"`
	Rooms        *int       `json:"rooms"`
	HandoverDate *string    `gorm:"size:50" json:"handoverDate"`
	Amenities    StringList `json:"aminities"`

	Images     ProjectImages                  `gorm:"embedded;embeddedPrefix:image_" json:"images"`
	FloorPlans datatypes.JSONSlice[FloorPlan] `json:"floorPlans"`

	AreaID      string     `gorm:"size:36;index" json:"-"`
	Area        *Area      `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	DeveloperID string     `gorm:"size:36;index" json:"-"`
	Developer   *Developer `gorm:"foreignKey:DeveloperID" json:"developer,omitempty"`

	Location string `gorm:"size:255" json:"location"`
	AboutMap string `gorm:"size:2000" json:"aboutMap"`
	MapURL   string `gorm:"size:500" json:"mapURL"`

	CreatorID string `gorm:"size:36;index" json:"-"`
	Creator   *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
