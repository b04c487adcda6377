package models

import "time"

type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyArchived PropertyStatus = "archived"
)

type PropertyImages struct {
	PropImages      StringList `json:"propImages"`
	BackgroundImage string     `gorm:"size:500" json:"backgroundImage"`
}

type Property struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"size:2000" json:"description"`
	PropertyType string `gorm:"size:50;index" json:"propertyType"`
	Location     string `gorm:"size:255" json:"location"`
	Price        float64 `json:"price"`

	Images PropertyImages `gorm:"embedded;embeddedPrefix:image_" json:"images"`

	NumOfRooms     int        `json:"numOfrooms"`
	NumOfBathrooms int        `json:"numOfbathrooms"`
	Size           string     `gorm:"size:50" json:"size"`
	Features       StringList `json:"features"`
	PermitNo       string     `gorm:"size:100" json:"permitNo"`

	AreaID string `gorm:"size:36;index" json:"-"`
	Area   *Area  `gorm:"foreignKey:AreaID" json:"area,omitempty"`

	Purpose        string `gorm:"size:50" json:"purpose"`
	FurnishingType string `gorm:"size:50" json:"furnishingType"`
	Classification string `gorm:"size:50" json:"classification"`
	Featured       bool   `json:"featured"`
	ProjectName    string `gorm:"size:150" json:"projectName"`
	Barcode        string `gorm:"size:500" json:"barcode"`

	Status PropertyStatus `gorm:"size:20;not null;default:active" json:"status"`

	CreatorID string `gorm:"size:36;index" json:"-"`
	Creator   *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
