package models

import "time"

// Region is the root of the organizational hierarchy.
type Region struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_regions_name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Region) TableName() string {
	return "regions"
}

type University struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	RegionID  uint      `json:"regionId" gorm:"not null;index:idx_universities_region_id"`
	Region    *Region   `json:"region,omitempty" gorm:"foreignKey:RegionID;references:ID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (University) TableName() string {
	return "universities"
}

// RegionalStaff is the contact person for a region.
type RegionalStaff struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RegionID       uint      `json:"regionId" gorm:"not null;index:idx_regional_staff_region_id"`
	Region         *Region   `json:"region,omitempty" gorm:"foreignKey:RegionID;references:ID;constraint:OnDelete:RESTRICT"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone          *string   `json:"phone" gorm:"type:varchar(50)"`
	WhatsappNumber *string   `json:"whatsappNumber" gorm:"type:varchar(50)"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (RegionalStaff) TableName() string {
	return "regional_staff"
}

// Small group types
const (
	SmallGroupStudent  = "student"
	SmallGroupGraduate = "graduate"
)

var SmallGroupTypes = []string{SmallGroupStudent, SmallGroupGraduate}

// SmallGroup is not linked to Region; location is free text.
type SmallGroup struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	Type           string    `json:"type" gorm:"type:varchar(20);not null;index:idx_small_groups_type"`
	Province       *string   `json:"province" gorm:"type:varchar(255)"`
	District       *string   `json:"district" gorm:"type:varchar(255)"`
	Sector         *string   `json:"sector" gorm:"type:varchar(255)"`
	Address        *string   `json:"address" gorm:"type:varchar(500)"`
	CellLeaderName *string   `json:"cellLeaderName" gorm:"type:varchar(255)"`
	WhatsappNumber *string   `json:"whatsappNumber" gorm:"type:varchar(50)"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (SmallGroup) TableName() string {
	return "small_groups"
}
