package models

import "time"

type VehicleProblem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Description string `gorm:"type:text;not null" json:"description"`
	Resolved    bool   `gorm:"default:false" json:"resolved"`

	ReportedDate time.Time `gorm:"autoCreateTime" json:"reported_date"`
}
