package models

import (
	"fmt"
	"time"
)

type Vehicle struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	Make         string `gorm:"size:100;not null" json:"make"`
	Model        string `gorm:"size:100;not null" json:"model"`
	Year         int    `json:"year"`
	VIN          string `gorm:"size:100;uniqueIndex;not null" json:"vin"`
	LicensePlate string `gorm:"size:50" json:"license_plate"`
	Color        string `gorm:"size:50" json:"color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Description is the human-readable label used in workload dashboards.
func (v *Vehicle) Description() string {
	return fmt.Sprintf("%s %s", v.Make, v.Model)
}
