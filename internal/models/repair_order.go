package models

import "time"

// RepairOrder ties executed services and consumed parts to a vehicle.
// Pricing and tax are handled by the billing system, not here.
type RepairOrder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicle"`

	Notes string `gorm:"type:text" json:"notes"`

	Parts    []RepairOrderPart    `json:"parts"`
	Services []RepairOrderService `json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RepairOrderPart struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	RepairOrderID uint `json:"repair_order_id"`

	PartID uint `json:"part_id"`
	Part   Part `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"part"`

	Quantity               int  `gorm:"default:1" json:"quantity"`
	WarrantyOverrideMonths *int `json:"warranty_override_months"`
}

type RepairOrderService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	RepairOrderID uint `json:"repair_order_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	WarrantyOverrideMonths *int `json:"warranty_override_months"`
}
