package models

import "time"

type Part struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Category     string `gorm:"size:50" json:"category"`
	PartNumber   string `gorm:"size:100;uniqueIndex;not null" json:"part_number"`
	Description  string `gorm:"size:255" json:"description"`
	Manufacturer string `gorm:"size:100" json:"manufacturer"`

	WarrantyMonths int `gorm:"default:0" json:"warranty_months"`
	StockQuantity  int `gorm:"default:0" json:"stock_quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
