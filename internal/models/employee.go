package models

import "time"

type Employee struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"shop"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Role        string `gorm:"size:100;not null" json:"role"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Email       string `gorm:"size:100" json:"email"`
	PictureURL  string `gorm:"size:255" json:"picture_url"`

	// Optional login account for this employee.
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
