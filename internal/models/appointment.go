package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicle"`

	ReportedProblemID *uint           `json:"reported_problem_id"`
	ReportedProblem   *VehicleProblem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"reported_problem"`

	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `json:"date"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	AssignedTechnicianID *uint     `json:"assigned_technician_id"`
	AssignedTechnician   *Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"assigned_technician"`

	AssignedAt  *time.Time `json:"assigned_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
