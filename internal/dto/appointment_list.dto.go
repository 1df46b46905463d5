package dto

import "time"

type AppointmentListDTO struct {
	ID           uint       `json:"id"`
	Date         time.Time  `json:"date"`
	Status       string     `json:"status"`
	Vehicle      string     `json:"vehicle"`
	CustomerName string     `json:"customer_name"`
	Technician   string     `json:"technician,omitempty"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
}
